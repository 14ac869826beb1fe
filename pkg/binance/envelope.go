package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"nakula/pkg/core"
	"nakula/pkg/endpoint"
)

// buildQuery renders params into the wire query string. For signed requests
// it appends recvWindow and a fresh millisecond timestamp, computes an
// HMAC-SHA256 signature over the canonical encoding, and places the
// signature last so the signed bytes are exactly what precedes it.
func (c *Client) buildQuery(params core.Params, security endpoint.Security) (string, error) {
	values, err := params.Encode()
	if err != nil {
		return "", err
	}

	if security == endpoint.Public {
		return values.Encode(), nil
	}

	if c.creds.IsZero() {
		return "", core.ErrMissingCredentials
	}

	values.Set("recvWindow", c.recvWindow)
	values.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))

	canonical := values.Encode()
	return canonical + "&signature=" + signHMAC(c.creds.Secret(), canonical), nil
}

// signHMAC returns the lowercase hex HMAC-SHA256 of payload under secret.
func signHMAC(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
