package core

import "errors"

// Exchange error codes carried in the {code,msg} body of failed responses.
// Only the codes this client can meaningfully react to are named; anything
// else is still surfaced through HTTPStatusError.APICode.
const (
	// CodeTooManyRequests signals the request was throttled server-side.
	CodeTooManyRequests = -1003
	// CodeInvalidTimestamp signals the signed timestamp fell outside the
	// receive window, usually clock drift or an overlong network stall.
	CodeInvalidTimestamp = -1021
	// CodeInvalidSignature signals the HMAC did not verify.
	CodeInvalidSignature = -1022
	// CodeInvalidSymbol signals an unknown trading pair.
	CodeInvalidSymbol = -1121
	// CodeBadAPIKeyFormat signals a malformed API key header.
	CodeBadAPIKeyFormat = -2014
	// CodeRejectedAPIKey signals an invalid or expired key, or a request
	// from an IP outside the key's allow-list.
	CodeRejectedAPIKey = -2015
)

// APICode extracts the exchange error code carried by err, if any.
func APICode(err error) (int, bool) {
	var se *HTTPStatusError
	if errors.As(err, &se) && se.APICode != 0 {
		return se.APICode, true
	}
	return 0, false
}

// IsAPICode reports whether err carries the given exchange error code.
func IsAPICode(err error, code int) bool {
	got, ok := APICode(err)
	return ok && got == code
}

// IsInvalidSymbol reports whether the exchange rejected the trade symbol.
func IsInvalidSymbol(err error) bool {
	return IsAPICode(err, CodeInvalidSymbol)
}

// IsRejectedKey reports whether the API key was refused: invalid, expired,
// or used from an IP the key does not allow. Comparing the caller's public
// IP (Client.PublicIP) against the key's allow-list is the usual follow-up.
func IsRejectedKey(err error) bool {
	return IsAPICode(err, CodeRejectedAPIKey)
}

// IsClockDrift reports whether the signed timestamp was rejected.
func IsClockDrift(err error) bool {
	return IsAPICode(err, CodeInvalidTimestamp)
}
