package keyring

import "fmt"

// Credentials holds one API key pair. The zero value means no credentials
// and restricts a client to public endpoints.
type Credentials struct {
	key    string
	secret string
}

func New(key, secret string) Credentials {
	return Credentials{key: key, secret: secret}
}

func (c Credentials) Key() string {
	return c.key
}

func (c Credentials) Secret() string {
	return c.secret
}

func (c Credentials) IsZero() bool {
	return c.key == "" && c.secret == ""
}

// Masked returns a log-safe rendering of the API key.
func (c Credentials) Masked() string {
	return maskKey(c.key)
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Key:%s}", maskKey(c.key))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
