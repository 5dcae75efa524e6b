package login

import (
	"crypto/rand"
	"encoding/base64"
)

// newSessionToken returns a 256-bit random token in URL-safe base64; it is
// both the session cookie value and the backend session header.
func newSessionToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
