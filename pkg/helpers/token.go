package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// ClientIDLength is the length of the external client identifier handed to
// users at registration.
const ClientIDLength = 12

// NewClientID generates a random URL-safe client identifier. It is not
// derived from any account field; the collision probability at this length
// is treated as negligible and not checked.
func NewClientID() (string, error) {
	// base64 packs 6 bits per character
	raw := make([]byte, (ClientIDLength*6+7)/8)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:ClientIDLength], nil
}
