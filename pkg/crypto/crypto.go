package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// stateTokenBytes gives 256 bits of entropy, 43 chars base64url.
const stateTokenBytes = 32

// GenerateRandomString produces a cryptographically random base64url string of n bytes.
func GenerateRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateStateToken returns an unguessable OAuth correlation token.
func GenerateStateToken() (string, error) {
	return GenerateRandomString(stateTokenBytes)
}
