package utils

import (
	"encoding/base64"
	"fmt"

	"github.com/hashicorp/go-uuid"
)

// RandomString returns n cryptographically random bytes, base64url encoded.
func RandomString(n int) (string, error) {
	b, err := uuid.GenerateRandomBytes(n)
	if err != nil {
		return "", fmt.Errorf("utils: random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
