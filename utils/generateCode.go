package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateCode returns a URL-safe random token of 2*length hex chars.
func GenerateCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
