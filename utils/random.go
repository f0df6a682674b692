package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionID returns an opaque lowercase hex id of n random bytes.
func GenerateSessionID(n int) (string, error) {
	// Make a slice of n random bytes.
	byt := make([]byte, n)

	// Read into the slice.
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	// Return the hexadecimal string.
	return hex.EncodeToString(byt), nil
}
