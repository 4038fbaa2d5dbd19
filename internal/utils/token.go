package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateToken returns nBytes of cryptographically secure randomness, hex encoded.
func GenerateToken(nBytes int) (string, error) {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RandomString returns n random lowercase alphanumeric characters.
func RandomString(n int) (string, error) {
	max := big.NewInt(int64(len(base36)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		out[i] = base36[idx.Int64()]
	}
	return string(out), nil
}
