package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const resetCodeSpace = 1_000_000

// GenerateToken returns n random bytes encoded as hex.
func GenerateToken(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateNumericCode returns a uniformly distributed 6-digit code, zero padded.
func GenerateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
