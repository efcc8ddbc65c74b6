package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	tokenMin   = 100000
	tokenRange = 900000
)

// GenerateToken returns a six digit code used for both account
// confirmation and password reset.
func GenerateToken() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(tokenRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+tokenMin, 10), nil
}
