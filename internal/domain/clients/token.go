package clients

import (
	"crypto/rand"
	"math/big"
)

const (
	TokenLength = 10

	// sin caracteres ambiguos (l, I, O, 0, 1, i, o)
	tokenAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateToken devuelve un login aleatorio de TokenLength caracteres.
func GenerateToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, TokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
