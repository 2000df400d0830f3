package security

import (
	"crypto/rand"
	"math/big"
)

// The alphabet skips lookalike characters (0/O, 1/l/I) so a password
// read over the phone survives the transcription.
const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const minimumPasswordLength = 8

// TemporaryPassword returns a cryptographically random password of the
// requested length. Lengths below the minimum are raised to it. Each
// character is drawn independently via crypto/rand, so no alphabet
// position is favored.
func TemporaryPassword(length int) (string, error) {
	if length < minimumPasswordLength {
		length = minimumPasswordLength
	}

	limit := big.NewInt(int64(len(passwordAlphabet)))
	password := make([]byte, length)
	for index := range password {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		password[index] = passwordAlphabet[position.Int64()]
	}

	return string(password), nil
}
