package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	RoomCodeLength   = 6
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateRoomCode - generates a random room code, uniqueness is up to the caller.
func GenerateRoomCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(RoomCodeAlphabet)))

	code := make([]byte, RoomCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate room code: %w", err)
		}
		code[i] = RoomCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// IsRoomCode - checks the code has the right length and alphabet.
func IsRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}

	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}

	return true
}
