package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	// UserIDLength keeps IDs short enough to read out loud or type from a
	// whiteboard.
	UserIDLength = 6

	// No 0/O or 1/I: the ID doubles as the login credential, so transcription
	// mistakes matter more than keyspace.
	userIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateUserID produces a short random identifier for a user account.
// 32^6 ≈ one billion combinations; callers must still check the generated
// value against existing rows before assigning it.
func GenerateUserID() (string, error) {
	id := make([]byte, UserIDLength)
	for i := range id {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(userIDAlphabet))))
		if err != nil {
			return "", err
		}
		id[i] = userIDAlphabet[n.Int64()]
	}
	return string(id), nil
}
