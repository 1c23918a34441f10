package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateSecret returns 64 hex characters of randomness, for signing keys
// that only need to live as long as the process
func GenerateSecret() (string, error) {
	var b strings.Builder
	for i := 0; i < 2; i++ {
		u, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		b.WriteString(strings.ReplaceAll(u.String(), "-", ""))
	}
	return b.String(), nil
}
