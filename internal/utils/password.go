package utils

import "golang.org/x/crypto/bcrypt"

// MinBcryptCost is the lowest work factor the service accepts.
// DefaultBcryptCost is used when the configured cost is below the minimum.
const (
	MinBcryptCost     = 10
	DefaultBcryptCost = 12
)

// HashPassword returns a bcrypt hash using the given cost. Costs below
// MinBcryptCost fall back to DefaultBcryptCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < MinBcryptCost {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password. A
// malformed hash yields false, never an error.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
