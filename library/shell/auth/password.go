package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashingPasswordFailed is returned when bcrypt cannot hash a password, e.g. when it is longer than 72 bytes.
var ErrHashingPasswordFailed = errors.New("hashing password failed")

// PasswordHasher hashes and checks passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a PasswordHasher. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Join(ErrHashingPasswordFailed, err)
	}

	return string(hash), nil
}

// Matches reports whether password is the one hash was built from.
func (h PasswordHasher) Matches(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
