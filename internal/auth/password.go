package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match its hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	if hashed == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

const dummyPassword = "project-service-dummy"

// NewDummyHash hashes a throwaway password at cost. Comparing against it when
// no account exists costs the same bcrypt work as a real wrong password, as
// long as cost matches the cost used for stored hashes.
func NewDummyHash(cost int) (string, error) {
	return HashPassword(dummyPassword, cost)
}

// CompareDummy burns one bcrypt comparison against dummyHash and always fails.
func CompareDummy(dummyHash, plain string) error {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
	return ErrPasswordMismatch
}
