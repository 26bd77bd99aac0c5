package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the work factor used when none is configured.
const DefaultCost = 10

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

// ErrTooLong is returned for passwords bcrypt would truncate.
var ErrTooLong = fmt.Errorf("password exceeds %d bytes", MaxLength)

// Hash returns a bcrypt hash of password at DefaultCost.
// Every call draws a fresh random salt, so equal inputs give different outputs.
// The result carries the algorithm version, cost and salt, e.g. "$2a$10$<salt><digest>".
func Hash(password string) (string, error) {
	return HashWithCost(password, DefaultCost)
}

// HashWithCost is like Hash with an explicit work factor.
// Costs outside [bcrypt.MinCost, bcrypt.MaxCost] are clamped.
func HashWithCost(password string, cost int) (string, error) {
	if len(password) > MaxLength {
		return "", ErrTooLong
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether password matches hash.
// A mismatch is (false, nil); a malformed hash is an error.
func Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// Cost returns the work factor encoded in hash.
func Cost(hash string) (int, error) {
	return bcrypt.Cost([]byte(hash))
}
