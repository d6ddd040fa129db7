package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// DefaultBcryptCost is used when no valid cost is configured.
const DefaultBcryptCost = bcrypt.DefaultCost

// BcryptHasher hashes passwords with bcrypt. Every hash carries its own random
// salt, so equal passwords produce different stored values.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given work factor. Out-of-range
// costs fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", domain.ErrCredentialOperation
	}
	return string(b), nil
}

// Verify compares plaintext against hashed in constant time. A mismatch is
// (false, nil); a malformed hash or any other failure is
// domain.ErrCredentialOperation with no further detail.
func (h *BcryptHasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, domain.ErrCredentialOperation
	}
}
