package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is owned by exactly one user. OwnerID never changes after creation.
type Project struct {
	ID          string
	Title       string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether userID is the project's owner.
func (p *Project) OwnedBy(userID string) bool {
	return p != nil && userID != "" && p.OwnerID == userID
}

// NormalizeTitle trims title and rejects it when nothing is left.
func NormalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", Invalid("title", "is required")
	}
	return t, nil
}

// IsValidID reports whether id has the shape of a stored document id.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// CanonicalID returns id in the lowercase hex form stored ids use. ok is
// false when id is not a valid id.
func CanonicalID(id string) (canonical string, ok bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}

// NewID returns a fresh document id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
