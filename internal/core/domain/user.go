package domain

import "time"

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenClaims is the identity carried by an issued token. It holds no
// resource-level permissions.
type TokenClaims struct {
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
