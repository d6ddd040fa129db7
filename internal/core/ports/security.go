package ports

import "github.com/mini-project-manager/tracker/internal/core/domain"

// PasswordHasher performs one-way, salted, cost-tuned password hashing.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hashed. Any internal failure is
	// domain.ErrCredentialOperation.
	Verify(plaintext, hashed string) (bool, error)
}

// TokenService issues and verifies self-contained identity tokens.
type TokenService interface {
	Issue(claims domain.TokenClaims) (string, error)
	// Verify fails with domain.ErrTokenInvalid or domain.ErrTokenExpired.
	Verify(token string) (*domain.TokenClaims, error)
	// ExtractFromHeader returns the token of a "Bearer <token>" header value.
	// Any other value yields ok=false.
	ExtractFromHeader(header string) (token string, ok bool)
}
