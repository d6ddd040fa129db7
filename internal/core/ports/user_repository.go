package ports

import (
	"context"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// UserRepository is the identity store boundary. Email uniqueness is enforced
// here: Insert fails with domain.ErrEmailTaken on a duplicate.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user has email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
