package ports

import "context"

// IdempotencyStore remembers which resource an Idempotency-Key produced.
// Keys are scoped by owner and resource kind.
type IdempotencyStore interface {
	Lookup(ctx context.Context, ownerID, kind, key string) (resourceID string, found bool, err error)
	Remember(ctx context.Context, ownerID, kind, key, resourceID string) error
}

// Resource kinds used as idempotency scopes.
const (
	KindProject = "project"
	KindTask    = "task"
)
