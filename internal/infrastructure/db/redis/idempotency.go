package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL bounds how long an Idempotency-Key is remembered.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps Idempotency-Key values to the id of the resource the
// first request created.
// Key format: idem:<owner_id>:<kind>:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl uses
// DefaultIdempotencyTTL.
func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the remembered resource id, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, ownerID, kind, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(ownerID, kind, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember stores resourceID under the key. The first writer wins: a key
// already taken by a concurrent request is left untouched.
func (s *IdempotencyStore) Remember(ctx context.Context, ownerID, kind, key, resourceID string) error {
	if err := s.client.SetNX(ctx, s.key(ownerID, kind, key), resourceID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(ownerID, kind, key string) string {
	return fmt.Sprintf("idem:%s:%s:%s", ownerID, kind, key)
}
