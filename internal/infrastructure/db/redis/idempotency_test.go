package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_KeyIsScopedByOwnerAndKind(t *testing.T) {
	s := NewIdempotencyStore(nil, 0)

	assert.Equal(t, "idem:u1:project:k", s.key("u1", "project", "k"))
	assert.NotEqual(t, s.key("u1", "project", "k"), s.key("u2", "project", "k"))
	assert.NotEqual(t, s.key("u1", "project", "k"), s.key("u1", "task", "k"))
	assert.Equal(t, DefaultIdempotencyTTL, s.ttl)
}

func TestIdempotencyStore_UnreachableServerIsAnError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	s := NewIdempotencyStore(client, time.Minute)
	ctx := context.Background()

	_, found, err := s.Lookup(ctx, "u1", "project", "k")
	require.Error(t, err)
	assert.False(t, found)

	assert.Error(t, s.Remember(ctx, "u1", "project", "k", "id"))
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Addr: "localhost:6379"}.Enabled())
}
