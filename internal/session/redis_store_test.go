package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeboard/internal/models"
)

// 需要真实的 Redis，通过 TEST_REDIS_ADDR 指定地址
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())

	store := NewRedisStore(rdb)
	sessionID := uuid.NewString()
	identity := Identity{AccountID: "alice", Role: models.RoleUser}

	_, err := store.Get(ctx, sessionID)
	assert.ErrorIs(t, err, ErrNoIdentity)

	require.NoError(t, store.Set(ctx, sessionID, identity, time.Minute))
	got, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, identity, *got)

	ttl, err := rdb.TTL(ctx, redisKeyPrefix+sessionID).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, store.Delete(ctx, sessionID))
	_, err = store.Get(ctx, sessionID)
	assert.ErrorIs(t, err, ErrNoIdentity)
}
