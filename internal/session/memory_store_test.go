package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeboard/internal/models"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	identity := Identity{AccountID: "alice", Role: models.RoleUser}

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoIdentity)

	require.NoError(t, store.Set(ctx, "s1", identity, time.Hour))
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, identity, *got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoIdentity)
	// 重复删除不报错
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "old", Identity{AccountID: "alice"}, time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNoIdentity)

	// 写入新会话时清理过期条目
	require.NoError(t, store.Set(ctx, "new", Identity{AccountID: "bob"}, time.Minute))
	assert.Equal(t, 1, store.Len())
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sess := NewContext(store, "sid", time.Hour)
	other := NewContext(store, "other", time.Hour)

	assert.Equal(t, "sid", sess.ID())
	require.NoError(t, sess.SetCurrentUser(ctx, Identity{AccountID: "alice", Role: models.RoleAdmin}))

	current, err := sess.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", current.AccountID)

	// 会话之间互不影响
	_, err = other.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoIdentity)

	require.NoError(t, sess.Clear(ctx))
	_, err = sess.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoIdentity)
}
