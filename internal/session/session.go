// Package session 保存登录会话中的“当前用户”
package session

import (
	"context"
	"errors"
	"time"

	"github.com/freeboard/internal/models"
)

// ErrNoIdentity 会话中没有已登录的用户
var ErrNoIdentity = errors.New("会话中没有已登录用户")

// Identity 会话中绑定的当前用户
type Identity struct {
	AccountID string          `json:"accountId"`
	Role      models.UserRole `json:"role"`
}

// Store 按会话 ID 保存 Identity，实现需保证并发安全
type Store interface {
	// Get 会话不存在或已过期时返回 ErrNoIdentity
	Get(ctx context.Context, sessionID string) (*Identity, error)
	Set(ctx context.Context, sessionID string, identity Identity, ttl time.Duration) error
	// Delete 会话不存在时不报错
	Delete(ctx context.Context, sessionID string) error
}

// Context 是某一个会话的句柄，只暴露当前用户这一个槽位
type Context struct {
	store Store
	id    string
	ttl   time.Duration
}

// NewContext ...
func NewContext(store Store, sessionID string, ttl time.Duration) *Context {
	return &Context{store: store, id: sessionID, ttl: ttl}
}

// ID 返回会话 ID（即 JWT 的 jti）
func (c *Context) ID() string {
	return c.id
}

// CurrentUser 返回当前用户，未登录时返回 ErrNoIdentity
func (c *Context) CurrentUser(ctx context.Context) (*Identity, error) {
	return c.store.Get(ctx, c.id)
}

// SetCurrentUser 绑定当前用户
func (c *Context) SetCurrentUser(ctx context.Context, identity Identity) error {
	return c.store.Set(ctx, c.id, identity, c.ttl)
}

// Clear 解除绑定，可重复调用
func (c *Context) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, c.id)
}
