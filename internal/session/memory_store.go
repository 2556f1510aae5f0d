package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	identity  Identity
	expiresAt time.Time
}

// MemoryStore 进程内的会话存储，服务重启会丢失，多实例部署请使用 RedisStore
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore ...
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, found := s.sessions[sessionID]
	if !found || !s.now().Before(entry.expiresAt) {
		return nil, ErrNoIdentity
	}
	identity := entry.identity
	return &identity, nil
}

// Set 写入会话，并顺带清理已过期的条目
func (s *MemoryStore) Set(_ context.Context, sessionID string, identity Identity, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sessions[sessionID] = memoryEntry{identity: identity, expiresAt: now.Add(ttl)}

	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Len 返回当前保存的会话数（含未清理的过期会话）
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
