package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const redisKeyPrefix = "freeboard:session:"

// RedisStore 基于 Redis 的会话存储，过期由 Redis TTL 负责
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore ...
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Identity, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoIdentity
		}
		return nil, errors.Wrap(err, "redis get session")
	}

	var identity Identity
	if err = json.Unmarshal(data, &identity); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &identity, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, identity Identity, ttl time.Duration) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	return errors.Wrap(s.rdb.Set(ctx, redisKeyPrefix+sessionID, data, ttl).Err(), "redis set session")
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return errors.Wrap(s.rdb.Del(ctx, redisKeyPrefix+sessionID).Err(), "redis delete session")
}
