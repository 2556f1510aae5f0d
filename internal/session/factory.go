package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/freeboard/configs"
)

// NewStore 按配置创建会话存储：memory（默认）或 redis
func NewStore(ctx context.Context, cfg configs.Configuration) (Store, error) {
	switch cfg.SessionStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return nil, errors.Wrapf(err, "ping redis %s", cfg.RedisAddr)
		}
		return NewRedisStore(rdb), nil
	case "memory", "":
		return NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unsupported session store: %s", cfg.SessionStore)
	}
}
