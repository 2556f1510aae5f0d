package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store 聚合了所有数据仓库，并提供事务边界
type Store interface {
	Users() UserRepository
	Boards() BoardRepository
	LikeHistories() LikeHistoryRepository
	// Transaction 在同一个事务中执行 fn，fn 返回错误时整体回滚
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// gormStore 是 Store 的 GORM 实现
type gormStore struct {
	db *gorm.DB
}

// NewGormStore 创建一个新的 gormStore 实例
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository {
	return NewGormUserRepository(s.db)
}

func (s *gormStore) Boards() BoardRepository {
	return NewGormBoardRepository(s.db)
}

func (s *gormStore) LikeHistories() LikeHistoryRepository {
	return NewGormLikeHistoryRepository(s.db)
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
