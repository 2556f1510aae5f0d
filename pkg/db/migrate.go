package db

import (
	"context"
	"sort"
	"sync"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type migrationSet struct {
	sync.Mutex
	mapping map[string]*gormigrate.Migration
}

func (s *migrationSet) register(m *gormigrate.Migration) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.mapping[m.ID]; ok {
		return errors.Errorf("migration %s already registered", m.ID)
	}
	s.mapping[m.ID] = m
	return nil
}

// 按 ID 升序返回，ID 为时间戳格式，即按创建顺序执行
func (s *migrationSet) sorted() []*gormigrate.Migration {
	s.Lock()
	defer s.Unlock()

	migrations := make([]*gormigrate.Migration, 0, len(s.mapping))
	for _, m := range s.mapping {
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].ID < migrations[j].ID })
	return migrations
}

var (
	migSet         *migrationSet
	migSetInitOnce sync.Once
)

func getMigrationSet() *migrationSet {
	migSetInitOnce.Do(func() {
		migSet = &migrationSet{mapping: map[string]*gormigrate.Migration{}}
	})
	return migSet
}

// RegisterMigration 注册迁移，重复注册直接 panic（只会发生在 init 阶段）
func RegisterMigration(m *gormigrate.Migration) {
	if err := getMigrationSet().register(m); err != nil {
		panic(err)
	}
}

// RunMigrate 执行迁移，migrationID 为空表示迁移到最新版本
func RunMigrate(ctx context.Context, gdb *gorm.DB, migrationID string) error {
	migrations := getMigrationSet().sorted()
	if len(migrations) == 0 {
		return errors.New("no migration registered")
	}
	m := gormigrate.New(gdb.WithContext(ctx), gormigrate.DefaultOptions, migrations)
	if migrationID == "" {
		return m.Migrate()
	}
	return m.MigrateTo(migrationID)
}

// Version 返回最近一次已执行的迁移 ID
func Version(ctx context.Context, gdb *gorm.DB) (string, error) {
	var id string
	err := gdb.WithContext(ctx).
		Table(gormigrate.DefaultOptions.TableName).
		Select(gormigrate.DefaultOptions.IDColumnName).
		Order(gormigrate.DefaultOptions.IDColumnName + " DESC").
		Limit(1).
		Scan(&id).Error
	return id, err
}
