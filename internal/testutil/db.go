// Package testutil 提供测试用的内存数据库
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/freeboard/internal/migrations" // 注册数据库迁移
	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/repositories"
	"github.com/freeboard/pkg/db"
)

// NewTestDB 创建一个已迁移到最新版本的独立内存 sqlite 数据库，测试结束后自动关闭
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	gdb, err := db.Open(db.DriverSQLite, dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.RunMigrate(context.Background(), gdb, ""))
	return gdb
}

// NewTestStore ...
func NewTestStore(t *testing.T) repositories.Store {
	t.Helper()
	return repositories.NewGormStore(NewTestDB(t))
}

// CreateUser 直接写入用户，密码哈希为占位值
func CreateUser(t *testing.T, store repositories.Store, accountID string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{AccountID: accountID, PasswordHash: "-", Role: role}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

// CreateBoard ...
func CreateBoard(t *testing.T, store repositories.Store, writer *models.User, title, contents string) *models.Board {
	t.Helper()

	board := &models.Board{Title: title, Contents: contents, WriterID: writer.ID, Writer: writer}
	require.NoError(t, store.Boards().Create(context.Background(), board))
	return board
}
