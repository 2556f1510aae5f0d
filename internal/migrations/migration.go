// Package migrations stores all database migrations
package migrations

import (
	"github.com/freeboard/internal/logging"
)

// 打印执行迁移的日志
func logApplying(migrationID string) {
	logging.GetSystemLogger().Infof("Applying migration %s", migrationID)
}

// 打印回滚迁移的日志
func logRollingBack(migrationID string) {
	logging.GetSystemLogger().Infof("Rolling back migration %s", migrationID)
}
