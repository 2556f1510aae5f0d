package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/freeboard/internal/models"
	"github.com/freeboard/pkg/db"
)

func init() {
	// Do Not Edit Migration ID!
	migrationID := "20240601_120000"

	db.RegisterMigration(&gormigrate.Migration{
		ID: migrationID,
		Migrate: func(tx *gorm.DB) error {
			logApplying(migrationID)

			// like_histories 上的 (user_id, board_id) 联合唯一索引保证每人每帖最多一个赞
			return tx.AutoMigrate(&models.User{}, &models.Board{}, &models.LikeHistory{})
		},
		Rollback: func(tx *gorm.DB) error {
			logRollingBack(migrationID)

			return tx.Migrator().DropTable(&models.LikeHistory{}, &models.Board{}, &models.User{})
		},
	})
}
