package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/freeboard/internal/logging"
	_ "github.com/freeboard/internal/migrations" // 注册数据库迁移
	"github.com/freeboard/pkg/db"
	"github.com/freeboard/pkg/version"
)

// NewMigrateCmd ...
func NewMigrateCmd() *cobra.Command {
	var migrationID string

	migrateCmd := cobra.Command{
		Use:   "migrate",
		Short: "Apply migrations to the database tables.",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			bootstrap()
			defer db.CloseDB()
			logger := logging.GetSystemLogger()

			if err := db.RunMigrate(ctx, db.GetDB(), migrationID); err != nil {
				logger.Fatalf("failed to run migrate: %s", err)
			}
			dbVersion, err := db.Version(ctx, db.GetDB())
			if err != nil {
				logger.Fatalf("failed to get database version: %s", err)
			}
			logger.Infof("migrate success %s\nDatabaseVersion: %s", version.GetVersion(), dbVersion)
		},
	}

	migrateCmd.Flags().StringVar(&migrationID, "migration", "", "migration to apply, blank means latest version")

	return &migrateCmd
}

func init() {
	rootCmd.AddCommand(NewMigrateCmd())
}
