package main

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/freeboard/internal/logging"
	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/repositories"
	"github.com/freeboard/internal/services"
	"github.com/freeboard/pkg/db"
)

// NewCreateAdminCmd 创建管理员账号，管理员可以修改、删除任意帖子
func NewCreateAdminCmd() *cobra.Command {
	var form models.UserForm

	createAdminCmd := cobra.Command{
		Use:   "create-admin",
		Short: "Create an ADMIN account.",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			bootstrap()
			defer db.CloseDB()
			logger := logging.GetSystemLogger()

			if err := db.RunMigrate(ctx, db.GetDB(), ""); err != nil {
				logger.Fatalf("failed to run migrate: %s", err)
			}

			svc := services.NewUserService(repositories.NewGormStore(db.GetDB()))
			created, err := svc.RegisterAdmin(ctx, form)
			if err != nil {
				logger.Fatalf("failed to create admin: %s", err)
			}
			if !created {
				color.Yellow("account %s already exists", form.AccountID)
				return
			}
			color.Green("admin %s created", form.AccountID)
		},
	}

	createAdminCmd.Flags().StringVar(&form.AccountID, "account", "", "admin account id")
	createAdminCmd.Flags().StringVar(&form.Password, "password", "", "admin password")
	_ = createAdminCmd.MarkFlagRequired("account")
	_ = createAdminCmd.MarkFlagRequired("password")

	return &createAdminCmd
}

func init() {
	rootCmd.AddCommand(NewCreateAdminCmd())
}
