package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/freeboard/configs"
	"github.com/freeboard/internal/auth"
	"github.com/freeboard/internal/logging"
	_ "github.com/freeboard/internal/migrations" // 注册数据库迁移
	"github.com/freeboard/internal/repositories"
	"github.com/freeboard/internal/routes"
	"github.com/freeboard/internal/services"
	"github.com/freeboard/internal/session"
	"github.com/freeboard/pkg/db"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve start http server.",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// bootstrap 加载配置、初始化日志和数据库
func bootstrap() {
	configs.LoadConfig()
	logging.InitLogger()
	db.InitDB()
}

func runServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap()
	defer db.CloseDB()

	cfg := configs.AppConfig
	logger := logging.GetSystemLogger()

	// 启动时自动迁移到最新版本
	if err := db.RunMigrate(ctx, db.GetDB(), ""); err != nil {
		logger.Fatalf("failed to run migrate: %s", err)
	}

	sessionStore, err := session.NewStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to init session store: %s", err)
	}

	store := repositories.NewGormStore(db.GetDB())
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	routes.SetupRoutes(router, routes.Dependencies{
		UserService:     services.NewUserService(store),
		BoardService:    services.NewBoardService(store),
		Authenticator:   auth.NewAuthenticator(cfg.JWTSecret, sessionStore, cfg.TokenTTL),
		SiteBaseURL:     cfg.SiteBaseURL,
		LoginRatePerMin: cfg.LoginRatePerMin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		color.Green("Starting server at http://0.0.0.0:%s/", cfg.ServerPort)
		color.Cyan("Swagger UI: http://127.0.0.1:%s/swagger/index.html", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
}
