package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/freeboard/docs" // 注册 swagger 文档
	"github.com/freeboard/internal/auth"
	"github.com/freeboard/internal/middleware"
	"github.com/freeboard/internal/services"
)

// Dependencies 路由需要的服务实例
type Dependencies struct {
	UserService     services.UserService
	BoardService    services.BoardService
	Authenticator   *auth.Authenticator
	SiteBaseURL     string
	LoginRatePerMin int
}

// SetupRoutes 初始化所有路由
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.RequestID(), middleware.Logger(), middleware.Cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	apiV1 := api.Group("/v1") // 创建 /api/v1 路由组
	SetupAuthRoutes(apiV1, deps)
	SetupBoardRoutes(apiV1, deps)
}
