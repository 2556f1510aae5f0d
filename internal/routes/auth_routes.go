package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/freeboard/internal/handlers"
	"github.com/freeboard/internal/middleware"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(apiV1 *gin.RouterGroup, deps Dependencies) {
	h := handlers.NewAuthHandler(deps.UserService, deps.Authenticator)
	limiter := middleware.NewRateLimiter(deps.LoginRatePerMin)

	// 公共认证路由组
	publicAuthGroup := apiV1.Group("/auth")
	{
		publicAuthGroup.POST("/register", h.Register)
		publicAuthGroup.POST("/login", limiter.Middleware(), h.Login)
		// 未登录或 Token 已失效时登出同样成功
		publicAuthGroup.POST("/logout", deps.Authenticator.OptionalJWTMiddleware(), h.Logout)
	}

	// 受保护的认证路由组
	protectedAuthGroup := apiV1.Group("/auth")
	protectedAuthGroup.Use(deps.Authenticator.JWTMiddleware())
	{
		protectedAuthGroup.GET("/me", h.Me)
	}
}
