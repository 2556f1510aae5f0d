package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/freeboard/pkg/utils"
)

// Cors 允许前端跨域携带 Authorization 头访问 API
func Cors() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", utils.RequestIDHeaderKey},
		ExposeHeaders:    []string{utils.RequestIDHeaderKey},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
