package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/freeboard/internal/handlers"
)

// SetupBoardRoutes 设置帖子及点赞相关路由
func SetupBoardRoutes(apiV1 *gin.RouterGroup, deps Dependencies) {
	h := handlers.NewBoardHandler(deps.BoardService, deps.SiteBaseURL)

	// 匿名可访问，携带 Token 时附带是否已点赞
	publicBoardGroup := apiV1.Group("/boards")
	publicBoardGroup.Use(deps.Authenticator.OptionalJWTMiddleware())
	{
		publicBoardGroup.GET("", h.ListBoards)
		publicBoardGroup.GET("/search", h.SearchBoards)
		publicBoardGroup.GET("/feed", h.Feed)
	}

	protectedBoardGroup := apiV1.Group("/boards")
	protectedBoardGroup.Use(deps.Authenticator.JWTMiddleware())
	{
		protectedBoardGroup.POST("", h.CreateBoard)
		protectedBoardGroup.PUT("/:id", h.UpdateBoard)
		protectedBoardGroup.DELETE("/:id", h.DeleteBoard)
		protectedBoardGroup.POST("/:id/like", h.LikeBoard)
		protectedBoardGroup.DELETE("/:id/like", h.UnlikeBoard)
	}
}
