package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freeboard/internal/logging"
	"github.com/freeboard/internal/services"
	"github.com/freeboard/pkg/utils"
)

// PaginationInfo 定义了通用的分页信息结构
type PaginationInfo struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"` // 从 1 开始
	PageSize    int   `json:"pageSize"`
}

// PageQuery 列表 / 搜索接口共用的分页参数
type PageQuery struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder,default=desc"`
}

// respondServiceError 把业务层错误映射为 HTTP 响应
func respondServiceError(c *gin.Context, err error, fallbackMessage string) {
	utils.SetError(c, err)

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.RespondNotFoundError(c, "用户")
	case errors.Is(err, services.ErrContentNotFound):
		utils.RespondNotFoundError(c, "帖子")
	case errors.Is(err, services.ErrNotAuthorized):
		utils.RespondForbiddenError(c, services.ErrNotAuthorized.Error())
	case errors.Is(err, services.ErrLikeAlreadyExists):
		utils.RespondConflictError(c, services.ErrLikeAlreadyExists.Error())
	case errors.Is(err, services.ErrLikeNotFound):
		utils.RespondNotFoundError(c, "点赞记录")
	case errors.Is(err, services.ErrInvalidTitle):
		utils.RespondValidationError(c, services.ErrInvalidTitle.Error())
	case errors.Is(err, services.ErrAuthenticationFailed):
		utils.RespondUnauthorizedError(c, services.ErrAuthenticationFailed.Error())
	default:
		logging.GetWebLogger().WithFields(logrus.Fields{
			"requestID": utils.GetRequestID(c),
			"path":      c.FullPath(),
		}).WithError(err).Error(fallbackMessage)
		utils.RespondInternalServerError(c, fallbackMessage, err.Error())
	}
}

// badRequest 记录并返回参数错误
func badRequest(c *gin.Context, err error) {
	utils.SetError(c, err)
	utils.RespondValidationError(c, err.Error())
}

