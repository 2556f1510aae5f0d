package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/freeboard/pkg/utils"
)

// RequestID 透传或生成 32 位的请求 ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(utils.RequestIDHeaderKey)

		if len(requestID) != 32 {
			requestID = strings.ReplaceAll(uuid.NewString(), "-", "")
		}
		utils.SetRequestID(c, requestID)
		c.Writer.Header().Set(utils.RequestIDHeaderKey, requestID)

		c.Next()
	}
}
