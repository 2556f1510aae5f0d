package middleware

import (
	"time"

	"github.com/TencentBlueKing/gopkg/stringx"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freeboard/internal/auth"
	"github.com/freeboard/internal/logging"
	"github.com/freeboard/pkg/utils"
)

// Logger 记录访问日志，请求体可能包含密码，不做记录
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 检查错误信息，以手动设置的为主，否则检查 c.Errors
		errStr := ""
		if e, ok := utils.GetError(c); ok {
			if err, isErr := e.(error); isErr {
				errStr = err.Error()
			}
		} else if len(c.Errors) > 0 {
			errStr = c.Errors.String()
		}

		// 统计请求耗时，单位为 ms，限制最小 1ms
		latency := float64(time.Since(start)/time.Millisecond) + 1

		accountID, _ := auth.CurrentAccountID(c)
		fields := logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"params":    stringx.Truncate(c.Request.URL.RawQuery, 1024),
			"status":    c.Writer.Status(),
			"latency":   latency,
			"requestID": utils.GetRequestID(c),
			"accountID": accountID,
			"clientIP":  c.ClientIP(),
			"error":     errStr,
		}

		logger := logging.GetAccessLogger()
		if errStr != "" || c.Writer.Status() >= 500 {
			logger.WithFields(fields).Error("-")
		} else {
			logger.WithFields(fields).Info("-")
		}
	}
}
