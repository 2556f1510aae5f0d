package utils

import "github.com/gin-gonic/gin"

const (
	// RequestIDHeaderKey ...
	RequestIDHeaderKey = "X-Request-ID"
	// RequestIDKey ...
	RequestIDKey = "requestID"
	// ErrorKey ...
	ErrorKey = "error"
)

// GetRequestID ...
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// SetRequestID ...
func SetRequestID(c *gin.Context, requestID string) {
	c.Set(RequestIDKey, requestID)
}

// GetError ...
func GetError(c *gin.Context) (any, bool) {
	return c.Get(ErrorKey)
}

// SetError 记录需要写入访问日志的错误
func SetError(c *gin.Context, err error) {
	c.Set(ErrorKey, err)
}
