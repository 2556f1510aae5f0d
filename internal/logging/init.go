package logging

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/freeboard/configs"
)

const (
	LogTypeSystem = "system" // 进程生命周期，文本格式，即 logrus 标准 logger
	LogTypeAccess = "access" // 访问日志
	LogTypeWeb    = "web"    // Handler 层日志
	LogTypeSql    = "sql"    // gorm 输出的 sql 日志
)

var (
	initOnce sync.Once
	mu       sync.RWMutex
	// system 之外的各类日志，InitLogger 之前为空
	loggers = map[string]*logrus.Logger{}
)

// InitLogger 按 configs.AppConfig 初始化各类日志，需在 LoadConfig 之后调用
func InitLogger() {
	initOnce.Do(func() {
		level := parseLevel(configs.AppConfig.LogLevel)

		setup(logrus.StandardLogger(), LogTypeSystem, level, &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.DateTime,
		})

		mu.Lock()
		defer mu.Unlock()
		for _, logType := range []string{LogTypeAccess, LogTypeWeb, LogTypeSql} {
			logger := logrus.New()
			setup(logger, logType, level, &logrus.JSONFormatter{TimestampFormat: time.DateTime})
			loggers[logType] = logger
		}
	})
}

func GetSystemLogger() *logrus.Logger {
	return logrus.StandardLogger()
}

func GetAccessLogger() *logrus.Logger {
	return getLogger(LogTypeAccess)
}

func GetWebLogger() *logrus.Logger {
	return getLogger(LogTypeWeb)
}

func GetSqlLogger() *logrus.Logger {
	return getLogger(LogTypeSql)
}

// getLogger 未初始化时退回 system logger
func getLogger(logType string) *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if logger, ok := loggers[logType]; ok {
		return logger
	}
	return GetSystemLogger()
}

func setup(logger *logrus.Logger, logType string, level logrus.Level, formatter logrus.Formatter) {
	writer, err := getWriter(logType)
	if err != nil {
		panic(err)
	}
	configure(logger, writer, formatter, levelFor(logType, level))
}

func configure(logger *logrus.Logger, w io.Writer, formatter logrus.Formatter, level logrus.Level) {
	logger.SetOutput(w)
	logger.SetFormatter(formatter)
	logger.SetLevel(level)
}

// levelFor 访问日志至少保留 info，其余日志使用配置的等级
func levelFor(logType string, level logrus.Level) logrus.Level {
	if logType == LogTypeAccess && level < logrus.InfoLevel {
		return logrus.InfoLevel
	}
	return level
}

// 日志等级（panic/fatal/error/warn/info/debug/trace），非法值按 info 处理
func parseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
