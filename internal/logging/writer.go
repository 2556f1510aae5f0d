package logging

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/freeboard/configs"
)

// 获取日志 Writer，这里返回双写 Writer（stdout & file）
func getWriter(logType string) (io.Writer, error) {
	fileWriter, err := getFileWriter(logType)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(os.Stdout, fileWriter), nil
}

func getFileWriter(logType string) (io.Writer, error) {
	baseDir := configs.AppConfig.LogDir
	if baseDir == "" {
		baseDir = "logs"
	}
	// 不同的日志类型分目录存储
	path := filepath.Join(baseDir, logType)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.MkdirAll(path, os.ModePerm); err != nil {
			return nil, err
		}
	}

	return &lumberjack.Logger{
		Filename: filepath.Join(path, logType+".log"),
		// megabytes
		MaxSize:    128,
		MaxBackups: 10,
		// days
		MaxAge:    14,
		LocalTime: true,
	}, nil
}
