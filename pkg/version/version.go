// Package version 保存构建时通过 -ldflags 注入的版本信息
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version 例如 go build -ldflags "-X github.com/freeboard/pkg/version.Version=v1.0.0"
	Version = "dev"
	// GitCommit ...
	GitCommit = "unknown"
	// BuildTime ...
	BuildTime = "unknown"
)

// GetVersion 返回可读的版本信息
func GetVersion() string {
	return fmt.Sprintf(
		"Version: %s\nGitCommit: %s\nBuildTime: %s\nGoVersion: %s",
		Version, GitCommit, BuildTime, runtime.Version(),
	)
}
