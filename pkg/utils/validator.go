package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var ErrInvalidID = errors.New("无效的ID，必须是正整数")

const (
	// MaxPageSize 单页最大数量
	MaxPageSize = 50
	// DefaultPageSize 默认单页数量
	DefaultPageSize = 10
	// MinPage 最小页码数（对外从 1 开始）
	MinPage = 1
)

// ParseID 解析路径或查询参数中的正整数 ID
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParseOptionalID 空字符串返回 0
func ParseOptionalID(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return ParseID(s)
}

// NormalizePage 将对外从 1 开始的页码转换为从 0 开始，并限制单页数量
func NormalizePage(page, limit int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	limit = lo.Min([]int{MaxPageSize, limit})
	page = lo.Max([]int{MinPage, page})
	return page - 1, limit
}

// NormalizeSortOrder 只接受 asc / desc，默认 desc
func NormalizeSortOrder(order string) string {
	if strings.ToLower(order) == "asc" {
		return "asc"
	}
	return "desc"
}
