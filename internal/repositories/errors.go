package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，直接复用 gorm 的错误
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ErrAccountIDExists 表示账号已存在
var ErrAccountIDExists = errors.New("账号已存在")

// ErrLikeHistoryExists 表示该用户已对该帖子点过赞（联合唯一索引冲突）
var ErrLikeHistoryExists = errors.New("点赞记录已存在")
