package services

import (
	"github.com/pkg/errors"
)

// 服务层错误，调用方使用 errors.Is 判断类型
var (
	// ErrUserNotFound 操作者账号不存在
	ErrUserNotFound = errors.New("用户未找到")
	// ErrContentNotFound 帖子不存在
	ErrContentNotFound = errors.New("帖子未找到")
	// ErrNotAuthorized 既不是作者也不是管理员
	ErrNotAuthorized = errors.New("只有作者或管理员可以操作该帖子")
	// ErrLikeAlreadyExists 已经点过赞
	ErrLikeAlreadyExists = errors.New("已经点过赞")
	// ErrLikeNotFound 没有可以取消的点赞
	ErrLikeNotFound = errors.New("点赞记录不存在")
	// ErrAuthenticationFailed 账号不存在或密码错误
	ErrAuthenticationFailed = errors.New("无效的账号或密码")
	// ErrInvalidTitle 去掉 HTML 标签后标题为空
	ErrInvalidTitle = errors.New("标题不能为空")
)
