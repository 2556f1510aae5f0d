package models

import (
	"time"
)

// LikeHistory 对应于数据库中的 like_histories 表
// 同一用户对同一帖子只能有一条记录，由联合唯一索引保证
type LikeHistory struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId" gorm:"column:user_id;not null;uniqueIndex:idx_like_histories_user_board"`
	BoardID   int64     `json:"boardId" gorm:"column:board_id;not null;uniqueIndex:idx_like_histories_user_board;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName 指定 LikeHistory 结构体对应的数据库表名
func (LikeHistory) TableName() string {
	return "like_histories"
}

// LikeCount 按帖子分组的点赞计数
type LikeCount struct {
	BoardID   int64 `gorm:"column:board_id"`
	LikeCount int64 `gorm:"column:like_count"`
}
