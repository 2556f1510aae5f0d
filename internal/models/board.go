package models

import (
	"time"
)

// Board 对应于数据库中的 boards 表，即一篇帖子
type Board struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"column:title;not null;size:255"`
	Contents  string    `json:"contents" gorm:"column:contents;type:text;not null"`
	WriterID  int64     `json:"-" gorm:"column:writer_id;not null;index"` // 创建时确定，之后不再变更
	Writer    *User     `json:"writer,omitempty" gorm:"foreignKey:WriterID"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 Board 结构体对应的数据库表名
func (Board) TableName() string {
	return "boards"
}

// BoardForm 创建 / 更新帖子时提交的字段
type BoardForm struct {
	Title    string `json:"title" binding:"required,max=255"`
	Contents string `json:"contents" binding:"required"`
}

// SearchType 搜索字段
type SearchType string

const (
	SearchTypeWriter   SearchType = "WRITER"
	SearchTypeTitle    SearchType = "TITLE"
	SearchTypeContents SearchType = "CONTENTS"
	SearchTypeAll      SearchType = "ALL" // 标题或正文
)

// IsValidSearchType ...
func IsValidSearchType(t SearchType) bool {
	switch t {
	case SearchTypeWriter, SearchTypeTitle, SearchTypeContents, SearchTypeAll:
		return true
	}
	return false
}

// BoardView 列表展示用的帖子，附带点赞数和当前浏览者是否已点赞
type BoardView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Contents     string    `json:"contents"`
	ContentsHTML string    `json:"contentsHtml"`
	Writer       UserDto   `json:"writer"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LikePoint    int64     `json:"likePoint"`
	Like         bool      `json:"like"`
}

// BoardPage 帖子分页结果
type BoardPage struct {
	Items      []BoardView `json:"items"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int64       `json:"totalPages"`
	Page       int         `json:"page"` // 从 0 开始
	PageSize   int         `json:"pageSize"`
}
