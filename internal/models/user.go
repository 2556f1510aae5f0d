package models

import (
	"time"
)

// UserRole 用户角色
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User 对应于数据库中的 users 表
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID    string    `json:"accountId" gorm:"column:account_id;uniqueIndex;not null;size:100"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null;size:255"` // 密码哈希不通过JSON暴露
	Role         UserRole  `json:"role" gorm:"column:role;not null;default:'USER';size:20"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否拥有管理员角色
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserForm 注册 / 登录提交的凭证
type UserForm struct {
	AccountID string `json:"accountId" binding:"required,max=100"`
	Password  string `json:"password" binding:"required,max=72"` // bcrypt 只使用前 72 字节
}

// UserDto 对外暴露的用户信息
type UserDto struct {
	AccountID string   `json:"accountId"`
	Role      UserRole `json:"role"`
}

// NewUserDto ...
func NewUserDto(u *User) UserDto {
	return UserDto{AccountID: u.AccountID, Role: u.Role}
}
