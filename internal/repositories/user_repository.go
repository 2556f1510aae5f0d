package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/freeboard/internal/models"
	"github.com/freeboard/pkg/db"
)

// UserRepository 定义了用户数据仓库的接口
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// FindByAccountID 按账号精确查找，未找到返回 ErrRecordNotFound
	FindByAccountID(ctx context.Context, accountID string) (*models.User, error)
	// FindAllByAccountIDContaining 账号包含 keyword 的所有用户（区分大小写）
	FindAllByAccountIDContaining(ctx context.Context, keyword string) ([]models.User, error)
	CountByAccountID(ctx context.Context, accountID string) (int64, error)
}

// gormUserRepository 是 UserRepository 的 GORM 实现
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create 创建用户，账号唯一约束冲突时返回 ErrAccountIDExists
func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAccountIDExists
		}
		return errors.Wrap(err, "create user")
	}
	return nil
}

func (r *gormUserRepository) FindByAccountID(ctx context.Context, accountID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Wrapf(err, "find user %s", accountID)
	}
	return &user, nil
}

func (r *gormUserRepository) FindAllByAccountIDContaining(ctx context.Context, keyword string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where(accountIDContainsClause(r.db.Dialector.Name()), keyword).Find(&users).Error
	return users, errors.Wrap(err, "find users by account id")
}

// accountIDContainsClause 区分大小写的子串匹配
// sqlite 的 INSTR 按字节比较；mysql 的 INSTR 遵循列的排序规则（utf8mb4 默认不区分大小写），需转为二进制比较
func accountIDContainsClause(dialect string) string {
	if dialect == db.DriverMySQL {
		return "INSTR(CAST(account_id AS BINARY), CAST(? AS BINARY)) > 0"
	}
	return "INSTR(account_id, ?) > 0"
}

func (r *gormUserRepository) CountByAccountID(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, errors.Wrap(err, "count users")
}
