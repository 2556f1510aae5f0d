package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/freeboard/internal/models"
	"github.com/freeboard/pkg/db"
)

// LikeHistoryRepository 定义了点赞记录数据仓库的接口
type LikeHistoryRepository interface {
	// Create 创建点赞记录，(user, board) 唯一约束冲突时返回 ErrLikeHistoryExists
	Create(ctx context.Context, history *models.LikeHistory) error
	// FindByUserAndBoard 未找到返回 ErrRecordNotFound
	FindByUserAndBoard(ctx context.Context, userID, boardID int64) (*models.LikeHistory, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByBoardID(ctx context.Context, boardID int64) error
	// CountGroupedByBoard 统计 boardIDs 中每个帖子的点赞数，userID 非空时只统计该用户的点赞
	// 没有点赞的帖子不会出现在结果中
	CountGroupedByBoard(ctx context.Context, boardIDs []int64, userID *int64) ([]models.LikeCount, error)
}

// gormLikeHistoryRepository 是 LikeHistoryRepository 的 GORM 实现
type gormLikeHistoryRepository struct {
	db *gorm.DB
}

// NewGormLikeHistoryRepository 创建一个新的 gormLikeHistoryRepository 实例
func NewGormLikeHistoryRepository(db *gorm.DB) LikeHistoryRepository {
	return &gormLikeHistoryRepository{db: db}
}

func (r *gormLikeHistoryRepository) Create(ctx context.Context, history *models.LikeHistory) error {
	if err := r.db.WithContext(ctx).Create(history).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return ErrLikeHistoryExists
		}
		return errors.Wrap(err, "create like history")
	}
	return nil
}

func (r *gormLikeHistoryRepository) FindByUserAndBoard(ctx context.Context, userID, boardID int64) (*models.LikeHistory, error) {
	var history models.LikeHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "find like history")
	}
	return &history, nil
}

func (r *gormLikeHistoryRepository) DeleteByID(ctx context.Context, id int64) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&models.LikeHistory{}, id).Error, "delete like history %d", id)
}

func (r *gormLikeHistoryRepository) DeleteByBoardID(ctx context.Context, boardID int64) error {
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&models.LikeHistory{}).Error
	return errors.Wrapf(err, "delete like histories of board %d", boardID)
}

func (r *gormLikeHistoryRepository) CountGroupedByBoard(ctx context.Context, boardIDs []int64, userID *int64) ([]models.LikeCount, error) {
	counts := []models.LikeCount{}
	if len(boardIDs) == 0 {
		return counts, nil
	}

	query := r.db.WithContext(ctx).
		Model(&models.LikeHistory{}).
		Select("board_id, COUNT(*) AS like_count").
		Where("board_id IN ?", boardIDs)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Group("board_id").Scan(&counts).Error
	return counts, errors.Wrap(err, "count like histories")
}
