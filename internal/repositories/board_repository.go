package repositories

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freeboard/internal/models"
)

// BoardRepository 定义了帖子数据仓库的接口
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	// FindByID 未找到返回 ErrRecordNotFound，结果包含 Writer
	FindByID(ctx context.Context, id int64) (*models.Board, error)
	FindAll(ctx context.Context, page models.PageRequest) ([]models.Board, int64, error)
	FindAllByWriterIn(ctx context.Context, writerIDs []int64, page models.PageRequest) ([]models.Board, int64, error)
	FindAllBySpec(ctx context.Context, spec *BoardSpec, page models.PageRequest) ([]models.Board, int64, error)
	// SearchByTitleOrContents 按 searchType 在标题、正文中做包含匹配，多个字段之间为 OR
	SearchByTitleOrContents(ctx context.Context, keyword string, searchType models.SearchType, page models.PageRequest) ([]models.Board, int64, error)
	// UpdateContent 只更新标题和正文，writer_id 永远不会被写入
	UpdateContent(ctx context.Context, board *models.Board) error
	DeleteByID(ctx context.Context, id int64) error
}

// gormBoardRepository 是 BoardRepository 的 GORM 实现
type gormBoardRepository struct {
	db *gorm.DB
}

// NewGormBoardRepository 创建一个新的 gormBoardRepository 实例
func NewGormBoardRepository(db *gorm.DB) BoardRepository {
	return &gormBoardRepository{db: db}
}

// 白名单校验 sortBy 字段，防止 SQL 注入
var allowedSortByFields = map[string]string{
	"id":        "boards.id",
	"title":     "boards.title",
	"createdAt": "boards.created_at",
	"updatedAt": "boards.updated_at",
}

func orderClause(page models.PageRequest) string {
	column, ok := allowedSortByFields[page.SortBy]
	if !ok {
		column = "boards.created_at" // 如果字段无效，则使用默认排序字段
	}
	direction := "desc"
	if strings.ToLower(page.SortOrder) == "asc" {
		direction = "asc"
	}
	// 追加主键排序，保证同一时间创建的帖子顺序稳定
	return column + " " + direction + ", boards.id " + direction
}

func (r *gormBoardRepository) Create(ctx context.Context, board *models.Board) error {
	// Writer 已存在，不需要级联写入
	return errors.Wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(board).Error, "create board")
}

func (r *gormBoardRepository) FindByID(ctx context.Context, id int64) (*models.Board, error) {
	var board models.Board
	if err := r.db.WithContext(ctx).Preload("Writer").First(&board, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Wrapf(err, "find board %d", id)
	}
	return &board, nil
}

func (r *gormBoardRepository) FindAll(ctx context.Context, page models.PageRequest) ([]models.Board, int64, error) {
	return r.FindAllBySpec(ctx, nil, page)
}

func (r *gormBoardRepository) FindAllByWriterIn(ctx context.Context, writerIDs []int64, page models.PageRequest) ([]models.Board, int64, error) {
	if len(writerIDs) == 0 {
		return []models.Board{}, 0, nil
	}
	return r.paginate(ctx, r.db.WithContext(ctx).Model(&models.Board{}).Where("boards.writer_id IN ?", writerIDs), page)
}

func (r *gormBoardRepository) FindAllBySpec(ctx context.Context, spec *BoardSpec, page models.PageRequest) ([]models.Board, int64, error) {
	return r.paginate(ctx, spec.apply(r.db.WithContext(ctx).Model(&models.Board{})), page)
}

func (r *gormBoardRepository) SearchByTitleOrContents(ctx context.Context, keyword string, searchType models.SearchType, page models.PageRequest) ([]models.Board, int64, error) {
	spec := HasContents(keyword, searchType).Or(HasTitle(keyword, searchType))
	return r.FindAllBySpec(ctx, spec, page)
}

// 先计算总数再按排序分页查询
func (r *gormBoardRepository) paginate(ctx context.Context, query *gorm.DB, page models.PageRequest) ([]models.Board, int64, error) {
	var totalItems int64
	if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count boards")
	}

	boards := make([]models.Board, 0, page.Size)
	err := query.Session(&gorm.Session{}).
		Preload("Writer").
		Order(orderClause(page)).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&boards).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list boards")
	}
	return boards, totalItems, nil
}

func (r *gormBoardRepository) UpdateContent(ctx context.Context, board *models.Board) error {
	err := r.db.WithContext(ctx).
		Model(&models.Board{ID: board.ID}).
		Updates(map[string]interface{}{
			"title":    board.Title,
			"contents": board.Contents,
		}).Error
	return errors.Wrapf(err, "update board %d", board.ID)
}

func (r *gormBoardRepository) DeleteByID(ctx context.Context, id int64) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&models.Board{}, id).Error, "delete board %d", id)
}
