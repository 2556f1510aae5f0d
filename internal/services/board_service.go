package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/freeboard/internal/logging"
	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/repositories"
	"github.com/freeboard/pkg/markdownx"
)

// BoardService 定义了帖子及点赞相关的业务接口
// accountID 为当前操作者账号，viewer 为可选的浏览者账号
type BoardService interface {
	List(ctx context.Context, page models.PageRequest, viewer *string) (*models.BoardPage, error)
	Search(ctx context.Context, page models.PageRequest, keyword string, searchType models.SearchType, viewer *string) (*models.BoardPage, error)
	Latest(ctx context.Context, limit int) ([]models.Board, error)
	Create(ctx context.Context, form models.BoardForm, accountID string) (*models.Board, error)
	Update(ctx context.Context, form models.BoardForm, accountID string, id int64) error
	Delete(ctx context.Context, id int64, accountID string) error
	Like(ctx context.Context, accountID string, boardID int64) (*models.LikeHistory, error)
	// Unlike likeHistoryID 为 0 时不做校验，否则必须与 (用户, 帖子) 对应的记录一致
	Unlike(ctx context.Context, accountID string, likeHistoryID, boardID int64) error
}

// boardService 是 BoardService 的实现
type boardService struct {
	store repositories.Store
}

// NewBoardService 创建一个新的 boardService 实例
func NewBoardService(store repositories.Store) BoardService {
	return &boardService{store: store}
}

func (s *boardService) List(ctx context.Context, page models.PageRequest, viewer *string) (*models.BoardPage, error) {
	var result *models.BoardPage
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		boards, total, err := tx.Boards().FindAll(ctx, page)
		if err != nil {
			return err
		}
		result, err = s.toPage(ctx, tx, boards, total, page, viewer)
		return err
	})
	return result, err
}

func (s *boardService) Search(
	ctx context.Context, page models.PageRequest, keyword string, searchType models.SearchType, viewer *string,
) (*models.BoardPage, error) {
	var result *models.BoardPage
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var (
			boards []models.Board
			total  int64
			err    error
		)
		if searchType == models.SearchTypeWriter {
			users, err := tx.Users().FindAllByAccountIDContaining(ctx, keyword)
			if err != nil {
				return err
			}
			writerIDs := lo.Map(users, func(u models.User, _ int) int64 { return u.ID })
			boards, total, err = tx.Boards().FindAllByWriterIn(ctx, writerIDs, page)
			if err != nil {
				return err
			}
		} else {
			boards, total, err = tx.Boards().SearchByTitleOrContents(ctx, keyword, searchType, page)
			if err != nil {
				return err
			}
		}
		result, err = s.toPage(ctx, tx, boards, total, page, viewer)
		return err
	})
	return result, err
}

func (s *boardService) Latest(ctx context.Context, limit int) ([]models.Board, error) {
	boards, _, err := s.store.Boards().FindAll(ctx, models.PageRequest{Page: 0, Size: limit, SortBy: "createdAt", SortOrder: "desc"})
	return boards, err
}

// toPage 合并帖子、点赞数以及浏览者是否点赞
func (s *boardService) toPage(
	ctx context.Context, tx repositories.Store, boards []models.Board, total int64, page models.PageRequest, viewer *string,
) (*models.BoardPage, error) {
	boardIDs := lo.Map(boards, func(b models.Board, _ int) int64 { return b.ID })

	likeCounts, err := tx.LikeHistories().CountGroupedByBoard(ctx, boardIDs, nil)
	if err != nil {
		return nil, err
	}
	likeCountMap := toCountMap(likeCounts)

	viewerLikeMap := map[int64]int64{}
	if viewer != nil {
		user, err := tx.Users().FindByAccountID(ctx, *viewer)
		switch {
		case err == nil:
			viewerCounts, err := tx.LikeHistories().CountGroupedByBoard(ctx, boardIDs, &user.ID)
			if err != nil {
				return nil, err
			}
			viewerLikeMap = toCountMap(viewerCounts)
		case errors.Is(err, repositories.ErrRecordNotFound):
			// 会话中的账号已不存在，按匿名浏览处理
			logging.GetSystemLogger().WithField("viewer", *viewer).Warn("viewer not found, listing anonymously")
		default:
			return nil, err
		}
	}

	items := make([]models.BoardView, 0, len(boards))
	for _, board := range boards {
		view := models.BoardView{
			ID:           board.ID,
			Title:        board.Title,
			Contents:     board.Contents,
			ContentsHTML: markdownx.ToSafeHTML(board.Contents),
			CreatedAt:    board.CreatedAt,
			UpdatedAt:    board.UpdatedAt,
			// 没有点赞记录的帖子计为 0
			LikePoint: likeCountMap[board.ID],
			Like:      viewerLikeMap[board.ID] > 0,
		}
		if board.Writer != nil {
			view.Writer = models.NewUserDto(board.Writer)
		}
		items = append(items, view)
	}

	return &models.BoardPage{
		Items:      items,
		TotalItems: total,
		TotalPages: models.TotalPages(total, page.Size),
		Page:       page.Page,
		PageSize:   page.Size,
	}, nil
}

func toCountMap(counts []models.LikeCount) map[int64]int64 {
	return lo.SliceToMap(counts, func(c models.LikeCount) (int64, int64) { return c.BoardID, c.LikeCount })
}

// sanitizeTitle 去掉标题中的 HTML 标签，结果为空时拒绝
func sanitizeTitle(raw string) (string, error) {
	title := markdownx.StripTags(raw)
	if title == "" {
		return "", ErrInvalidTitle
	}
	return title, nil
}

func (s *boardService) Create(ctx context.Context, form models.BoardForm, accountID string) (*models.Board, error) {
	title, err := sanitizeTitle(form.Title)
	if err != nil {
		return nil, err
	}

	var board *models.Board
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx, accountID)
		if err != nil {
			return err
		}

		board = &models.Board{
			Title:    title,
			Contents: form.Contents,
			WriterID: user.ID,
			Writer:   user,
		}
		return tx.Boards().Create(ctx, board)
	})
	if err != nil {
		return nil, err
	}

	logging.GetSystemLogger().WithFields(logrus.Fields{"boardId": board.ID, "accountId": accountID}).Info("board created")
	return board, nil
}

func (s *boardService) Update(ctx context.Context, form models.BoardForm, accountID string, id int64) error {
	title, err := sanitizeTitle(form.Title)
	if err != nil {
		return err
	}

	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		target, err := authorize(ctx, tx, accountID, id)
		if err != nil {
			return err
		}

		// 作者保持不变，只替换内容
		target.Title = title
		target.Contents = form.Contents
		return tx.Boards().UpdateContent(ctx, target)
	})
}

// Delete 删除帖子，连同它的点赞记录
func (s *boardService) Delete(ctx context.Context, id int64, accountID string) error {
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := authorize(ctx, tx, accountID, id); err != nil {
			return err
		}
		if err := tx.LikeHistories().DeleteByBoardID(ctx, id); err != nil {
			return err
		}
		return tx.Boards().DeleteByID(ctx, id)
	})
	if err != nil {
		return err
	}

	logging.GetSystemLogger().WithFields(logrus.Fields{"boardId": id, "accountId": accountID}).Info("board deleted")
	return nil
}

func (s *boardService) Like(ctx context.Context, accountID string, boardID int64) (*models.LikeHistory, error) {
	var history *models.LikeHistory
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		user, target, err := findActorAndBoard(ctx, tx, accountID, boardID)
		if err != nil {
			return err
		}

		if _, err := tx.LikeHistories().FindByUserAndBoard(ctx, user.ID, target.ID); err == nil {
			return ErrLikeAlreadyExists
		} else if !errors.Is(err, repositories.ErrRecordNotFound) {
			return err
		}

		history = &models.LikeHistory{UserID: user.ID, BoardID: target.ID}
		if err := tx.LikeHistories().Create(ctx, history); err != nil {
			// 并发点赞时，检查与插入之间的竞争由唯一索引兜底
			if errors.Is(err, repositories.ErrLikeHistoryExists) {
				return ErrLikeAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (s *boardService) Unlike(ctx context.Context, accountID string, likeHistoryID, boardID int64) error {
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		user, target, err := findActorAndBoard(ctx, tx, accountID, boardID)
		if err != nil {
			return err
		}

		history, err := tx.LikeHistories().FindByUserAndBoard(ctx, user.ID, target.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrRecordNotFound) {
				return ErrLikeNotFound
			}
			return err
		}
		// 只能删除自己在该帖子上的点赞记录
		if likeHistoryID != 0 && likeHistoryID != history.ID {
			return ErrLikeNotFound
		}
		return tx.LikeHistories().DeleteByID(ctx, history.ID)
	})
}

func findActor(ctx context.Context, tx repositories.Store, accountID string) (*models.User, error) {
	user, err := tx.Users().FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func findActorAndBoard(ctx context.Context, tx repositories.Store, accountID string, boardID int64) (*models.User, *models.Board, error) {
	user, err := findActor(ctx, tx, accountID)
	if err != nil {
		return nil, nil, err
	}
	board, err := tx.Boards().FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, nil, ErrContentNotFound
		}
		return nil, nil, err
	}
	return user, board, nil
}

// authorize 只有作者本人或管理员可以修改、删除帖子
func authorize(ctx context.Context, tx repositories.Store, accountID string, boardID int64) (*models.Board, error) {
	user, board, err := findActorAndBoard(ctx, tx, accountID, boardID)
	if err != nil {
		return nil, err
	}
	if board.WriterID != user.ID && !user.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return board, nil
}
