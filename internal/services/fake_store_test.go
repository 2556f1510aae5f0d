package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/repositories"
	"github.com/freeboard/internal/services"
)

// fakeStore 用于模拟“先查后插”之间被其他请求抢先写入的情形
// sqlite 测试库只有一个连接，无法真实复现这种竞争
type fakeStore struct {
	users repositories.UserRepository
	board repositories.BoardRepository
	likes repositories.LikeHistoryRepository
}

func (s *fakeStore) Users() repositories.UserRepository { return s.users }
func (s *fakeStore) Boards() repositories.BoardRepository { return s.board }
func (s *fakeStore) LikeHistories() repositories.LikeHistoryRepository { return s.likes }

func (s *fakeStore) Transaction(_ context.Context, fn func(tx repositories.Store) error) error {
	return fn(s)
}

// 未覆盖的方法来自嵌入的 nil 接口，被调用时会 panic
type fakeUserRepository struct {
	repositories.UserRepository
	existing  *models.User
	createErr error
	created   int
}

func (r *fakeUserRepository) FindByAccountID(_ context.Context, _ string) (*models.User, error) {
	if r.existing == nil {
		return nil, repositories.ErrRecordNotFound
	}
	return r.existing, nil
}

func (r *fakeUserRepository) Create(_ context.Context, _ *models.User) error {
	r.created++
	return r.createErr
}

type fakeBoardRepository struct {
	repositories.BoardRepository
	board *models.Board
}

func (r *fakeBoardRepository) FindByID(_ context.Context, id int64) (*models.Board, error) {
	if r.board == nil || r.board.ID != id {
		return nil, repositories.ErrRecordNotFound
	}
	return r.board, nil
}

type fakeLikeHistoryRepository struct {
	repositories.LikeHistoryRepository
	createErr error
}

func (r *fakeLikeHistoryRepository) FindByUserAndBoard(_ context.Context, _, _ int64) (*models.LikeHistory, error) {
	return nil, repositories.ErrRecordNotFound
}

func (r *fakeLikeHistoryRepository) Create(_ context.Context, _ *models.LikeHistory) error {
	return r.createErr
}

func TestLikeUniqueIndexConflict(t *testing.T) {
	bob := &models.User{ID: 2, AccountID: "bob", Role: models.RoleUser}
	store := &fakeStore{
		users: &fakeUserRepository{existing: bob},
		board: &fakeBoardRepository{board: &models.Board{ID: 7, WriterID: 1}},
		// 查询时还没有记录，插入时唯一索引冲突
		likes: &fakeLikeHistoryRepository{createErr: repositories.ErrLikeHistoryExists},
	}
	svc := services.NewBoardService(store)

	history, err := svc.Like(context.Background(), "bob", 7)
	assert.ErrorIs(t, err, services.ErrLikeAlreadyExists)
	assert.Nil(t, history)
}

func TestRegisterUniqueIndexConflict(t *testing.T) {
	users := &fakeUserRepository{createErr: repositories.ErrAccountIDExists}
	svc := services.NewUserService(&fakeStore{users: users})

	created, err := svc.Register(context.Background(), models.UserForm{AccountID: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, users.created)
}
