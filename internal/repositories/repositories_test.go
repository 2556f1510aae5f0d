package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/repositories"
	"github.com/freeboard/internal/testutil"
)

func defaultPage() models.PageRequest {
	return models.PageRequest{Page: 0, Size: 10, SortBy: "createdAt", SortOrder: "desc"}
}

func TestUserRepositoryUniqueAccountID(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.CreateUser(t, store, "alice", models.RoleUser)

	err := store.Users().Create(ctx, &models.User{AccountID: "alice", PasswordHash: "-", Role: models.RoleUser})
	assert.ErrorIs(t, err, repositories.ErrAccountIDExists)

	count, err := store.Users().CountByAccountID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = store.Users().FindByAccountID(ctx, "bob")
	assert.ErrorIs(t, err, repositories.ErrRecordNotFound)
}

func TestFindAllByAccountIDContaining(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, accountID := range []string{"alice", "malice", "Alice2", "bob"} {
		testutil.CreateUser(t, store, accountID, models.RoleUser)
	}

	users, err := store.Users().FindAllByAccountIDContaining(ctx, "lic")
	require.NoError(t, err)
	assert.Len(t, users, 3)

	// 区分大小写
	users, err = store.Users().FindAllByAccountIDContaining(ctx, "Ali")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice2", users[0].AccountID)
}

func TestBoardRepositoryPagination(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()
	writer := testutil.CreateUser(t, store, "alice", models.RoleUser)

	for i := 0; i < 12; i++ {
		testutil.CreateBoard(t, store, writer, fmt.Sprintf("title %02d", i), "contents")
	}

	boards, total, err := store.Boards().FindAll(ctx, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, boards, 10)
	// 最新的在前，并带上作者
	assert.Equal(t, "title 11", boards[0].Title)
	require.NotNil(t, boards[0].Writer)
	assert.Equal(t, "alice", boards[0].Writer.AccountID)

	page := defaultPage()
	page.Page = 1
	boards, _, err = store.Boards().FindAll(ctx, page)
	require.NoError(t, err)
	assert.Len(t, boards, 2)

	page = models.PageRequest{Page: 0, Size: 3, SortBy: "title", SortOrder: "asc"}
	boards, _, err = store.Boards().FindAll(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, "title 00", boards[0].Title)
}

func TestBoardRepositorySearch(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, store, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, store, "bob", models.RoleUser)

	testutil.CreateBoard(t, store, alice, "hello go", "first post")
	testutil.CreateBoard(t, store, alice, "second", "about go modules")
	testutil.CreateBoard(t, store, bob, "100% done", "nothing")

	_, total, err := store.Boards().SearchByTitleOrContents(ctx, "go", models.SearchTypeTitle, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = store.Boards().SearchByTitleOrContents(ctx, "go", models.SearchTypeAll, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 通配符按字面量匹配
	boards, total, err := store.Boards().SearchByTitleOrContents(ctx, "0%", models.SearchTypeTitle, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "100% done", boards[0].Title)

	_, total, err = store.Boards().SearchByTitleOrContents(ctx, "_", models.SearchTypeAll, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	boards, total, err = store.Boards().FindAllByWriterIn(ctx, []int64{bob.ID}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, bob.ID, boards[0].WriterID)

	boards, total, err = store.Boards().FindAllByWriterIn(ctx, nil, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, boards)
}

func TestBoardRepositoryUpdateKeepsWriter(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, store, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, store, "bob", models.RoleUser)
	board := testutil.CreateBoard(t, store, alice, "title", "contents")

	require.NoError(t, store.Boards().UpdateContent(ctx, &models.Board{
		ID: board.ID, Title: "new title", Contents: "new contents", WriterID: bob.ID,
	}))

	updated, err := store.Boards().FindByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "new contents", updated.Contents)
	assert.Equal(t, alice.ID, updated.WriterID)

	require.NoError(t, store.Boards().DeleteByID(ctx, board.ID))
	_, err = store.Boards().FindByID(ctx, board.ID)
	assert.ErrorIs(t, err, repositories.ErrRecordNotFound)
}

func TestLikeHistoryRepository(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, store, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, store, "bob", models.RoleUser)
	first := testutil.CreateBoard(t, store, alice, "first", "contents")
	second := testutil.CreateBoard(t, store, alice, "second", "contents")
	third := testutil.CreateBoard(t, store, alice, "third", "contents")

	likes := store.LikeHistories()
	require.NoError(t, likes.Create(ctx, &models.LikeHistory{UserID: alice.ID, BoardID: first.ID}))
	require.NoError(t, likes.Create(ctx, &models.LikeHistory{UserID: bob.ID, BoardID: first.ID}))
	require.NoError(t, likes.Create(ctx, &models.LikeHistory{UserID: bob.ID, BoardID: second.ID}))

	err := likes.Create(ctx, &models.LikeHistory{UserID: bob.ID, BoardID: second.ID})
	assert.ErrorIs(t, err, repositories.ErrLikeHistoryExists)

	boardIDs := []int64{first.ID, second.ID, third.ID}
	counts, err := likes.CountGroupedByBoard(ctx, boardIDs, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.LikeCount{
		{BoardID: first.ID, LikeCount: 2},
		{BoardID: second.ID, LikeCount: 1},
	}, counts)

	counts, err = likes.CountGroupedByBoard(ctx, boardIDs, &alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.LikeCount{{BoardID: first.ID, LikeCount: 1}}, counts)

	counts, err = likes.CountGroupedByBoard(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)

	require.NoError(t, likes.DeleteByBoardID(ctx, first.ID))
	_, err = likes.FindByUserAndBoard(ctx, bob.ID, first.ID)
	assert.ErrorIs(t, err, repositories.ErrRecordNotFound)

	history, err := likes.FindByUserAndBoard(ctx, bob.ID, second.ID)
	require.NoError(t, err)
	require.NoError(t, likes.DeleteByID(ctx, history.ID))
	_, err = likes.FindByUserAndBoard(ctx, bob.ID, second.ID)
	assert.ErrorIs(t, err, repositories.ErrRecordNotFound)
}

func TestStoreTransactionRollback(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Users().Create(ctx, &models.User{AccountID: "alice", PasswordHash: "-", Role: models.RoleUser}); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	count, err := store.Users().CountByAccountID(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, count)
}
