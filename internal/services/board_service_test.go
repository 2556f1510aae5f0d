package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/repositories"
	"github.com/freeboard/internal/services"
	"github.com/freeboard/internal/testutil"
)

type boardFixture struct {
	store repositories.Store
	svc   services.BoardService
	alice *models.User
	bob   *models.User
	admin *models.User
}

func newBoardFixture(t *testing.T) *boardFixture {
	store := testutil.NewTestStore(t)
	return &boardFixture{
		store: store,
		svc:   services.NewBoardService(store),
		alice: testutil.CreateUser(t, store, "alice", models.RoleUser),
		bob:   testutil.CreateUser(t, store, "bob", models.RoleUser),
		admin: testutil.CreateUser(t, store, "admin", models.RoleAdmin),
	}
}

func firstPage() models.PageRequest {
	return models.PageRequest{Page: 0, Size: 10}
}

func ptr(s string) *string {
	return &s
}

func TestCreateBoard(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	board, err := f.svc.Create(ctx, models.BoardForm{Title: "<b>hello</b>", Contents: "**world**"}, "alice")
	require.NoError(t, err)
	assert.NotZero(t, board.ID)
	assert.Equal(t, "hello", board.Title)
	assert.Equal(t, f.alice.ID, board.WriterID)

	_, err = f.svc.Create(ctx, models.BoardForm{Title: "t", Contents: "c"}, "nobody")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUpdateBoardAuthorization(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	board := testutil.CreateBoard(t, f.store, f.alice, "title", "contents")

	cases := []struct {
		name      string
		accountID string
		id        int64
		expected  error
	}{
		{"other user", "bob", board.ID, services.ErrNotAuthorized},
		{"unknown user", "nobody", board.ID, services.ErrUserNotFound},
		{"unknown board", "alice", board.ID + 100, services.ErrContentNotFound},
		{"writer", "alice", board.ID, nil},
		{"admin", "admin", board.ID, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			form := models.BoardForm{Title: "by " + c.accountID, Contents: "updated"}
			err := f.svc.Update(ctx, form, c.accountID, c.id)
			if c.expected != nil {
				assert.ErrorIs(t, err, c.expected)
				return
			}
			require.NoError(t, err)

			updated, err := f.store.Boards().FindByID(ctx, board.ID)
			require.NoError(t, err)
			assert.Equal(t, form.Title, updated.Title)
			// 管理员修改后作者不变
			assert.Equal(t, f.alice.ID, updated.WriterID)
		})
	}
}

func TestTagOnlyTitleRejected(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	board := testutil.CreateBoard(t, f.store, f.alice, "title", "contents")

	for _, title := range []string{"<b></b>", "<script>x</script>", "  <i> </i> "} {
		_, err := f.svc.Create(ctx, models.BoardForm{Title: title, Contents: "c"}, "alice")
		assert.ErrorIs(t, err, services.ErrInvalidTitle, title)

		err = f.svc.Update(ctx, models.BoardForm{Title: title, Contents: "changed"}, "alice", board.ID)
		assert.ErrorIs(t, err, services.ErrInvalidTitle, title)
	}

	// 被拒绝的修改不落库
	stored, err := f.store.Boards().FindByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", stored.Title)
	assert.Equal(t, "contents", stored.Contents)

	_, total, err := f.store.Boards().FindAll(ctx, firstPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestDeleteBoard(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	board := testutil.CreateBoard(t, f.store, f.alice, "title", "contents")
	other := testutil.CreateBoard(t, f.store, f.bob, "other", "contents")

	_, err := f.svc.Like(ctx, "bob", board.ID)
	require.NoError(t, err)
	_, err = f.svc.Like(ctx, "alice", other.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, board.ID, "bob"), services.ErrNotAuthorized)
	require.NoError(t, f.svc.Delete(ctx, board.ID, "alice"))

	_, err = f.store.Boards().FindByID(ctx, board.ID)
	assert.ErrorIs(t, err, repositories.ErrRecordNotFound)
	// 点赞记录随帖子一起删除，其它帖子不受影响
	_, err = f.store.LikeHistories().FindByUserAndBoard(ctx, f.bob.ID, board.ID)
	assert.ErrorIs(t, err, repositories.ErrRecordNotFound)
	_, err = f.store.LikeHistories().FindByUserAndBoard(ctx, f.alice.ID, other.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, board.ID, "alice"), services.ErrContentNotFound)
	// 管理员可以删除任何人的帖子
	assert.NoError(t, f.svc.Delete(ctx, other.ID, "admin"))
}

func TestListBoards(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	first := testutil.CreateBoard(t, f.store, f.alice, "first", "# heading")
	second := testutil.CreateBoard(t, f.store, f.bob, "second", "contents")

	_, err := f.svc.Like(ctx, "alice", first.ID)
	require.NoError(t, err)
	_, err = f.svc.Like(ctx, "bob", first.ID)
	require.NoError(t, err)

	t.Run("anonymous", func(t *testing.T) {
		page, err := f.svc.List(ctx, firstPage(), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.TotalItems)
		assert.Equal(t, int64(1), page.TotalPages)
		require.Len(t, page.Items, 2)

		// 默认按创建时间倒序
		assert.Equal(t, second.ID, page.Items[0].ID)
		assert.Equal(t, int64(0), page.Items[0].LikePoint)
		assert.False(t, page.Items[0].Like)
		assert.Equal(t, "bob", page.Items[0].Writer.AccountID)

		assert.Equal(t, first.ID, page.Items[1].ID)
		assert.Equal(t, int64(2), page.Items[1].LikePoint)
		assert.False(t, page.Items[1].Like)
		assert.Contains(t, page.Items[1].ContentsHTML, "<h1")
	})

	t.Run("viewer", func(t *testing.T) {
		page, err := f.svc.List(ctx, firstPage(), ptr("alice"))
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.False(t, page.Items[0].Like)
		assert.True(t, page.Items[1].Like)
	})

	t.Run("viewer without likes", func(t *testing.T) {
		page, err := f.svc.List(ctx, firstPage(), ptr("admin"))
		require.NoError(t, err)
		for _, item := range page.Items {
			assert.False(t, item.Like)
		}
	})

	t.Run("unknown viewer is anonymous", func(t *testing.T) {
		page, err := f.svc.List(ctx, firstPage(), ptr("ghost"))
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})

	t.Run("empty page", func(t *testing.T) {
		page, err := f.svc.List(ctx, models.PageRequest{Page: 5, Size: 10}, nil)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(2), page.TotalItems)
	})
}

func TestSearchBoards(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	testutil.CreateBoard(t, f.store, f.alice, "golang tips", "channels")
	testutil.CreateBoard(t, f.store, f.alice, "misc", "about golang")
	liked := testutil.CreateBoard(t, f.store, f.bob, "weekend", "hiking")

	_, err := f.svc.Like(ctx, "alice", liked.ID)
	require.NoError(t, err)

	cases := []struct {
		keyword    string
		searchType models.SearchType
		expected   int64
	}{
		{"golang", models.SearchTypeTitle, 1},
		{"golang", models.SearchTypeContents, 1},
		{"golang", models.SearchTypeAll, 2},
		{"ali", models.SearchTypeWriter, 2},
		{"o", models.SearchTypeWriter, 1},
		{"nobody", models.SearchTypeWriter, 0},
		{"ALI", models.SearchTypeWriter, 0},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s_%s", c.searchType, c.keyword), func(t *testing.T) {
			page, err := f.svc.Search(ctx, firstPage(), c.keyword, c.searchType, nil)
			require.NoError(t, err)
			assert.Equal(t, c.expected, page.TotalItems)
			assert.Len(t, page.Items, int(c.expected))
		})
	}

	page, err := f.svc.Search(ctx, firstPage(), "bob", models.SearchTypeWriter, ptr("alice"))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].Like)
	assert.Equal(t, int64(1), page.Items[0].LikePoint)
}

func TestLikeAndUnlike(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	board := testutil.CreateBoard(t, f.store, f.alice, "title", "contents")

	history, err := f.svc.Like(ctx, "bob", board.ID)
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, history.UserID)

	_, err = f.svc.Like(ctx, "bob", board.ID)
	assert.ErrorIs(t, err, services.ErrLikeAlreadyExists)

	_, err = f.svc.Like(ctx, "nobody", board.ID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	_, err = f.svc.Like(ctx, "bob", board.ID+100)
	assert.ErrorIs(t, err, services.ErrContentNotFound)

	// 不能通过 likeHistoryId 删除其他人的点赞
	other, err := f.svc.Like(ctx, "alice", board.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.Unlike(ctx, "bob", other.ID, board.ID), services.ErrLikeNotFound)

	require.NoError(t, f.svc.Unlike(ctx, "bob", history.ID, board.ID))
	assert.ErrorIs(t, f.svc.Unlike(ctx, "bob", history.ID, board.ID), services.ErrLikeNotFound)

	// 取消后可以再次点赞
	_, err = f.svc.Like(ctx, "bob", board.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Unlike(ctx, "bob", 0, board.ID))

	page, err := f.svc.List(ctx, firstPage(), nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Items[0].LikePoint)
}

func TestLikeConcurrently(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	board := testutil.CreateBoard(t, f.store, f.alice, "title", "contents")

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Like(ctx, "bob", board.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, services.ErrLikeAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)

	counts, err := f.store.LikeHistories().CountGroupedByBoard(ctx, []int64{board.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.LikeCount{{BoardID: board.ID, LikeCount: 1}}, counts)
}
