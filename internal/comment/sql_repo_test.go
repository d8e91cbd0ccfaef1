package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGitu/bookmanagerrmh2/internal/book"
	"github.com/PabloGitu/bookmanagerrmh2/internal/comment"
	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
	"github.com/PabloGitu/bookmanagerrmh2/internal/testutil"
)

func newRepo(t *testing.T) *comment.SQLRepo {
	t.Helper()
	return comment.NewSQLRepo(testutil.OpenTestStore(t), 2*time.Second)
}

func TestSQLRepo_SaveAndFindOne(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	c := &comment.Comment{Text: "a classic", Date: "2020-01-01T10:00:00Z"}
	require.NoError(t, repo.Save(ctx, c))
	assert.NotZero(t, c.ID)

	got, err := repo.FindOne(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, *c, got)
	assert.Nil(t, got.BookID)

	_, err = repo.FindOne(ctx, 99)
	assert.ErrorIs(t, err, comment.ErrNotFound)
}

func TestSQLRepo_UpdateUnknownID(t *testing.T) {
	repo := newRepo(t)

	err := repo.Save(context.Background(),
		&comment.Comment{ID: 99, Text: "ghost", Date: "2020-01-01T10:00:00Z"})
	assert.ErrorIs(t, err, comment.ErrNotFound)
}

func TestSQLRepo_FindByBook(t *testing.T) {
	s := testutil.OpenTestStore(t)
	repo := comment.NewSQLRepo(s, 2*time.Second)

	dune := &book.Book{Title: "Dune"}
	hyperion := &book.Book{Title: "Hyperion"}
	first := &comment.Comment{Text: "a classic", Date: "2020-01-01T10:00:00Z"}
	second := &comment.Comment{Text: "read it twice", Date: "2021-06-15T08:30:00Z"}
	other := &comment.Comment{Text: "long but worth it", Date: "2022-03-02T12:00:00Z"}

	testutil.Persist(t, s,
		testutil.BookModel(dune).With(testutil.CommentModel(first), testutil.CommentModel(second)),
		testutil.BookModel(hyperion).With(testutil.CommentModel(other)),
	)

	comments, total, err := repo.FindByBook(context.Background(), dune.ID,
		paging.PageRequest{Size: 20, Sort: []paging.Order{{Property: "date"}}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, comments, 2)
	assert.Equal(t, "a classic", comments[0].Text)
	assert.Equal(t, "read it twice", comments[1].Text)
	require.NotNil(t, comments[0].BookID)
	assert.Equal(t, dune.ID, *comments[0].BookID)
}

func TestSQLRepo_FindByBookUnknownID(t *testing.T) {
	repo := newRepo(t)

	comments, total, err := repo.FindByBook(context.Background(), 404, paging.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, comments)
}

func TestSQLRepo_Delete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	c := &comment.Comment{Text: "a classic", Date: "2020-01-01T10:00:00Z"}
	require.NoError(t, repo.Save(ctx, c))

	deleted, err := repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
