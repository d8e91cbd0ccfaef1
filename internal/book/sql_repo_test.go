package book_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGitu/bookmanagerrmh2/internal/author"
	"github.com/PabloGitu/bookmanagerrmh2/internal/book"
	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
	"github.com/PabloGitu/bookmanagerrmh2/internal/publisher"
	"github.com/PabloGitu/bookmanagerrmh2/internal/testutil"
)

func newRepo(t *testing.T) *book.SQLRepo {
	t.Helper()
	return book.NewSQLRepo(testutil.OpenTestStore(t), 2*time.Second)
}

func TestSQLRepo_SaveAssignsID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	b := &book.Book{Title: "Dune", ISBN: "978-0441172719", PublicationDate: "1965-08-01"}
	require.NoError(t, repo.Save(ctx, b))
	assert.NotZero(t, b.ID)

	got, err := repo.FindOne(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, *b, got)
	assert.Nil(t, got.AuthorID)
}

func TestSQLRepo_SaveUpdates(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	b := &book.Book{Title: "Dune"}
	require.NoError(t, repo.Save(ctx, b))

	b.Title = "Dune Messiah"
	b.Description = "the sequel"
	require.NoError(t, repo.Save(ctx, b))

	got, err := repo.FindOne(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, "the sequel", got.Description)
}

func TestSQLRepo_UpdateUnknownID(t *testing.T) {
	repo := newRepo(t)

	err := repo.Save(context.Background(), &book.Book{ID: 99, Title: "Dune"})
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestSQLRepo_FindOneUnknownID(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindOne(context.Background(), 99)
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestSQLRepo_FindAllPaginates(t *testing.T) {
	s := testutil.OpenTestStore(t)
	repo := book.NewSQLRepo(s, 2*time.Second)
	ctx := context.Background()

	for _, title := range []string{"Dune", "Hyperion", "Foundation"} {
		require.NoError(t, repo.Save(ctx, &book.Book{Title: title}))
	}

	page := paging.PageRequest{Page: 0, Size: 2, Sort: []paging.Order{{Property: "title"}}}
	books, total, err := repo.FindAll(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Foundation", books[1].Title)

	page.Page = 1
	books, total, err = repo.FindAll(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, books, 1)
	assert.Equal(t, "Hyperion", books[0].Title)
}

func TestSQLRepo_FindAllEmpty(t *testing.T) {
	repo := newRepo(t)

	books, total, err := repo.FindAll(context.Background(), paging.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestSQLRepo_FindByAuthor(t *testing.T) {
	s := testutil.OpenTestStore(t)
	repo := book.NewSQLRepo(s, 2*time.Second)

	herbert := &author.Author{Name: "Frank Herbert"}
	simmons := &author.Author{Name: "Dan Simmons"}
	dune := testutil.BookModel(&book.Book{Title: "Dune"})
	messiah := testutil.BookModel(&book.Book{Title: "Dune Messiah"})
	hyperion := testutil.BookModel(&book.Book{Title: "Hyperion"})

	testutil.Persist(t, s,
		testutil.AuthorModel(herbert).With(dune, messiah),
		testutil.AuthorModel(simmons).With(hyperion),
	)

	books, total, err := repo.FindByAuthor(context.Background(), herbert.ID,
		paging.PageRequest{Size: 20, Sort: []paging.Order{{Property: "title"}}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Dune Messiah", books[1].Title)
}

func TestSQLRepo_FindByPublisher(t *testing.T) {
	s := testutil.OpenTestStore(t)
	repo := book.NewSQLRepo(s, 2*time.Second)

	chilton := &publisher.Publisher{Name: "Chilton Books"}
	dune := testutil.BookModel(&book.Book{Title: "Dune"})

	testutil.Persist(t, s,
		testutil.PublisherModel(chilton).With(dune),
		testutil.BookModel(&book.Book{Title: "Hyperion"}),
	)

	books, total, err := repo.FindByPublisher(context.Background(), chilton.ID,
		paging.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestSQLRepo_Delete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	b := &book.Book{Title: "Dune"}
	require.NoError(t, repo.Save(ctx, b))

	deleted, err := repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindOne(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestSQLRepo_DeletedIDsAreNotReused(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := &book.Book{Title: "Dune"}
	require.NoError(t, repo.Save(ctx, first))
	_, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)

	second := &book.Book{Title: "Hyperion"}
	require.NoError(t, repo.Save(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}
