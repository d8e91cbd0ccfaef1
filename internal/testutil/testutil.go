package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/qawatake/fixify"
	"github.com/stretchr/testify/require"

	"github.com/PabloGitu/bookmanagerrmh2/internal/author"
	"github.com/PabloGitu/bookmanagerrmh2/internal/book"
	"github.com/PabloGitu/bookmanagerrmh2/internal/comment"
	"github.com/PabloGitu/bookmanagerrmh2/internal/config"
	"github.com/PabloGitu/bookmanagerrmh2/internal/publisher"
	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

const repoTimeout = 2 * time.Second

// OpenTestStore opens a migrated in-memory database that is torn down
// with the test.
func OpenTestStore(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), config.Database{
		Driver: "sqlite",
		DSN:    "file::memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.MigrateUp())
	return s
}

// AuthorModel wraps an author so books can be attached to it.
func AuthorModel(a *author.Author) *fixify.Model[author.Author] {
	return fixify.NewModel(a)
}

// PublisherModel wraps a publisher so books can be attached to it.
func PublisherModel(p *publisher.Publisher) *fixify.Model[publisher.Publisher] {
	return fixify.NewModel(p)
}

// BookModel wraps a book; attached under an author or publisher it picks
// up their generated ids.
func BookModel(b *book.Book) *fixify.Model[book.Book] {
	return fixify.NewModel(b,
		fixify.ConnectorFunc(func(_ testing.TB, b *book.Book, a *author.Author) {
			b.AuthorID = &a.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, b *book.Book, p *publisher.Publisher) {
			b.PublisherID = &p.ID
		}),
	)
}

// CommentModel wraps a comment; attached under a book it picks up the
// book's generated id.
func CommentModel(c *comment.Comment) *fixify.Model[comment.Comment] {
	return fixify.NewModel(c,
		fixify.ConnectorFunc(func(_ testing.TB, c *comment.Comment, b *book.Book) {
			c.BookID = &b.ID
		}),
	)
}

// Persist saves the fixture models in dependency order so foreign keys
// resolve to real rows.
func Persist(t testing.TB, s *store.Store, models ...fixify.IModel) {
	t.Helper()
	ctx := context.Background()
	authors := author.NewSQLRepo(s, repoTimeout)
	publishers := publisher.NewSQLRepo(s, repoTimeout)
	books := book.NewSQLRepo(s, repoTimeout)
	comments := comment.NewSQLRepo(s, repoTimeout)

	fixify.New(t, models...).Apply(func(m any) error {
		switch v := m.(type) {
		case *author.Author:
			return authors.Save(ctx, v)
		case *publisher.Publisher:
			return publishers.Save(ctx, v)
		case *book.Book:
			return books.Save(ctx, v)
		case *comment.Comment:
			return comments.Save(ctx, v)
		default:
			return fmt.Errorf("no repository for %T", v)
		}
	})
}

// NewJSONRequest builds a request with a JSON-encoded body.
func NewJSONRequest(t testing.TB, method, path string, body any) *http.Request {
	t.Helper()
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	r := httptest.NewRequest(method, path, bytes.NewReader(buf))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// DecodeJSON unmarshals a response recorder body into v.
func DecodeJSON(t testing.TB, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}
