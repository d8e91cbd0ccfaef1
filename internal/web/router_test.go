package web_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGitu/bookmanagerrmh2/internal/config"
	"github.com/PabloGitu/bookmanagerrmh2/internal/testutil"
	"github.com/PabloGitu/bookmanagerrmh2/internal/web"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	return &testApp{t: t, handler: web.New(cfg, testutil.OpenTestStore(t))}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		r.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

type bookJSON struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	ISBN            string `json:"isbn"`
	PublicationDate string `json:"publicationDate"`
	Description     string `json:"description"`
	AuthorID        *int64 `json:"authorId"`
	PublisherID     *int64 `json:"publisherId"`
}

func TestBookLifecycle(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/books", `{"title":"Dune"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/books/1", w.Header().Get("Location"))
	assert.Equal(t, "bookmanagerrmh2App.book.created", w.Header().Get("X-bookmanagerrmh2App-alert"))
	assert.Equal(t, "1", w.Header().Get("X-bookmanagerrmh2App-params"))

	var created bookJSON
	testutil.DecodeJSON(t, w, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Dune", created.Title)

	w = app.do(http.MethodGet, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched bookJSON
	testutil.DecodeJSON(t, w, &fetched)
	assert.Equal(t, created, fetched)

	w = app.do(http.MethodPut, "/api/books", `{"id":1,"title":"Dune (rev)"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bookmanagerrmh2App.book.updated", w.Header().Get("X-bookmanagerrmh2App-alert"))

	w = app.do(http.MethodGet, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	testutil.DecodeJSON(t, w, &fetched)
	assert.Equal(t, "Dune (rev)", fetched.Title)

	w = app.do(http.MethodDelete, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bookmanagerrmh2App.book.deleted", w.Header().Get("X-bookmanagerrmh2App-alert"))

	w = app.do(http.MethodGet, "/api/books/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookProtocolErrors(t *testing.T) {
	app := newTestApp(t)

	t.Run("create with id", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/books", `{"id":7,"title":"Dune"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "error.idexists", w.Header().Get("X-bookmanagerrmh2App-error"))
		assert.Equal(t, "book", w.Header().Get("X-bookmanagerrmh2App-params"))
	})

	t.Run("update without id", func(t *testing.T) {
		w := app.do(http.MethodPut, "/api/books", `{"title":"Dune"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "error.idnull", w.Header().Get("X-bookmanagerrmh2App-error"))
	})

	t.Run("update unknown id", func(t *testing.T) {
		w := app.do(http.MethodPut, "/api/books", `{"id":9999,"title":"Dune"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("validation problem details", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/books", `{"isbn":"not-an-isbn"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var problem struct {
			Message     string `json:"message"`
			FieldErrors []struct {
				ObjectName string `json:"objectName"`
				Field      string `json:"field"`
				Message    string `json:"message"`
			} `json:"fieldErrors"`
		}
		testutil.DecodeJSON(t, w, &problem)
		assert.Equal(t, "error.validation", problem.Message)
		require.Len(t, problem.FieldErrors, 2)
		assert.Equal(t, "book", problem.FieldErrors[0].ObjectName)
	})

	t.Run("malformed path id", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/books/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "error.idinvalid", w.Header().Get("X-bookmanagerrmh2App-error"))
	})

	t.Run("delete unknown id is a no-op success", func(t *testing.T) {
		w := app.do(http.MethodDelete, "/api/books/424242", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bookmanagerrmh2App.book.deleted", w.Header().Get("X-bookmanagerrmh2App-alert"))
	})
}

func TestBookPagination(t *testing.T) {
	app := newTestApp(t)

	for i := 1; i <= 25; i++ {
		w := app.do(http.MethodPost, "/api/books", fmt.Sprintf(`{"title":"Book %02d"}`, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := app.do(http.MethodGet, "/api/books?page=1&size=10&sort=id,desc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "25", w.Header().Get("X-Total-Count"))

	link := w.Header().Get("Link")
	assert.Contains(t, link, `rel="next"`)
	assert.Contains(t, link, `rel="prev"`)
	assert.Contains(t, link, `rel="last"`)
	assert.Contains(t, link, `rel="first"`)
	assert.Contains(t, link, "sort=id%2Cdesc")

	var page []bookJSON
	testutil.DecodeJSON(t, w, &page)
	require.Len(t, page, 10)
	assert.Equal(t, int64(15), page[0].ID)
	assert.Equal(t, int64(6), page[9].ID)
}

func TestBooksFilteredByRelation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/authors", `{"name":"Frank Herbert"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(http.MethodPost, "/api/publishers", `{"name":"Chilton Books"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, "/api/books", `{"title":"Dune","authorId":1,"publisherId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(http.MethodPost, "/api/books", `{"title":"Dune Messiah","authorId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(http.MethodPost, "/api/books", `{"title":"Neuromancer"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("by author", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/books/author/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-Total-Count"))

		var page []bookJSON
		testutil.DecodeJSON(t, w, &page)
		require.Len(t, page, 2)
	})

	t.Run("by publisher", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/books/publisher/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
	})

	t.Run("unknown relation id yields an empty page", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/books/author/999", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-Total-Count"))
		assert.Equal(t, "[]\n", w.Body.String())
	})
}

func TestCommentFlow(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/books", `{"title":"Dune"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, "/api/comments", `{"text":"A masterpiece","bookId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID   int64  `json:"id"`
		Text string `json:"text"`
		Date string `json:"date"`
	}
	testutil.DecodeJSON(t, w, &created)
	assert.Equal(t, "A masterpiece", created.Text)
	_, err := time.Parse(time.RFC3339, created.Date)
	assert.NoError(t, err, "create stamps the comment date")

	w = app.do(http.MethodGet, "/api/comments/book/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	// Dropping the book cascades to its comments.
	w = app.do(http.MethodDelete, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(http.MethodGet, "/api/comments/book/1", "")
	assert.Equal(t, "0", w.Header().Get("X-Total-Count"))
}

func TestEntitiesMenu(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/entities", "")
	require.Equal(t, http.StatusOK, w.Code)

	var menu []struct {
		Name    string `json:"name"`
		Route   string `json:"route"`
		APIPath string `json:"apiPath"`
	}
	testutil.DecodeJSON(t, w, &menu)
	require.Len(t, menu, 4)
	assert.Equal(t, "author", menu[0].Name)
	assert.Equal(t, "book", menu[1].Name)
	assert.Equal(t, "comment", menu[2].Name)
	assert.Equal(t, "publisher", menu[3].Name)
	assert.Equal(t, "/entity/book", menu[1].Route)
	assert.Equal(t, "/api/books", menu[1].APIPath)
}

func TestManagementEndpoints(t *testing.T) {
	app := newTestApp(t)

	t.Run("health", func(t *testing.T) {
		w := app.do(http.MethodGet, "/management/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"UP"`)
	})

	t.Run("info", func(t *testing.T) {
		w := app.do(http.MethodGet, "/management/info", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"activeProfiles":["dev"]`)
	})

	t.Run("prometheus", func(t *testing.T) {
		w := app.do(http.MethodGet, "/management/prometheus", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "# HELP")
	})
}

func TestRequestHygiene(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/books", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	t.Run("cors preflight", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
		r.Header.Set("Origin", "http://localhost:9000")
		w := httptest.NewRecorder()
		app.handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:9000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Total-Count")
	})
}

func TestRateLimiting(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimit = config.RateLimit{Enabled: true, RPS: 0.001, Burst: 2}
	})

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/books", "").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/books", "").Code)

	w := app.do(http.MethodGet, "/api/books", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "error.http.429")
}

func TestSecuredAPI(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.Auth.Enabled = true
		cfg.Auth.Secret = "router-test-secret"
	})

	w := app.do(http.MethodGet, "/api/books", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	t.Run("management stays open", func(t *testing.T) {
		w := app.do(http.MethodGet, "/management/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/authenticate", `{"username":"admin","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	w = app.do(http.MethodPost, "/api/authenticate", `{"username":"admin","password":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	testutil.DecodeJSON(t, w, &body)
	require.NotEmpty(t, body["id_token"])
	app.token = body["id_token"]

	w = app.do(http.MethodGet, "/api/books", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/account", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"login":"admin"`)
	assert.Contains(t, w.Body.String(), "ROLE_ADMIN")

	t.Run("garbage token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		r.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		app.handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
