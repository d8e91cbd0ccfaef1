// Package web assembles the HTTP surface: repositories, services,
// handlers, routes and the middleware chain around them.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PabloGitu/bookmanagerrmh2/internal/auth"
	"github.com/PabloGitu/bookmanagerrmh2/internal/author"
	"github.com/PabloGitu/bookmanagerrmh2/internal/book"
	"github.com/PabloGitu/bookmanagerrmh2/internal/comment"
	"github.com/PabloGitu/bookmanagerrmh2/internal/config"
	"github.com/PabloGitu/bookmanagerrmh2/internal/httpx"
	"github.com/PabloGitu/bookmanagerrmh2/internal/nav"
	"github.com/PabloGitu/bookmanagerrmh2/internal/publisher"
	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

const (
	appVersion = "0.0.1-SNAPSHOT"

	queryTimeout = 5 * time.Second
	maxBodyBytes = 1 << 20
)

// New builds the complete handler tree for the given configuration and
// store.
func New(cfg config.Config, st *store.Store) http.Handler {
	bookHandler := book.NewHTTPHandler(book.NewService(book.NewSQLRepo(st, queryTimeout)))
	authorHandler := author.NewHTTPHandler(author.NewService(author.NewSQLRepo(st, queryTimeout)))
	publisherHandler := publisher.NewHTTPHandler(publisher.NewService(publisher.NewSQLRepo(st, queryTimeout)))
	commentHandler := comment.NewHTTPHandler(comment.NewService(comment.NewSQLRepo(st, queryTimeout)))
	navHandler := nav.NewHTTPHandler(nav.FromConfig(cfg.Menu))

	authService := auth.NewService(cfg.Auth, auth.NewSQLUserRepo(st, queryTimeout))
	authHandler := auth.NewHTTPHandler(authService)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/books", bookHandler.Create)
	mux.HandleFunc("PUT /api/books", bookHandler.Update)
	mux.HandleFunc("GET /api/books", bookHandler.List)
	mux.HandleFunc("GET /api/books/author/{id}", bookHandler.ListByAuthor)
	mux.HandleFunc("GET /api/books/publisher/{id}", bookHandler.ListByPublisher)
	mux.HandleFunc("GET /api/books/{id}", bookHandler.Get)
	mux.HandleFunc("DELETE /api/books/{id}", bookHandler.Delete)

	mux.HandleFunc("POST /api/authors", authorHandler.Create)
	mux.HandleFunc("PUT /api/authors", authorHandler.Update)
	mux.HandleFunc("GET /api/authors", authorHandler.List)
	mux.HandleFunc("GET /api/authors/{id}", authorHandler.Get)
	mux.HandleFunc("DELETE /api/authors/{id}", authorHandler.Delete)

	mux.HandleFunc("POST /api/publishers", publisherHandler.Create)
	mux.HandleFunc("PUT /api/publishers", publisherHandler.Update)
	mux.HandleFunc("GET /api/publishers", publisherHandler.List)
	mux.HandleFunc("GET /api/publishers/{id}", publisherHandler.Get)
	mux.HandleFunc("DELETE /api/publishers/{id}", publisherHandler.Delete)

	mux.HandleFunc("POST /api/comments", commentHandler.Create)
	mux.HandleFunc("PUT /api/comments", commentHandler.Update)
	mux.HandleFunc("GET /api/comments", commentHandler.List)
	mux.HandleFunc("GET /api/comments/book/{id}", commentHandler.ListByBook)
	mux.HandleFunc("GET /api/comments/{id}", commentHandler.Get)
	mux.HandleFunc("DELETE /api/comments/{id}", commentHandler.Delete)

	mux.HandleFunc("POST /api/authenticate", authHandler.Authenticate)
	mux.HandleFunc("GET /api/account", authHandler.Account)
	mux.HandleFunc("GET /api/entities", navHandler.List)

	mux.HandleFunc("GET /management/health", healthHandler(st))
	mux.HandleFunc("GET /management/info", infoHandler(cfg))
	mux.Handle("GET /management/prometheus", promhttp.Handler())

	// Innermost first. The request id middleware has to run before the
	// access log so log lines carry the id.
	var handler http.Handler = mux
	if cfg.Auth.Enabled {
		handler = httpx.AuthMiddleware(authService.Principal, "/api/authenticate")(handler)
	}
	if cfg.RateLimit.Enabled {
		handler = httpx.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware(handler)
	}
	handler = httpx.RequestSizeLimitMiddleware(maxBodyBytes)(handler)
	handler = httpx.CORSMiddleware(cfg.CORS.Origins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.MetricsMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	return handler
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := st.DB.PingContext(ctx); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "UP"})
	}
}

func infoHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"app":            "bookmanagerrmh2",
			"version":        appVersion,
			"activeProfiles": []string{cfg.Profile},
		})
	}
}
