package httpx

import (
	"net/http"
	"strings"
)

// TokenParser validates a bearer token and returns the principal.
type TokenParser func(token string) (login, role string, err error)

// AuthMiddleware guards /api routes with bearer tokens. Paths listed in
// exempt stay open, starting with the token endpoint itself. Anything
// outside /api (health, metrics) is not touched.
func AuthMiddleware(parse TokenParser, exempt ...string) func(http.Handler) http.Handler {
	exemptSet := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		exemptSet[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") || exemptSet[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				WriteUnauthorized(w)
				return
			}

			login, role, err := parse(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				WriteUnauthorized(w)
				return
			}

			ctx := ContextWithUser(r.Context(), login, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
