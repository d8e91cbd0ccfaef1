package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/PabloGitu/bookmanagerrmh2/internal/logger"
)

// RecoveryMiddleware turns panics into 500 problems instead of dropped
// connections.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.For(r.Context()).WithField("error", err).
					Errorf("panic recovered: %s", debug.Stack())

				var wroteHeader bool
				if rw, ok := w.(*responseWriter); ok {
					wroteHeader = rw.wroteHeader()
				}
				if !wroteHeader {
					WriteInternalError(w)
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}
