package httpx

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/PabloGitu/bookmanagerrmh2/internal/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware tags every request with an id, honoring one the
// client already sent, and echoes it back in the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := logger.ContextWithID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
