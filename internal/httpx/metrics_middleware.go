package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PabloGitu/bookmanagerrmh2/internal/metrics"
)

// MetricsMiddleware records request counts and latencies. Numeric path
// segments collapse to {id} to keep label cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrapWriter(w)

		next.ServeHTTP(rw, r)

		path := normalizePath(r.URL.Path)
		metrics.HTTPRequestsTotal.
			WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).
			Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(path).
			Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}
