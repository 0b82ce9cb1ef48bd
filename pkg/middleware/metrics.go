package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
)

// MetricsMiddleware registra a duração de cada requisição nos coletores
// Prometheus
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			metrics.HTTPRequestDuration.WithLabelValues(
				r.Method,
				r.URL.Path,
				strconv.Itoa(lrw.statusCode),
			).Observe(time.Since(start).Seconds())
		})
	}
}
