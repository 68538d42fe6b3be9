package mw

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/planopro/internal/metrics"
)

// Metrics records every request's method, status and latency.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(ww, r)

			m.ObserveRequest(r.Method, ww.Status(), time.Since(start))
		})
	}
}
