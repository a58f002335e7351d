package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"quadvote.io/quadvote/lib/metrics"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// MetricsMiddleware records request counts and latencies per route template.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		labels := []string{
			"endpoint", endpoint,
			"method", r.Method,
			"status", strconv.Itoa(sw.status),
		}
		metrics.API.RequestsTotal.With(labels...).Add(1)
		if sw.status >= 400 {
			metrics.API.RequestErrorsTotal.With(labels...).Add(1)
		}
		metrics.API.RequestDurationSeconds.With(labels...).Observe(time.Since(begin).Seconds())
	})
}
