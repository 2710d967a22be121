// Package middleware provides HTTP middleware for the platform service.
package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/chefos/platform/internal/logging"
)

// Tracing attaches a trace ID to every request and logs its completion.
// Incoming X-Trace-ID headers are honoured so callers can correlate.
func Tracing(logger *logging.Logger, logRequests bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if traceID == "" {
				traceID = logging.NewTraceID()
			}

			ctx := logging.WithTraceID(r.Context(), traceID)
			w.Header().Set("X-Trace-ID", traceID)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rw, r.WithContext(ctx))

			if logRequests {
				logger.LogRequest(ctx, r.Method, r.URL.Path, rw.statusCode, time.Since(start))
			}
		})
	}
}

// responseWriter captures the status code for logging and metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}
