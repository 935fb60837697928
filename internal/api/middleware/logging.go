package middleware

import (
	"net/http"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"sentinel-dca-go/internal/apierrors"
	"sentinel-dca-go/internal/logger"
)

const slowRequest = 500 * time.Millisecond

// LoggingMiddleware tags the request with an id (echoed in X-Request-ID) and
// logs its outcome.
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := logger.RequestID(r)
			r.Header.Set(logger.RequestIDHeader, id)
			w.Header().Set(logger.RequestIDHeader, id)

			lrw := newLoggingResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(start)
			entry := logger.New().WithRequest(r).WithFields(logrus.Fields{
				"status_code": lrw.statusCode,
				"duration_ms": elapsed.Milliseconds(),
			})
			switch {
			case lrw.statusCode >= 500:
				entry.Error("request failed")
			case lrw.statusCode >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request completed")
			}
			if elapsed > slowRequest {
				entry.Warn("slow request")
			}
		})
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					logger.New().WithRequest(r).WithFields(logrus.Fields{
						"panic_error": err,
						"stack_trace": string(stack),
					}).Error("unhandled panic")

					apierrors.WriteError(w, apierrors.ErrInternalServer, "internal server error", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
