// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/go-chi/chi/v5"
)

// Logger logs one line per request. Entries carry chi's request id through
// logging.FromContext.
//
// Log fields:
//   - method: HTTP method (GET, POST, etc.)
//   - path: Request URL path
//   - status: HTTP response status code
//   - bytes: Response body size
//   - duration_ms: Request processing time in milliseconds
//   - ip: Client IP address (RemoteAddr as rewritten by TrustedRealIP)
//   - user_agent: Client user agent string
//   - screen: Screen key, for /screens/{key} routes
//   - htmx: Present for HTMX partial requests, with the swap target
//
// Server errors log at error level and client errors at warn.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		logger := logging.FromContext(r.Context())

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"bytes", ww.bytes,
			"duration_ms", duration.Milliseconds(),
			"ip", clientIP(r),
			"user_agent", r.UserAgent(),
		}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if key := rctx.URLParam("key"); key != "" {
				attrs = append(attrs, "screen", key)
			}
		}
		if r.Header.Get("HX-Request") == "true" {
			attrs = append(attrs, "htmx", true)
			if target := r.Header.Get("HX-Target"); target != "" {
				attrs = append(attrs, "hx_target", target)
			}
		}

		switch {
		case ww.status >= 500:
			logger.Error("request", attrs...)
		case ww.status >= 400:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the Flusher during CSV exports.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
