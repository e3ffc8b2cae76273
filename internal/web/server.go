// Package web provides the HTTP server and handlers for the accreditation
// console.
//
// Every list screen is a datatable rendered on the server. Table state lives
// in the URL query, and each interaction is an HTMX request that re-renders
// the table into #table-slot. Row actions and forms render into #modal.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/config"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	mw "github.com/JonMunkholm/accreditation-console/internal/web/middleware"
	"github.com/JonMunkholm/accreditation-console/internal/web/views"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFiles embed.FS

// Options configures the server's middleware and limits.
type Options struct {
	Server   config.ServerConfig
	Security config.SecurityConfig
	Rate     config.RateLimitConfig
	Exports  *core.ExportLimiter
}

// Server is the HTTP server for the console.
type Server struct {
	service *core.Service
	opts    Options
	exports *core.ExportLimiter
	limiter *mw.RateLimiter
	router  *chi.Mux
	server  *http.Server
	stop    chan struct{}
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, opts Options) *Server {
	exports := opts.Exports
	if exports == nil {
		exports = core.NewExportLimiter(0, 0)
	}
	s := &Server{
		service: service,
		opts:    opts,
		exports: exports,
		router:  chi.NewRouter(),
		stop:    make(chan struct{}),
	}
	if opts.Rate.Enabled {
		s.limiter = mw.NewRateLimiter(opts.Rate.RequestsPerMinute, opts.Rate.Burst)
		go s.limiter.Run(s.stop)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	timeout := s.opts.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.opts.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(timeout))

	// Security hardening
	s.router.Use(securityHeaders(s.opts.Security.EnableCSP))

	if s.limiter != nil {
		s.router.Use(s.limiter.Middleware)
	}
	s.router.Use(mw.RequestMetadata)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.router.Get("/healthz", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.opts.Security))

		// Pages
		r.Get("/", s.handleDashboard)
		r.Get("/audit-log", s.handleAuditLog)
		r.Get("/audit-log/table", s.handleAuditTable)
		r.Get("/audit-log/export", s.handleAuditLogExport)
		r.Get("/modal/close", handleModalClose)

		r.Route("/screens/{key}", func(r chi.Router) {
			r.Get("/", s.handleScreen)
			r.Get("/table", s.handleTable)
			r.Get("/export", s.handleExport)

			// Create
			r.Get("/new", s.handleNewForm)
			r.Post("/", s.handleCreate)

			// Row actions resolved through the table
			r.Get("/rows/{id}/{action}", s.handleRowAction)
			r.Post("/rows/{id}/delete", s.handleDelete)

			// Record workflows addressed by API id
			r.Post("/records/{id}", s.handleUpdate)
			r.Post("/records/{id}/approve", s.handleApprove)
			r.Get("/records/{id}/reject", s.handleRejectForm)
			r.Post("/records/{id}/reject", s.handleReject)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.Server.ReadTimeout,
		WriteTimeout: s.opts.Server.WriteTimeout,
		IdleTimeout:  s.opts.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight requests and
// exports, and stops background work.
func (s *Server) Shutdown(ctx context.Context) error {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}
	if drainErr := s.exports.WaitForDrain(ctx); drainErr != nil && err == nil {
		err = drainErr
	}
	return err
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":         "ok",
		"screens":        core.ScreenCount(),
		"active_exports": s.exports.Active(),
	})
}

func handleModalClose(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
}

// contentSecurityPolicy allows the HTMX script from its CDN and nothing else
// off-site. HTMX injects its indicator styles inline.
var contentSecurityPolicy = "default-src 'self'; script-src 'self' " + origin(views.HTMXSource) +
	"; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; frame-ancestors 'none'"

func origin(src string) string {
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			if enableCSP {
				w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			}

			// Control referrer information
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
