package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
)

// handleExport downloads the rows of a screen, as searched, filtered and
// sorted in the query, as CSV. Concurrent exports are bounded by the export
// limiter.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	def, err := s.service.Screen(key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.exports.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.exports.Release()

	start := time.Now()
	state := datatable.StateFromQuery(r.URL.Query(), def.DefaultFilter)
	def, rows, err := s.service.ExportRows(r.Context(), key, state)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", key, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	logger := logging.WithFields(r.Context(), "screen", key)
	if err := core.WriteCSV(newFlushWriter(w), def.Columns, rows); err != nil {
		// Headers are sent; the client sees a truncated file.
		logger.Error("export failed", "error", err, "rows", len(rows))
		return
	}
	logger.Info("export complete",
		"rows", humanize.Comma(int64(len(rows))),
		"duration", time.Since(start).Round(time.Millisecond))
}

// flushWriter lets core.WriteCSV push partial output through middleware
// wrappers that hide http.Flusher.
type flushWriter struct {
	http.ResponseWriter
	rc *http.ResponseController
}

func newFlushWriter(w http.ResponseWriter) flushWriter {
	return flushWriter{ResponseWriter: w, rc: http.NewResponseController(w)}
}

func (f flushWriter) Flush() {
	_ = f.rc.Flush()
}
