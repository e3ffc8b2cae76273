package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/JonMunkholm/accreditation-console/internal/web/views"
	"github.com/a-h/templ"
)

const (
	// auditPageSize is the number of audit entries per page.
	auditPageSize = core.DefaultHistoryLimit
	// auditExportBatch is the page size used to walk the log for an export.
	auditExportBatch = 500
)

// auditColumns lay out one page of audit entries. Search and sort work
// within the page; the filter form narrows the query itself.
var auditColumns = []datatable.Column{
	{Header: "When", Accessor: "created_at", Render: datatable.RelativeTime{}},
	{Header: "Action", Accessor: "action", Render: datatable.Badge{}},
	{Header: "Severity", Accessor: "severity", Render: datatable.Badge{Classes: map[string]string{
		"low":    "info",
		"medium": "warning",
		"high":   "danger",
	}}},
	{Header: "Screen", Accessor: "screen_key"},
	{Header: "Record", Accessor: "summary", Render: datatable.ExpandToggle{}},
	{Header: "Actor", Accessor: "actor"},
	{Header: "Reason", Accessor: "reason", DisableSort: true},
}

// auditQuery is a parsed audit log request.
type auditQuery struct {
	filter views.AuditFilter
	page   int
	store  core.AuditLogFilter
}

func parseAuditQuery(r *http.Request) auditQuery {
	q := r.URL.Query()
	f := views.AuditFilter{
		Screen:   q.Get("screen"),
		Action:   q.Get("action"),
		Severity: q.Get("severity"),
		From:     q.Get("from"),
		To:       q.Get("to"),
	}
	page := parseIntParam(r, "page", 1)

	cf := core.AuditLogFilter{
		ScreenKey: f.Screen,
		Action:    core.AuditAction(f.Action),
		Severity:  core.AuditSeverity(f.Severity),
		// One extra entry tells whether a next page exists.
		Limit:  auditPageSize + 1,
		Offset: (page - 1) * auditPageSize,
	}
	if t, err := time.Parse(time.DateOnly, f.From); err == nil {
		cf.StartTime = t
	}
	if t, err := time.Parse(time.DateOnly, f.To); err == nil {
		cf.EndTime = t.Add(24*time.Hour - time.Second)
	}
	return auditQuery{filter: f, page: page, store: cf}
}

// handleAuditLog renders the audit log page with filtering and pagination.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	aq := parseAuditQuery(r)
	table, hasNext, err := s.auditTable(r, aq)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer table.Close()

	screens := make([]string, 0, core.ScreenCount())
	for _, def := range core.All() {
		screens = append(screens, def.Info.Key)
	}

	hdr := &views.Header{}
	hdr.SetHeader("Audit Log", "Changes made through the console",
		views.HeaderAction{
			Label:   "Export CSV",
			Href:    withQuery("/audit-log/export", aq.filter.Values().Encode()),
			Variant: "secondary",
		})

	links := auditLinks{query: aq}
	render(w, r, views.Layout(views.Page{
		Title:  "Audit Log",
		Nav:    navigation(),
		Active: "audit",
		Header: hdr,
		Body: views.AuditLog(views.AuditLogParams{
			Filter:  aq.filter,
			Screens: screens,
			Actions: []string{
				string(core.ActionCreate),
				string(core.ActionUpdate),
				string(core.ActionDelete),
				string(core.ActionApprove),
				string(core.ActionReject),
			},
			Table: markup.Func(func(h *markup.Writer) {
				h.Open("div", templ.Attributes{"id": strings.TrimPrefix(tableSlot, "#")})
				h.Component(table.Component(links))
				h.Close("div")
			}),
			Page:    aq.page,
			HasNext: hasNext,
			Enabled: s.auditEnabled(),
		}),
	}))
}

// handleAuditTable re-renders the audit table for in-page search and sort.
func (s *Server) handleAuditTable(w http.ResponseWriter, r *http.Request) {
	aq := parseAuditQuery(r)
	table, _, err := s.auditTable(r, aq)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer table.Close()
	render(w, r, table.Component(auditLinks{query: aq}))
}

func (s *Server) auditTable(r *http.Request, aq auditQuery) (*datatable.Table, bool, error) {
	entries, err := s.service.Audit().List(r.Context(), aq.store)
	if err != nil {
		return nil, false, err
	}
	hasNext := len(entries) > auditPageSize
	if hasNext {
		entries = entries[:auditPageSize]
	}

	records := make([]datatable.Record, len(entries))
	for i, e := range entries {
		records[i] = auditRecord(e)
	}
	cfg := datatable.Config{
		ID:                "dt-audit",
		Columns:           auditColumns,
		SearchPlaceholder: "Search this page...",
		EmptyMessage:      "No audit entries match these filters.",
		Expandable:        true,
		RenderExpanded: func(rec datatable.Record) templ.Component {
			payload, _ := rec["payload"].(map[string]any)
			if len(payload) == 0 {
				return markup.Text("No payload recorded.")
			}
			return views.Detail(views.DetailParams{Record: datatable.Record(payload)})
		},
	}
	state := datatable.StateFromQuery(r.URL.Query(), "")
	return datatable.New(cfg, records, state), hasNext, nil
}

func auditRecord(e core.AuditEntry) datatable.Record {
	rec := datatable.Record{
		"id":         e.ID,
		"created_at": e.CreatedAt,
		"action":     string(e.Action),
		"severity":   string(e.Severity),
		"screen_key": e.ScreenKey,
		"summary":    e.Summary,
		"actor":      e.Actor,
		"reason":     e.Reason,
	}
	if e.Payload != nil {
		rec["payload"] = e.Payload
	}
	return rec
}

// auditLinks keeps the audit filter and page on every table request.
type auditLinks struct {
	query auditQuery
}

func (l auditLinks) State(s datatable.State) datatable.Link {
	v := l.query.filter.Values()
	if l.query.page > 1 {
		v.Set("page", strconv.Itoa(l.query.page))
	}
	for k, vals := range s.Values() {
		v[k] = vals
	}
	return datatable.Link{
		Method: "get",
		URL:    withQuery("/audit-log/table", v.Encode()),
		Target: tableSlot,
		Swap:   "innerHTML",
	}
}

func (auditLinks) Action(datatable.Action, string, datatable.State) datatable.Link {
	return datatable.Link{}
}

func (auditLinks) RowClick(string, datatable.State) datatable.Link {
	return datatable.Link{}
}

// handleAuditLogExport exports every audit entry matching the filter as CSV.
func (s *Server) handleAuditLogExport(w http.ResponseWriter, r *http.Request) {
	if err := s.exports.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.exports.Release()

	filter := parseAuditQuery(r).store
	filter.Offset = 0
	filter.Limit = auditExportBatch

	var rows []datatable.Record
	for {
		entries, err := s.service.Audit().List(r.Context(), filter)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		for _, e := range entries {
			rows = append(rows, auditRecord(e))
		}
		if len(entries) < filter.Limit {
			break
		}
		filter.Offset += len(entries)
	}

	filename := fmt.Sprintf("audit_log_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := core.WriteCSV(newFlushWriter(w), auditExportColumns, rows); err != nil {
		logging.FromContext(r.Context()).Error("audit export failed", "error", err)
	}
}

// auditExportColumns carry absolute timestamps instead of relative ones.
var auditExportColumns = append([]datatable.Column{
	{Header: "ID", Accessor: "id"},
	{Header: "Timestamp", Accessor: "created_at", Render: datatable.Date{Layout: "2006-01-02 15:04:05"}},
}, auditColumns[1:]...)

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
