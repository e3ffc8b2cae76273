package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/config"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const centersKey = "admin_training_centers"

const centersList = `{
	"training_centers": [
		{"id": 1, "name": "North Campus", "status": "pending"},
		{"id": 2, "name": "South Campus", "status": "approved"}
	],
	"total": 2
}`

// marketplace serves canned JSON keyed by "METHOD /path" and records the
// calls it receives.
type marketplace struct {
	mu        sync.Mutex
	responses map[string]string
	calls     []string
}

func (m *marketplace) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	m.calls = append(m.calls, key)
	body, ok := m.responses[key]
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Not Found"}`)
		return
	}
	if body == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, body)
}

func (m *marketplace) called(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == key {
			return true
		}
	}
	return false
}

type testEnv struct {
	server *Server
	api    *marketplace
	audit  *core.MemoryAuditStore
}

func newTestEnv(t *testing.T, responses map[string]string) *testEnv {
	t.Helper()
	return newTestEnvWith(t, responses, Options{})
}

func newTestEnvWith(t *testing.T, responses map[string]string, opts Options) *testEnv {
	t.Helper()
	core.Clear()
	t.Cleanup(core.Clear)

	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       centersKey,
			Group:     "Admin",
			Label:     "Training Centers",
			Entity:    "Training Center",
			Namespace: api.NamespaceAdmin,
			Resource:  "training-centers",
			EntityKey: "training_centers",
		},
		Columns: []datatable.Column{
			{Header: "Name", Accessor: "name"},
			{Header: "Status", Accessor: "status", Render: datatable.Badge{}},
		},
		Filters:      datatable.StatusOptions("status", "pending", "approved"),
		SearchFields: []string{"name"},
		Fields: []core.FieldSpec{
			{Name: "name", Required: true},
			{Name: "email", Type: core.FieldEmail, Required: true, CreateOnly: true},
		},
		Can: core.Capabilities{View: true, Create: true, Edit: true, Delete: true, Approve: true},
	})

	fake := &marketplace{responses: responses}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL + "/api"})
	require.NoError(t, err)

	store := core.NewMemoryAuditStore()
	s := NewServer(core.NewService(client, store, 100), opts)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	return &testEnv{server: s, api: fake, audit: store}
}

func (e *testEnv) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 1, body["screens"])
}

func TestScreenPage(t *testing.T) {
	env := newTestEnv(t, map[string]string{"GET /api/admin/training-centers": centersList})

	rec := env.do(t, http.MethodGet, "/screens/"+centersKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, `id="table-slot"`)
	assert.Contains(t, html, "North Campus")
	assert.Contains(t, html, "South Campus")
	assert.Contains(t, html, "New Training Center")
	assert.Contains(t, html, `href="/screens/`+centersKey+`/export?filter=all"`)
	assert.Contains(t, html, `id="modal"`)
}

func TestUnknownScreen(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/screens/nope", nil)
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFailureRendersEmptyState(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/screens/"+centersKey+"/table", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing 0 of 0")
}

func TestTableSearchFilterAndSort(t *testing.T) {
	env := newTestEnv(t, map[string]string{"GET /api/admin/training-centers": centersList})
	base := "/screens/" + centersKey + "/table"

	html := env.do(t, http.MethodGet, base+"?q=south", nil).Body.String()
	assert.Contains(t, html, "South Campus")
	assert.NotContains(t, html, "North Campus")

	html = env.do(t, http.MethodGet, base+"?filter=pending", nil).Body.String()
	assert.Contains(t, html, "North Campus")
	assert.NotContains(t, html, "South Campus")

	html = env.do(t, http.MethodGet, base+"?sort=name&dir=desc", nil).Body.String()
	assert.Less(t, strings.Index(html, "South Campus"), strings.Index(html, "North Campus"))
}

func TestFilterMenuClosesOnOutsidePointer(t *testing.T) {
	env := newTestEnv(t, map[string]string{"GET /api/admin/training-centers": centersList})
	base := "/screens/" + centersKey + "/table?menu=1"

	open := env.do(t, http.MethodGet, base, nil).Body.String()
	assert.Contains(t, open, "dt-filter-options")
	assert.Contains(t, open, "dt-filter-backdrop")

	closed := env.do(t, http.MethodGet, base+"&pointer=outside", nil).Body.String()
	assert.NotContains(t, closed, "dt-filter-options")
	assert.NotContains(t, closed, "dt-filter-backdrop")

	inside := env.do(t, http.MethodGet, base+"&pointer=inside", nil).Body.String()
	assert.Contains(t, inside, "dt-filter-options")
}

func TestTableMarkupUnderCSP(t *testing.T) {
	env := newTestEnvWith(t, map[string]string{"GET /api/admin/training-centers": centersList},
		Options{Security: config.SecurityConfig{EnableCSP: true}})

	rec := env.do(t, http.MethodGet, "/screens/"+centersKey+"/table?menu=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var scriptSrc string
	for _, directive := range strings.Split(rec.Header().Get("Content-Security-Policy"), ";") {
		if d := strings.TrimSpace(directive); strings.HasPrefix(d, "script-src") {
			scriptSrc = d
		}
	}
	require.NotEmpty(t, scriptSrc)
	assert.NotContains(t, scriptSrc, "unsafe-inline")
	assert.NotContains(t, scriptSrc, "unsafe-eval")

	html := rec.Body.String()
	assert.NotContains(t, html, "onclick=")
	assert.NotRegexp(t, `hx-trigger="[^"]*\[`, html)
	assert.Contains(t, html, "dt-filter-backdrop")
	assert.Contains(t, html, `hx-trigger="click consume"`)

	page := env.do(t, http.MethodGet, "/screens/"+centersKey, nil).Body.String()
	assert.Contains(t, page, `src="/static/console.js"`)

	js := env.do(t, http.MethodGet, "/static/console.js", nil)
	require.Equal(t, http.StatusOK, js.Code)
	assert.Contains(t, js.Body.String(), "htmx:configRequest")
}

func TestRowViewShowsDetail(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"GET /api/admin/training-centers":   centersList,
		"GET /api/admin/training-centers/1": `{"data": {"id": 1, "name": "North Campus", "status": "pending", "phone": "555-0100"}}`,
	})

	rec := env.do(t, http.MethodGet, "/screens/"+centersKey+"/rows/1/view", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "Training Center: North Campus")
	assert.Contains(t, html, "555-0100")
	assert.Contains(t, html, `/records/1/approve`)
	assert.Contains(t, html, `/records/1/reject`)
}

func TestRowClick(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"GET /api/admin/training-centers":   centersList,
		"GET /api/admin/training-centers/2": `{"data": {"id": 2, "name": "South Campus", "status": "approved"}}`,
	})
	base := "/screens/" + centersKey + "/rows/2/click"

	rec := env.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "South Campus")
	assert.NotContains(t, rec.Body.String(), "/approve", "approved records offer no workflow")

	rec = env.do(t, http.MethodGet, base+"?target=button", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRowActionErrors(t *testing.T) {
	env := newTestEnv(t, map[string]string{"GET /api/admin/training-centers": centersList})

	rec := env.do(t, http.MethodGet, "/screens/"+centersKey+"/rows/99/view", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#flash", rec.Header().Get("HX-Retarget"))
	assert.Equal(t, http.StatusText(http.StatusNotFound), rec.Header().Get("X-Error-Status"))

	rec = env.do(t, http.MethodGet, "/screens/"+centersKey+"/rows/1/publish", nil)
	assert.Equal(t, http.StatusText(http.StatusMethodNotAllowed), rec.Header().Get("X-Error-Status"))
}

func TestDeleteFlow(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"GET /api/admin/training-centers":      centersList,
		"DELETE /api/admin/training-centers/1": "",
	})
	row := "/screens/" + centersKey + "/rows/1/delete?filter=pending"

	confirm := env.do(t, http.MethodGet, row, nil)
	require.Equal(t, http.StatusOK, confirm.Code)
	assert.Contains(t, confirm.Body.String(), "Delete North Campus?")
	assert.Contains(t, confirm.Body.String(), `hx-post="`+strings.ReplaceAll(row, "&", "&amp;")+`"`)
	assert.False(t, env.api.called("DELETE /api/admin/training-centers/1"), "GET must only confirm")

	done := env.do(t, http.MethodPost, row, nil)
	require.Equal(t, http.StatusOK, done.Code)
	html := done.Body.String()
	assert.Contains(t, html, `hx-swap-oob="innerHTML"`)
	assert.Contains(t, html, "Training Center deleted: North Campus")
	assert.True(t, env.api.called("DELETE /api/admin/training-centers/1"))

	entries, err := env.audit.List(context.Background(), core.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, core.ActionDelete, entries[0].Action)
	assert.Equal(t, "1", entries[0].RecordID)
}

func TestCreateForm(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"GET /api/admin/training-centers":  centersList,
		"POST /api/admin/training-centers": `{"data": {"id": 3, "name": "East Campus"}}`,
	})
	target := "/screens/" + centersKey

	form := env.do(t, http.MethodGet, target+"/new", nil)
	require.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `name="email"`)

	invalid := env.do(t, http.MethodPost, target, url.Values{"name": {"East Campus"}})
	require.Equal(t, http.StatusOK, invalid.Code)
	assert.Contains(t, invalid.Body.String(), "has-error")
	assert.Contains(t, invalid.Body.String(), `value="East Campus"`)
	assert.False(t, env.api.called("POST /api/admin/training-centers"))

	created := env.do(t, http.MethodPost, target, url.Values{
		"name":  {"East Campus"},
		"email": {"east@example.com"},
	})
	require.Equal(t, http.StatusOK, created.Code)
	assert.Contains(t, created.Body.String(), "Training Center created: East Campus")
}

func TestRejectRequiresReason(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"GET /api/admin/training-centers":          centersList,
		"PUT /api/admin/training-centers/1/reject": `{"data": {"id": 1, "name": "North Campus", "status": "rejected"}}`,
	})
	target := "/screens/" + centersKey + "/records/1/reject"

	blank := env.do(t, http.MethodPost, target, url.Values{core.RejectionReasonField: {"  "}})
	require.Equal(t, http.StatusOK, blank.Code)
	assert.Contains(t, blank.Body.String(), "has-error")

	done := env.do(t, http.MethodPost, target, url.Values{core.RejectionReasonField: {"Expired insurance"}})
	require.Equal(t, http.StatusOK, done.Code)
	assert.Contains(t, done.Body.String(), "Training Center rejected: North Campus")
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t, map[string]string{"GET /api/admin/training-centers": centersList})

	rec := env.do(t, http.MethodGet, "/screens/"+centersKey+"/export?filter=approved", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), centersKey+"_")
	assert.Equal(t, "Name,Status\nSouth Campus,Approved\n", rec.Body.String())
}

func TestExportLimit(t *testing.T) {
	env := newTestEnv(t, map[string]string{"GET /api/admin/training-centers": centersList})
	for env.server.exports.TryAcquire() {
	}
	defer func() {
		for env.server.exports.Active() > 0 {
			env.server.exports.Release()
		}
	}()

	req := httptest.NewRequest(http.MethodGet, "/screens/"+centersKey+"/export", nil)
	req.Header.Set("Accept", "application/json")
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req.WithContext(ctx))
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestAuditLog(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.audit.Log(context.Background(), core.AuditLogParams{
		Action:    core.ActionApprove,
		ScreenKey: centersKey,
		Resource:  "training-centers",
		RecordID:  "1",
		Summary:   "North Campus",
		Actor:     "ops",
	})
	require.NoError(t, err)

	page := env.do(t, http.MethodGet, "/audit-log", nil)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "North Campus")
	assert.Contains(t, page.Body.String(), "Page 1")

	filtered := env.do(t, http.MethodGet, "/audit-log/table?action=delete", nil)
	require.Equal(t, http.StatusOK, filtered.Code)
	assert.NotContains(t, filtered.Body.String(), "North Campus")

	export := env.do(t, http.MethodGet, "/audit-log/export", nil)
	require.Equal(t, http.StatusOK, export.Code)
	lines := strings.Split(strings.TrimSpace(export.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Timestamp,Action"))
}
