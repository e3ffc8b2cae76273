package views

import (
	"bytes"
	"context"
	"net/url"
	"testing"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestHeaderSinkReplaces(t *testing.T) {
	var h Header
	var sink HeaderSink = &h
	sink.SetHeader("Courses", "Catalogue", HeaderAction{Label: "New Course", Href: "/x"})
	sink.SetHeader("Payments", "")

	assert.Equal(t, "Payments", h.Title)
	assert.Empty(t, h.Subtitle)
	assert.Empty(t, h.Actions)
}

func TestLayoutRendersHeaderAndNav(t *testing.T) {
	hdr := &Header{}
	hdr.SetHeader("Courses", "Accredited <catalogue>", HeaderAction{
		Label: "New Course",
		Link:  datatable.Link{Method: "get", URL: "/screens/admin_courses/new", Target: ModalTarget},
	})
	out := render(t, Layout(Page{
		Title:  "Courses",
		Nav:    []NavGroup{{Name: "Admin", Items: []NavItem{{Key: "admin_courses", Label: "Courses", Href: "/screens/admin_courses"}}}},
		Active: "admin_courses",
		Header: hdr,
		Body:   templ.Raw("<p>body</p>"),
	}))

	assert.Contains(t, out, "<title>Courses · Accreditation Console</title>")
	assert.Contains(t, out, `class="nav-link is-active" href="/screens/admin_courses"`)
	assert.Contains(t, out, "Accredited &lt;catalogue&gt;")
	assert.Contains(t, out, `hx-get="/screens/admin_courses/new"`)
	assert.Contains(t, out, "<p>body</p>")
	assert.Contains(t, out, `<div id="modal"></div>`)
}

func TestFormRendersValuesAndErrors(t *testing.T) {
	out := render(t, Form(FormParams{
		Post: "/screens/admin_courses",
		Fields: []core.FieldSpec{
			{Name: "name", Required: true},
			{Name: "level", Type: core.FieldEnum, EnumValues: []string{"beginner", "advanced"}},
			{Name: "is_active", Label: "Active", Type: core.FieldBool},
			{Name: "price", Type: core.FieldNumeric},
		},
		Values:  url.Values{"name": {"First Aid"}, "level": {"advanced"}, "is_active": {"true"}},
		Errors:  map[string]string{"price": "required field is empty"},
		Message: "1 field(s) need attention",
	}))

	assert.Contains(t, out, `hx-post="/screens/admin_courses"`)
	assert.Contains(t, out, `value="First Aid"`)
	assert.Contains(t, out, `selected value="advanced"`)
	assert.Contains(t, out, `checked id="field-is_active"`)
	assert.Contains(t, out, `step="any" type="number"`)
	assert.Contains(t, out, "required field is empty")
	assert.Contains(t, out, "1 field(s) need attention")
	assert.Contains(t, out, "Name *")
}

func TestDetailShowsColumnsThenRemainingKeys(t *testing.T) {
	rec := datatable.Record{
		"id":                      7,
		"name":                    "Acme",
		"acc":                     map[string]any{"name": "Red Cross"},
		datatable.SearchTextField: "acme",
	}
	out := render(t, Detail(DetailParams{
		Record:  rec,
		Columns: []datatable.Column{{Header: "Name", Accessor: "name"}},
	}))

	assert.Contains(t, out, "<dt>Name</dt><dd>Acme</dd>")
	assert.Contains(t, out, "<dt>Acc</dt><dd>Red Cross</dd>")
	assert.NotContains(t, out, "acme</dd>")
	assert.Less(t, bytes.Index([]byte(out), []byte("<dt>Acc")), bytes.Index([]byte(out), []byte("<dt>Id")))
}

func TestChildrenEmpty(t *testing.T) {
	out := render(t, Children(nil, nil))
	assert.Contains(t, out, "No sub-items.")
}

func TestAuditPageURLKeepsFilter(t *testing.T) {
	u := auditPageURL(AuditFilter{Screen: "admin_courses", Severity: "high"}, 3)
	assert.Equal(t, "/audit-log?page=3&screen=admin_courses&severity=high", u)
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Record not found", "Refresh the page", "API003"))
	assert.Contains(t, out, "Record not found")
	assert.Contains(t, out, "Code: API003")
}
