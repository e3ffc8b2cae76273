package views

import (
	"net/url"
	"strconv"

	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
)

// AuditFilter mirrors the audit log query string.
type AuditFilter struct {
	Screen   string
	Action   string
	Severity string
	From     string // yyyy-mm-dd
	To       string // yyyy-mm-dd
}

// Values encodes the filter for links.
func (f AuditFilter) Values() url.Values {
	v := url.Values{}
	for k, s := range map[string]string{
		"screen":   f.Screen,
		"action":   f.Action,
		"severity": f.Severity,
		"from":     f.From,
		"to":       f.To,
	} {
		if s != "" {
			v.Set(k, s)
		}
	}
	return v
}

// AuditLogParams configures the audit log page body.
type AuditLogParams struct {
	Filter  AuditFilter
	Screens []string
	Actions []string
	Table   templ.Component
	Page    int
	HasNext bool
	Enabled bool
}

// AuditLog renders the audit filters, the entries table and the pager.
func AuditLog(p AuditLogParams) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		if !p.Enabled {
			h.Element("p", templ.Attributes{"class": "notice"},
				"No audit database is configured; console changes are not being recorded.")
		}

		h.Open("form", templ.Attributes{"class": "audit-filters", "method": "get", "action": "/audit-log"})
		selectField(h, "screen", "Screen", p.Screens, p.Filter.Screen)
		selectField(h, "action", "Action", p.Actions, p.Filter.Action)
		selectField(h, "severity", "Severity", []string{"low", "medium", "high"}, p.Filter.Severity)
		dateField(h, "from", "From", p.Filter.From)
		dateField(h, "to", "To", p.Filter.To)
		h.Element("button", templ.Attributes{"type": "submit", "class": "btn btn-secondary"}, "Apply")
		h.Close("form")

		h.Component(p.Table)

		h.Open("nav", templ.Attributes{"class": "pager"})
		if p.Page > 1 {
			h.Element("a", templ.Attributes{"href": auditPageURL(p.Filter, p.Page-1)}, "Previous")
		}
		h.Element("span", nil, "Page "+strconv.Itoa(p.Page))
		if p.HasNext {
			h.Element("a", templ.Attributes{"href": auditPageURL(p.Filter, p.Page+1)}, "Next")
		}
		h.Close("nav")
	})
}

func auditPageURL(f AuditFilter, page int) string {
	v := f.Values()
	v.Set("page", strconv.Itoa(page))
	return "/audit-log?" + v.Encode()
}

func selectField(h *markup.Writer, name, label string, options []string, selected string) {
	h.Open("label", nil)
	h.Text(label)
	h.Open("select", templ.Attributes{"name": name})
	h.Element("option", templ.Attributes{"value": ""}, "Any")
	for _, o := range options {
		h.Element("option", templ.Attributes{"value": o, "selected": o == selected}, o)
	}
	h.Close("select")
	h.Close("label")
}

func dateField(h *markup.Writer, name, label, value string) {
	h.Open("label", nil)
	h.Text(label)
	h.Open("input", templ.Attributes{"type": "date", "name": name, "value": value})
	h.Close("label")
}
