// Package views holds the page-level components of the console: layout,
// navigation, dashboard, modals, forms and the audit log.
//
// Components are written with the markup writer rather than .templ files so
// the module builds without a code generation step.
package views

import (
	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
)

// ConsoleScript tags row-click requests with what was clicked. It is served
// from the console itself so the CSP needs neither inline scripts nor eval.
const ConsoleScript = "/static/console.js"

// HTMXSource is the script the layout loads HTMX from.
const HTMXSource = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// ModalTarget is the element modal fragments are swapped into.
const ModalTarget = "#modal"

// NavItem is one screen link in the sidebar.
type NavItem struct {
	Key   string
	Label string
	Href  string
}

// NavGroup is a titled block of sidebar links.
type NavGroup struct {
	Name  string
	Items []NavItem
}

// Page is everything the layout needs.
type Page struct {
	Title  string // document title
	Nav    []NavGroup
	Active string // key of the highlighted nav item, or "dashboard"/"audit"
	Header *Header
	Body   templ.Component
}

// Layout renders a full HTML document.
func Layout(p Page) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		title := "Accreditation Console"
		if p.Title != "" {
			title = p.Title + " · " + title
		}

		h.Raw("<!DOCTYPE html>")
		h.Open("html", templ.Attributes{"lang": "en"})
		h.Raw("<head>")
		h.Raw(`<meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Element("title", nil, title)
		h.Open("link", templ.Attributes{"rel": "stylesheet", "href": "/static/console.css"})
		h.Open("script", templ.Attributes{"src": HTMXSource, "defer": true})
		h.Close("script")
		h.Open("script", templ.Attributes{"src": ConsoleScript, "defer": true})
		h.Close("script")
		h.Raw("</head>")

		h.Open("body", templ.Attributes{"hx-headers": `{"X-Requested-With": "htmx"}`})
		h.Open("div", templ.Attributes{"class": "shell"})
		sidebar(h, p.Nav, p.Active)

		h.Open("main", templ.Attributes{"class": "content"})
		if p.Header != nil {
			pageHeader(h, p.Header)
		}
		h.Open("div", templ.Attributes{"id": "flash", "aria-live": "polite"})
		h.Close("div")
		h.Component(p.Body)
		h.Close("main")
		h.Close("div")

		h.Open("div", templ.Attributes{"id": "modal"})
		h.Close("div")
		h.Raw("</body></html>")
	})
}

func sidebar(h *markup.Writer, nav []NavGroup, active string) {
	h.Open("nav", templ.Attributes{"class": "sidebar"})
	h.Element("a", templ.Attributes{"href": "/", "class": navClass(active == "dashboard")}, "Dashboard")
	for _, g := range nav {
		h.Element("h2", templ.Attributes{"class": "nav-group"}, g.Name)
		h.Raw("<ul>")
		for _, item := range g.Items {
			h.Raw("<li>")
			h.Element("a", templ.Attributes{"href": item.Href, "class": navClass(item.Key == active)}, item.Label)
			h.Raw("</li>")
		}
		h.Raw("</ul>")
	}
	h.Element("a", templ.Attributes{"href": "/audit-log", "class": navClass(active == "audit")}, "Audit Log")
	h.Close("nav")
}

func navClass(active bool) string {
	if active {
		return "nav-link is-active"
	}
	return "nav-link"
}

func pageHeader(h *markup.Writer, hdr *Header) {
	h.Open("header", templ.Attributes{"class": "page-header"})
	h.Raw("<div>")
	h.Element("h1", nil, hdr.Title)
	if hdr.Subtitle != "" {
		h.Element("p", templ.Attributes{"class": "subtitle"}, hdr.Subtitle)
	}
	h.Raw("</div>")
	if len(hdr.Actions) > 0 {
		h.Open("div", templ.Attributes{"class": "header-actions"})
		for _, a := range hdr.Actions {
			headerAction(h, a)
		}
		h.Close("div")
	}
	h.Close("header")
}

func headerAction(h *markup.Writer, a HeaderAction) {
	variant := a.Variant
	if variant == "" {
		variant = "primary"
	}
	class := "btn btn-" + variant
	if a.Link.Zero() {
		h.Element("a", templ.Attributes{"href": a.Href, "class": class}, a.Label)
		return
	}
	attrs := a.Link.Attrs()
	attrs["type"] = "button"
	attrs["class"] = class
	h.Element("button", attrs, a.Label)
}
