package views

import (
	"strconv"

	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
)

// ScreenCard summarizes one screen on the dashboard.
type ScreenCard struct {
	NavItem
	Subtitle string
	Entity   string
	Actions  []string // "create", "approve", ...
}

// CardGroup is a dashboard section.
type CardGroup struct {
	Name  string
	Cards []ScreenCard
}

// Dashboard renders the screen overview grouped by role.
func Dashboard(groups []CardGroup, auditEnabled bool) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		if !auditEnabled {
			h.Element("p", templ.Attributes{"class": "notice"},
				"Audit trail disabled: set DATABASE_URL to record console changes.")
		}
		for _, g := range groups {
			h.Open("section", templ.Attributes{"class": "card-group"})
			h.Element("h2", nil, g.Name+" ("+strconv.Itoa(len(g.Cards))+")")
			h.Open("div", templ.Attributes{"class": "cards"})
			for _, c := range g.Cards {
				h.Open("a", templ.Attributes{"class": "card", "href": c.Href})
				h.Element("h3", nil, c.Label)
				if c.Subtitle != "" {
					h.Element("p", nil, c.Subtitle)
				}
				if len(c.Actions) > 0 {
					h.Open("ul", templ.Attributes{"class": "card-tags"})
					for _, a := range c.Actions {
						h.Element("li", templ.Attributes{"class": "tag"}, a)
					}
					h.Close("ul")
				}
				h.Close("a")
			}
			h.Close("div")
			h.Close("section")
		}
	})
}
