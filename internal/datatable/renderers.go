package datatable

import (
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Text renders the display label of the value. It is what columns without a
// renderer get.
type Text struct{}

func (Text) RenderCell(value any, _ Record, _ RowContext) templ.Component {
	return markup.Text(DisplayLabel(value))
}

func (Text) PlainText(value any, _ Record) string {
	return DisplayLabel(value)
}

// Badge renders a status pill. Classes maps lower-cased values to a modifier
// class; unmapped values use their own slug.
type Badge struct {
	Classes map[string]string
}

func (b Badge) RenderCell(value any, _ Record, _ RowContext) templ.Component {
	label := DisplayLabel(value)
	if label == "" {
		return markup.Text("")
	}
	key := strings.ToLower(label)
	modifier, ok := b.Classes[key]
	if !ok {
		modifier = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	}
	return markup.Func(func(h *markup.Writer) {
		h.Element("span", templ.Attributes{"class": "badge badge-" + modifier}, titleWords(label))
	})
}

func (Badge) PlainText(value any, _ Record) string {
	return titleWords(DisplayLabel(value))
}

// DefaultDateLayout is used by Date when no layout is set.
const DefaultDateLayout = "Jan 2, 2006"

// Date renders date values in Layout. Values that do not parse are shown as
// they are.
type Date struct {
	Layout string
}

func (d Date) PlainText(value any, _ Record) string {
	t, ok := presentDate(value)
	if !ok {
		return DisplayLabel(value)
	}
	layout := d.Layout
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

func (d Date) RenderCell(value any, rec Record, _ RowContext) templ.Component {
	t, ok := presentDate(value)
	if !ok {
		return markup.Text(DisplayLabel(value))
	}
	text := d.PlainText(value, rec)
	return markup.Func(func(h *markup.Writer) {
		h.Element("time", templ.Attributes{"datetime": t.Format(time.RFC3339)}, text)
	})
}

func presentDate(value any) (time.Time, bool) {
	if !truthy(value) {
		return time.Time{}, false
	}
	return parseDate(value)
}

// Money renders amounts in a currency. The currency comes from
// CurrencyField on the record when present, else Currency, else USD.
type Money struct {
	Currency      string
	CurrencyField string
	Lang          language.Tag
}

func (m Money) PlainText(value any, rec Record) string {
	amount, ok := moneyAmount(value)
	if !ok {
		return DisplayLabel(value)
	}
	code := m.Currency
	if m.CurrencyField != "" {
		if c := rec.String(m.CurrencyField); c != "" {
			code = c
		}
	}
	if code == "" {
		code = "USD"
	}
	lang := m.Lang
	if lang == language.Und {
		lang = language.English
	}
	p := message.NewPrinter(lang)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%.2f %s", amount, strings.ToUpper(code))
	}
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}

func (m Money) RenderCell(value any, rec Record, _ RowContext) templ.Component {
	text := m.PlainText(value, rec)
	return markup.Func(func(h *markup.Writer) {
		h.Element("span", templ.Attributes{"class": "money"}, text)
	})
}

// moneyAmount accepts numbers and numeric strings; APIs often send decimals
// as strings.
func moneyAmount(value any) (float64, bool) {
	if f, ok := toNumber(value); ok {
		return f, true
	}
	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

// RelativeTime renders "3 days ago" style text with the absolute time as a
// tooltip.
type RelativeTime struct {
	Now func() time.Time
}

func (r RelativeTime) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r RelativeTime) PlainText(value any, _ Record) string {
	t, ok := presentDate(value)
	if !ok {
		return DisplayLabel(value)
	}
	return humanize.RelTime(t, r.now(), "ago", "from now")
}

func (r RelativeTime) RenderCell(value any, rec Record, _ RowContext) templ.Component {
	t, ok := presentDate(value)
	if !ok {
		return markup.Text(DisplayLabel(value))
	}
	text := r.PlainText(value, rec)
	return markup.Func(func(h *markup.Writer) {
		h.Element("time", templ.Attributes{
			"datetime": t.Format(time.RFC3339),
			"title":    t.Format("Jan 2, 2006 15:04"),
		}, text)
	})
}

// ExpandToggle renders the value next to a button that shows or hides the
// row's expanded content. The button consumes its click so it never reaches
// the row click handler.
type ExpandToggle struct{}

func (ExpandToggle) PlainText(value any, _ Record) string {
	return DisplayLabel(value)
}

func (ExpandToggle) RenderCell(value any, _ Record, row RowContext) templ.Component {
	label := DisplayLabel(value)
	return markup.Func(func(h *markup.Writer) {
		if row.ToggleExpand.Zero() {
			h.Text(label)
			return
		}
		attrs := row.ToggleExpand.Attrs()
		attrs["type"] = "button"
		attrs["class"] = "dt-expand"
		attrs["data-clickable"] = "true"
		attrs["hx-trigger"] = consumeClick
		attrs["aria-expanded"] = strconv.FormatBool(row.IsExpanded)
		h.Open("button", attrs)
		if row.IsExpanded {
			h.Raw("&#9662;")
		} else {
			h.Raw("&#9656;")
		}
		h.Close("button")
		h.Raw(" ")
		h.Text(label)
	})
}
