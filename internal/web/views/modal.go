package views

import (
	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
)

// Modal wraps body in dialog chrome. The close button empties the modal slot.
func Modal(title string, body templ.Component) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		h.Open("div", templ.Attributes{"class": "modal-backdrop"})
		h.Open("div", templ.Attributes{"class": "modal", "role": "dialog", "aria-modal": "true"})
		h.Open("header", templ.Attributes{"class": "modal-header"})
		h.Element("h2", nil, title)
		h.Element("button", templ.Attributes{
			"type":       "button",
			"class":      "modal-close",
			"aria-label": "Close",
			"hx-get":     "/modal/close",
			"hx-target":  ModalTarget,
		}, "×")
		h.Close("header")
		h.Open("div", templ.Attributes{"class": "modal-body"})
		h.Component(body)
		h.Close("div")
		h.Close("div")
		h.Close("div")
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		h.Open("div", templ.Attributes{"class": "alert alert-error", "role": "alert"})
		h.Element("strong", nil, message)
		if action != "" {
			h.Element("p", nil, action)
		}
		if code != "" {
			h.Element("small", templ.Attributes{"class": "error-code"}, "Code: "+code)
		}
		h.Close("div")
	})
}

// Flash renders a short success message, swapped out-of-band into #flash.
func Flash(message string) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		h.Open("div", templ.Attributes{"id": "flash", "hx-swap-oob": "true", "aria-live": "polite"})
		h.Element("p", templ.Attributes{"class": "alert alert-success"}, message)
		h.Close("div")
	})
}

// Confirm asks before a destructive request.
func Confirm(message, confirmLabel string, confirm templ.Attributes) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		h.Element("p", nil, message)
		h.Open("div", templ.Attributes{"class": "form-actions"})
		confirm["type"] = "button"
		confirm["class"] = "btn btn-danger"
		h.Element("button", confirm, confirmLabel)
		h.Element("button", templ.Attributes{
			"type":      "button",
			"class":     "btn btn-secondary",
			"hx-get":    "/modal/close",
			"hx-target": ModalTarget,
		}, "Cancel")
		h.Close("div")
	})
}
