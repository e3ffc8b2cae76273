package views

import (
	"net/url"
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
)

// FormParams configures a create or edit form.
type FormParams struct {
	// Post is the URL the form submits to with hx-post.
	Post    string
	Fields  []core.FieldSpec
	Values  url.Values
	Errors  map[string]string
	Message string // form-level error, shown above the fields
	Submit  string
}

// Form renders a record form. Submissions swap the modal slot so validation
// errors re-render in place.
func Form(p FormParams) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		h.Open("form", templ.Attributes{
			"class":      "record-form",
			"hx-post":    p.Post,
			"hx-target":  ModalTarget,
			"novalidate": true,
		})
		if p.Message != "" {
			h.Element("p", templ.Attributes{"class": "alert alert-error", "role": "alert"}, p.Message)
		}
		for _, f := range p.Fields {
			field(h, f, p.Values.Get(f.Name), p.Errors[f.Name])
		}
		h.Open("div", templ.Attributes{"class": "form-actions"})
		submit := p.Submit
		if submit == "" {
			submit = "Save"
		}
		h.Element("button", templ.Attributes{"type": "submit", "class": "btn btn-primary"}, submit)
		h.Element("button", templ.Attributes{
			"type":      "button",
			"class":     "btn btn-secondary",
			"hx-get":    "/modal/close",
			"hx-target": ModalTarget,
		}, "Cancel")
		h.Close("div")
		h.Close("form")
	})
}

func field(h *markup.Writer, f core.FieldSpec, value, errMsg string) {
	id := "field-" + f.Name
	class := "form-field"
	if errMsg != "" {
		class += " has-error"
	}
	h.Open("div", templ.Attributes{"class": class})

	label := f.DisplayLabel()
	if f.Required {
		label += " *"
	}
	h.Element("label", templ.Attributes{"for": id}, label)

	switch f.Type {
	case core.FieldEnum:
		h.Open("select", templ.Attributes{"id": id, "name": f.Name, "required": f.Required})
		h.Element("option", templ.Attributes{"value": ""}, "Select...")
		for _, v := range f.EnumValues {
			h.Element("option", templ.Attributes{
				"value":    v,
				"selected": strings.EqualFold(v, value),
			}, core.HumanizeKey(v))
		}
		h.Close("select")
	case core.FieldTextArea:
		h.Open("textarea", inputAttrs(f, id))
		h.Text(value)
		h.Close("textarea")
	case core.FieldBool:
		attrs := templ.Attributes{
			"id":      id,
			"name":    f.Name,
			"type":    "checkbox",
			"value":   "true",
			"checked": value == "true",
		}
		h.Open("input", attrs)
	default:
		attrs := inputAttrs(f, id)
		attrs["type"] = f.InputType()
		attrs["value"] = value
		if f.Type == core.FieldNumeric {
			attrs["step"] = "any"
		}
		h.Open("input", attrs)
	}

	if f.Help != "" {
		h.Element("small", templ.Attributes{"class": "help"}, f.Help)
	}
	if errMsg != "" {
		h.Element("p", templ.Attributes{"class": "field-error"}, errMsg)
	}
	h.Close("div")
}

func inputAttrs(f core.FieldSpec, id string) templ.Attributes {
	attrs := templ.Attributes{"id": id, "name": f.Name, "required": f.Required}
	if f.Placeholder != "" {
		attrs["placeholder"] = f.Placeholder
	}
	return attrs
}

// RejectForm asks for the reason a pending record is rejected.
func RejectForm(post, reason, errMsg string) templ.Component {
	return Form(FormParams{
		Post: post,
		Fields: []core.FieldSpec{{
			Name:     core.RejectionReasonField,
			Label:    "Reason for rejection",
			Type:     core.FieldTextArea,
			Required: true,
			Help:     "The applicant sees this message.",
		}},
		Values: url.Values{core.RejectionReasonField: {reason}},
		Errors: map[string]string{core.RejectionReasonField: errMsg},
		Submit: "Reject",
	})
}
