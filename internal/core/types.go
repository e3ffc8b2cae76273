package core

import (
	"net/url"

	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

// FieldType represents the expected data type of a form field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
	FieldBool
	FieldEmail
	FieldTextArea
)

// FieldSpec defines one input of a create/edit form.
type FieldSpec struct {
	Name        string    // Payload key sent to the API: "contact_email"
	Label       string    // Form label: "Contact email"
	Type        FieldType // Expected data type
	Required    bool
	EnumValues  []string // Valid values for FieldEnum
	Placeholder string
	Help        string
	// CreateOnly fields are hidden on edit forms.
	CreateOnly bool
	Normalizer func(string) string // Optional transformation applied before validation
}

// DisplayLabel returns Label, or a title-cased Name.
func (f FieldSpec) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return HumanizeKey(f.Name)
}

// ScreenInfo contains display and routing information about a screen.
type ScreenInfo struct {
	Key      string // Unique identifier: "admin_training_centers"
	Group    string // Navigation group: "Admin", "ACC", "Training Center"
	Label    string // Navigation label: "Training Centers"
	Title    string // Page header title
	Subtitle string // Page header subtitle
	Entity   string // Singular record noun: "Training Center"

	Namespace string // API namespace: api.NamespaceAdmin, ...
	Resource  string // API resource path: "training-centers"
	EntityKey string // Array key of named list responses: "training_centers"
}

// Capabilities lists which workflows a screen offers.
type Capabilities struct {
	View    bool
	Create  bool
	Edit    bool
	Delete  bool
	Approve bool // approve and reject
}

// ScreenDefinition contains everything needed to render and operate a screen.
type ScreenDefinition struct {
	Info ScreenInfo

	Columns           []datatable.Column
	Filters           []datatable.FilterOption
	DefaultFilter     string
	SearchPlaceholder string
	EmptyMessage      string

	// SearchFields are the dotted paths folded into the precomputed search
	// text. Defaults to the column accessors.
	SearchFields []string

	// Fields drive the create and edit forms.
	Fields []FieldSpec

	Can Capabilities

	// Expandable screens show ChildrenField of each record as a nested
	// table with ChildColumns.
	Expandable    bool
	ChildrenField string
	ChildColumns  []datatable.Column

	// ListParams are extra query parameters sent with the list call.
	ListParams url.Values
}

// Entity returns the singular noun for records of this screen.
func (d ScreenDefinition) Entity() string {
	if d.Info.Entity != "" {
		return d.Info.Entity
	}
	return "Record"
}

// EditFields returns the fields shown on the edit form.
func (d ScreenDefinition) EditFields() []FieldSpec {
	out := make([]FieldSpec, 0, len(d.Fields))
	for _, f := range d.Fields {
		if !f.CreateOnly {
			out = append(out, f)
		}
	}
	return out
}
