package screens

import (
	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

func init() {
	registerAdminAccreditationBodies()
}

func registerAdminAccreditationBodies() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       "admin_accreditation_bodies",
			Group:     GroupAdmin,
			Label:     "Accreditation Bodies",
			Title:     "Accreditation Bodies",
			Subtitle:  "Review applications and manage accrediting organizations",
			Entity:    "Accreditation Body",
			Namespace: api.NamespaceAdmin,
			Resource:  "accs",
			EntityKey: "accs",
		},
		Columns: []datatable.Column{
			{Header: "Name", Accessor: "name"},
			{Header: "Legal Name", Accessor: "legal_name"},
			{Header: "Country", Accessor: "country"},
			{Header: "Email", Accessor: "email"},
			statusColumn(),
			dateColumn("Registered", "created_at"),
		},
		Filters:           approvalFilters(),
		SearchPlaceholder: "Search accreditation bodies...",
		EmptyMessage:      "No accreditation bodies have registered yet.",
		SearchFields:      []string{"name", "legal_name", "email", "country", "registration_number"},
		Fields: []core.FieldSpec{
			{Name: "name", Required: true},
			{Name: "legal_name", Label: "Legal name", Required: true},
			{Name: "registration_number", Label: "Registration number", Normalizer: NormalizeCode},
			{Name: "email", Type: core.FieldEmail, Required: true},
			{Name: "phone", Normalizer: NormalizePhone},
			{Name: "website", Normalizer: NormalizeWebsite},
			{Name: "country", Required: true},
			{Name: "address", Type: core.FieldTextArea},
			{Name: "commission_percentage", Label: "Commission %", Type: core.FieldNumeric},
		},
		Can: core.Capabilities{View: true, Edit: true, Delete: true, Approve: true},
	})
}
