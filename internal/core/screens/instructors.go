package screens

import (
	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

func init() {
	registerInstructors(GroupAdmin, api.NamespaceAdmin, "admin_instructors",
		core.Capabilities{View: true, Edit: true, Delete: true})
	registerInstructors(GroupACC, api.NamespaceACC, "acc_instructors",
		core.Capabilities{View: true, Approve: true})
	registerInstructors(GroupTrainingCenter, api.NamespaceTrainingCenter, "tc_instructors",
		core.Capabilities{View: true, Create: true, Edit: true, Delete: true})
}

var instructorFields = []core.FieldSpec{
	{Name: "first_name", Label: "First name", Required: true},
	{Name: "last_name", Label: "Last name", Required: true},
	{Name: "email", Type: core.FieldEmail, Required: true, CreateOnly: true},
	{Name: "phone", Normalizer: NormalizePhone},
	{Name: "certification_number", Label: "Certification number", Normalizer: NormalizeCode},
	{Name: "certification_expiry", Label: "Certification expiry", Type: core.FieldDate},
	{Name: "specializations", Type: core.FieldTextArea, Help: "Comma separated"},
}

func registerInstructors(group, namespace, key string, can core.Capabilities) {
	subtitle := "Certified instructors and their credentials"
	if namespace == api.NamespaceACC {
		subtitle = "Instructor applications awaiting your review"
	}

	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       key,
			Group:     group,
			Label:     "Instructors",
			Title:     "Instructors",
			Subtitle:  subtitle,
			Entity:    "Instructor",
			Namespace: namespace,
			Resource:  "instructors",
			EntityKey: "instructors",
		},
		Columns: []datatable.Column{
			{Header: "First Name", Accessor: "first_name"},
			{Header: "Last Name", Accessor: "last_name"},
			{Header: "Email", Accessor: "email"},
			{Header: "Training Center", Accessor: "training_center"},
			{Header: "Specializations", Accessor: "specializations", DisableSort: true},
			dateColumn("Certification Expiry", "certification_expiry"),
			statusColumn(),
		},
		Filters:           approvalFilters(),
		SearchPlaceholder: "Search instructors...",
		EmptyMessage:      "No instructors found.",
		SearchFields: []string{
			"first_name", "last_name", "email", "certification_number",
			"training_center.name", "specializations",
		},
		Fields: instructorFields,
		Can:    can,
	})
}
