package screens

import (
	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

func init() {
	registerAdminTrainingCenters()
	registerACCTrainingCenters()
}

var trainingCenterFields = []core.FieldSpec{
	{Name: "name", Required: true},
	{Name: "email", Type: core.FieldEmail, Required: true},
	{Name: "phone", Normalizer: NormalizePhone},
	{Name: "website", Normalizer: NormalizeWebsite},
	{Name: "address", Type: core.FieldTextArea},
	{Name: "city"},
	{Name: "state", Placeholder: "CA or California", Normalizer: NormalizeUsState},
	{Name: "country", Required: true},
}

func trainingCenterColumns() []datatable.Column {
	return []datatable.Column{
		{Header: "Name", Accessor: "name"},
		{Header: "Email", Accessor: "email"},
		{Header: "City", Accessor: "city"},
		{Header: "Country", Accessor: "country"},
		statusColumn(),
		dateColumn("Joined", "created_at"),
	}
}

func registerAdminTrainingCenters() {
	cols := trainingCenterColumns()
	cols = append(cols[:4:4], datatable.Column{Header: "Accreditation Body", Accessor: "acc"}, cols[4], cols[5])

	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       "admin_training_centers",
			Group:     GroupAdmin,
			Label:     "Training Centers",
			Title:     "Training Centers",
			Subtitle:  "All training centers across accreditation bodies",
			Entity:    "Training Center",
			Namespace: api.NamespaceAdmin,
			Resource:  "training-centers",
			EntityKey: "training_centers",
		},
		Columns:           cols,
		Filters:           approvalFilters(),
		SearchPlaceholder: "Search training centers...",
		EmptyMessage:      "No training centers found.",
		SearchFields:      []string{"name", "email", "city", "state", "country", "acc.name"},
		Fields:            trainingCenterFields,
		Can:               core.Capabilities{View: true, Create: true, Edit: true, Delete: true, Approve: true},
	})
}

func registerACCTrainingCenters() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       "acc_training_centers",
			Group:     GroupACC,
			Label:     "Training Centers",
			Title:     "Training Centers",
			Subtitle:  "Centers authorized under your accreditation",
			Entity:    "Training Center",
			Namespace: api.NamespaceACC,
			Resource:  "training-centers",
			EntityKey: "training_centers",
		},
		Columns:           trainingCenterColumns(),
		Filters:           approvalFilters(),
		SearchPlaceholder: "Search training centers...",
		EmptyMessage:      "No training centers have applied yet.",
		SearchFields:      []string{"name", "email", "city", "state", "country"},
		Fields:            trainingCenterFields,
		Can:               core.Capabilities{View: true, Approve: true},
	})
}
