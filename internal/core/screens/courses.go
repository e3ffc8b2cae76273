package screens

import (
	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

func init() {
	registerCourses(GroupAdmin, api.NamespaceAdmin, "admin_courses",
		core.Capabilities{View: true, Edit: true, Delete: true, Approve: true})
	registerCourses(GroupACC, api.NamespaceACC, "acc_courses",
		core.Capabilities{View: true, Create: true, Edit: true, Delete: true})
	registerCourses(GroupTrainingCenter, api.NamespaceTrainingCenter, "tc_courses",
		core.Capabilities{View: true})
	registerCourseCategories()
}

var courseLevels = []string{"beginner", "intermediate", "advanced"}

var courseFields = []core.FieldSpec{
	{Name: "name", Required: true},
	{Name: "code", Required: true, Normalizer: NormalizeCode},
	{Name: "category_id", Label: "Category ID", Type: core.FieldNumeric, Required: true},
	{Name: "level", Type: core.FieldEnum, EnumValues: courseLevels},
	{Name: "duration_hours", Label: "Duration (hours)", Type: core.FieldNumeric, Required: true},
	{Name: "price", Type: core.FieldNumeric, Required: true},
	{Name: "currency", Placeholder: "USD"},
	{Name: "certificate_validity_months", Label: "Certificate validity (months)", Type: core.FieldNumeric},
	{Name: "is_active", Label: "Active", Type: core.FieldBool},
	{Name: "description", Type: core.FieldTextArea},
}

func registerCourses(group, namespace, key string, can core.Capabilities) {
	filters := datatable.StatusOptions("status", "pending", "approved", "rejected")
	filters = append(filters, datatable.FilterOption{
		Value:     "active",
		Label:     "Active only",
		Predicate: datatable.FieldTruthy("is_active"),
	})

	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       key,
			Group:     group,
			Label:     "Courses",
			Title:     "Courses",
			Subtitle:  "Accredited course catalogue",
			Entity:    "Course",
			Namespace: namespace,
			Resource:  "courses",
			EntityKey: "courses",
		},
		Columns: []datatable.Column{
			{Header: "Code", Accessor: "code"},
			{Header: "Name", Accessor: "name"},
			{Header: "Category", Accessor: "category"},
			{Header: "Level", Accessor: "level", Render: statusBadge},
			{Header: "Hours", Accessor: "duration_hours"},
			{Header: "Price", Accessor: "price", Render: datatable.Money{CurrencyField: "currency"}},
			statusColumn(),
			updatedColumn(),
		},
		Filters:           filters,
		SearchPlaceholder: "Search courses...",
		EmptyMessage:      "No courses in the catalogue yet.",
		SearchFields:      []string{"code", "name", "category", "level", "description", "acc.name"},
		Fields:            courseFields,
		Can:               can,
	})
}

func registerCourseCategories() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       "admin_course_categories",
			Group:     GroupAdmin,
			Label:     "Course Categories",
			Title:     "Course Categories",
			Subtitle:  "Categories and their sub-categories",
			Entity:    "Category",
			Namespace: api.NamespaceAdmin,
			Resource:  "course-categories",
			EntityKey: "categories",
		},
		Columns: []datatable.Column{
			{Header: "Name", Accessor: "name", Render: datatable.ExpandToggle{}},
			{Header: "Description", Accessor: "description", DisableSort: true},
			{Header: "Sub-categories", Accessor: "sub_categories_count"},
			{Header: "Active", Accessor: "is_active"},
			updatedColumn(),
		},
		Filters: []datatable.FilterOption{
			{Value: datatable.AllFilter, Label: "All"},
			{Value: "active", Label: "Active", Predicate: datatable.FieldTruthy("is_active")},
		},
		SearchPlaceholder: "Search categories...",
		EmptyMessage:      "No course categories yet.",
		SearchFields:      []string{"name", "description", "sub_categories.name"},
		Fields: []core.FieldSpec{
			{Name: "name", Required: true},
			{Name: "description", Type: core.FieldTextArea},
			{Name: "parent_id", Label: "Parent category ID", Type: core.FieldNumeric, CreateOnly: true},
			{Name: "is_active", Label: "Active", Type: core.FieldBool},
		},
		Can:           core.Capabilities{View: true, Create: true, Edit: true, Delete: true},
		Expandable:    true,
		ChildrenField: "sub_categories",
		ChildColumns: []datatable.Column{
			{Header: "Sub-category", Accessor: "name"},
			{Header: "Description", Accessor: "description", DisableSort: true},
			{Header: "Active", Accessor: "is_active"},
		},
	})
}
