package screens

import (
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

// Navigation groups, one per API role namespace.
const (
	GroupAdmin          = "Admin"
	GroupACC            = "ACC"
	GroupTrainingCenter = "Training Center"
)

// statusBadge colors the statuses the marketplace uses.
var statusBadge = datatable.Badge{Classes: map[string]string{
	"active":    "success",
	"approved":  "success",
	"completed": "success",
	"paid":      "success",
	"pending":   "warning",
	"expired":   "muted",
	"inactive":  "muted",
	"refunded":  "muted",
	"rejected":  "danger",
	"suspended": "danger",
	"failed":    "danger",
}}

func statusColumn() datatable.Column {
	return datatable.Column{Header: "Status", Accessor: "status", Render: statusBadge}
}

func dateColumn(header, accessor string) datatable.Column {
	return datatable.Column{Header: header, Accessor: accessor, Render: datatable.Date{}}
}

func updatedColumn() datatable.Column {
	return datatable.Column{Header: "Updated", Accessor: "updated_at", Render: datatable.RelativeTime{}}
}

// approvalFilters are the filters of screens with an approval workflow.
func approvalFilters() []datatable.FilterOption {
	return datatable.StatusOptions("status", "pending", "active", "rejected", "suspended")
}
