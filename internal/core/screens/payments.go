package screens

import (
	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

func init() {
	registerPayments(GroupAdmin, api.NamespaceAdmin, "admin_payments", "All marketplace transactions")
	registerPayments(GroupACC, api.NamespaceACC, "acc_payments", "Payments received for your courses")
	registerPayments(GroupTrainingCenter, api.NamespaceTrainingCenter, "tc_payments", "Payments made by your center")
}

// Payments are read-only: refunds and captures happen at the payment provider.
func registerPayments(group, namespace, key, subtitle string) {
	money := datatable.Money{CurrencyField: "currency"}

	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       key,
			Group:     group,
			Label:     "Payments",
			Title:     "Payments",
			Subtitle:  subtitle,
			Entity:    "Payment",
			Namespace: namespace,
			Resource:  "payments",
			EntityKey: "payments",
		},
		Columns: []datatable.Column{
			{Header: "Reference", Accessor: "reference"},
			{Header: "Payer", Accessor: "payer"},
			{Header: "Course", Accessor: "course"},
			{Header: "Amount", Accessor: "amount", Render: money},
			{Header: "Discount", Accessor: "discount_amount", Render: money},
			{Header: "Method", Accessor: "payment_method"},
			statusColumn(),
			dateColumn("Paid", "payment_date"),
		},
		Filters:           datatable.StatusOptions("status", "pending", "paid", "failed", "refunded"),
		SearchPlaceholder: "Search payments...",
		EmptyMessage:      "No payments recorded.",
		SearchFields:      []string{"reference", "payer.name", "payer.email", "course.name", "discount_code.code"},
		Can:               core.Capabilities{View: true},
	})
}
