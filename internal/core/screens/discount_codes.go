package screens

import (
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
)

func init() {
	registerDiscountCodes()
}

// discountValue shows percentage discounts as "15%" and fixed ones as money.
type discountValue struct {
	money datatable.Money
}

func (d discountValue) PlainText(value any, rec datatable.Record) string {
	if strings.EqualFold(rec.String("discount_type"), "percentage") {
		return datatable.DisplayLabel(value) + "%"
	}
	return d.money.PlainText(value, rec)
}

func (d discountValue) RenderCell(value any, rec datatable.Record, _ datatable.RowContext) templ.Component {
	return markup.Text(d.PlainText(value, rec))
}

func registerDiscountCodes() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:       "admin_discount_codes",
			Group:     GroupAdmin,
			Label:     "Discount Codes",
			Title:     "Discount Codes",
			Subtitle:  "Promotional codes applied at checkout",
			Entity:    "Discount Code",
			Namespace: api.NamespaceAdmin,
			Resource:  "discount-codes",
			EntityKey: "discount_codes",
		},
		Columns: []datatable.Column{
			{Header: "Code", Accessor: "code"},
			{Header: "Type", Accessor: "discount_type", Render: statusBadge},
			{Header: "Value", Accessor: "discount_value", Render: discountValue{money: datatable.Money{CurrencyField: "currency"}}},
			{Header: "Used", Accessor: "used_count"},
			{Header: "Limit", Accessor: "usage_limit"},
			dateColumn("Valid From", "valid_from"),
			dateColumn("Valid Until", "valid_until"),
			statusColumn(),
		},
		Filters:           datatable.StatusOptions("status", "active", "expired", "inactive"),
		SearchPlaceholder: "Search discount codes...",
		EmptyMessage:      "No discount codes have been created.",
		SearchFields:      []string{"code", "description", "discount_type"},
		Fields: []core.FieldSpec{
			{Name: "code", Required: true, Normalizer: NormalizeCode, CreateOnly: true},
			{Name: "description", Type: core.FieldTextArea},
			{Name: "discount_type", Label: "Discount type", Type: core.FieldEnum, Required: true, EnumValues: []string{"percentage", "fixed"}},
			{Name: "discount_value", Label: "Discount value", Type: core.FieldNumeric, Required: true},
			{Name: "currency", Placeholder: "USD"},
			{Name: "usage_limit", Label: "Usage limit", Type: core.FieldNumeric},
			{Name: "valid_from", Label: "Valid from", Type: core.FieldDate, Required: true},
			{Name: "valid_until", Label: "Valid until", Type: core.FieldDate},
			{Name: "status", Type: core.FieldEnum, EnumValues: []string{"active", "inactive"}},
		},
		Can: core.Capabilities{View: true, Create: true, Edit: true, Delete: true},
	})
}
