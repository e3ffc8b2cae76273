package screens

import (
	"testing"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreensRegistered(t *testing.T) {
	want := []string{
		"admin_accreditation_bodies",
		"admin_training_centers",
		"acc_training_centers",
		"admin_instructors",
		"acc_instructors",
		"tc_instructors",
		"admin_courses",
		"acc_courses",
		"tc_courses",
		"admin_course_categories",
		"admin_discount_codes",
		"admin_payments",
		"acc_payments",
		"tc_payments",
	}
	for _, key := range want {
		_, ok := core.Get(key)
		assert.True(t, ok, "screen %s not registered", key)
	}
	assert.Equal(t, len(want), core.ScreenCount())
}

func TestScreenDefinitionsWellFormed(t *testing.T) {
	namespaces := map[string]bool{
		api.NamespaceAdmin:          true,
		api.NamespaceACC:            true,
		api.NamespaceTrainingCenter: true,
	}
	groups := map[string]bool{GroupAdmin: true, GroupACC: true, GroupTrainingCenter: true}

	for _, def := range core.All() {
		t.Run(def.Info.Key, func(t *testing.T) {
			assert.True(t, namespaces[def.Info.Namespace], "namespace %q", def.Info.Namespace)
			assert.True(t, groups[def.Info.Group], "group %q", def.Info.Group)
			assert.NotEmpty(t, def.Info.Resource)
			assert.NotEmpty(t, def.Info.EntityKey)
			assert.NotEmpty(t, def.Columns)
			assert.NotEmpty(t, def.SearchFields)
			assert.True(t, def.Can.View)

			if def.Can.Create || def.Can.Edit {
				assert.NotEmpty(t, def.Fields, "editable screen without fields")
			}

			seen := map[string]bool{}
			for _, c := range def.Columns {
				assert.False(t, seen[c.Accessor], "duplicate accessor %s", c.Accessor)
				seen[c.Accessor] = true
			}

			values := map[string]bool{}
			for _, f := range def.Filters {
				assert.False(t, values[f.Value], "duplicate filter %s", f.Value)
				values[f.Value] = true
			}
			if len(def.Filters) > 0 {
				assert.True(t, values[def.DefaultFilter], "default filter %q not offered", def.DefaultFilter)
			}
		})
	}
}

func TestCourseCategoriesExpandable(t *testing.T) {
	def, ok := core.Get("admin_course_categories")
	require.True(t, ok)
	assert.True(t, def.Expandable)
	assert.Equal(t, "sub_categories", def.ChildrenField)
	assert.NotEmpty(t, def.ChildColumns)
	_, isToggle := def.Columns[0].Render.(datatable.ExpandToggle)
	assert.True(t, isToggle)
}

func TestPaymentsReadOnly(t *testing.T) {
	for _, key := range []string{"admin_payments", "acc_payments", "tc_payments"} {
		def, ok := core.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, core.Capabilities{View: true}, def.Can, key)
		assert.Empty(t, def.Fields, key)
	}
}

func TestDiscountValue(t *testing.T) {
	r := discountValue{money: datatable.Money{CurrencyField: "currency"}}

	pct := datatable.Record{"discount_type": "percentage", "discount_value": 15}
	assert.Equal(t, "15%", r.PlainText(pct["discount_value"], pct))

	fixed := datatable.Record{"discount_type": "fixed", "discount_value": 25, "currency": "USD"}
	assert.Equal(t, datatable.Money{CurrencyField: "currency"}.PlainText(25, fixed), r.PlainText(25, fixed))
}

func TestNormalizeUsState(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"California", "CA"},
		{"  new york ", "NY"},
		{"tx", "TX"},
		{"Ontario", "Ontario"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeUsState(tt.in), tt.in)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SPRING25", NormalizeCode(" spring 25 "))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestNormalizeWebsite(t *testing.T) {
	assert.Equal(t, "https://example.com", NormalizeWebsite("example.com"))
	assert.Equal(t, "http://example.com", NormalizeWebsite("http://example.com"))
	assert.Equal(t, "", NormalizeWebsite("  "))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15551234567", NormalizePhone("+1 (555) 123-4567"))
	assert.Equal(t, "5551234", NormalizePhone("555-1234"))
	assert.Equal(t, "n/a", NormalizePhone("n/a"))
}
