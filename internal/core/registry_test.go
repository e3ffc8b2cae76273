package core

import (
	"testing"

	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

func resetRegistry(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
}

func TestRegisterFillsDefaults(t *testing.T) {
	resetRegistry(t)

	Register(ScreenDefinition{
		Info: ScreenInfo{Key: "admin_courses", Group: "Admin"},
		Fields: []FieldSpec{
			{Name: "name", Label: "Course"},
			{Name: "duration_hours"},
		},
	})

	def, ok := Get("admin_courses")
	if !ok {
		t.Fatal("registered screen not found")
	}
	if len(def.Columns) != 2 {
		t.Fatalf("Columns = %d, want 2", len(def.Columns))
	}
	if def.Columns[0].Header != "Course" || def.Columns[1].Header != "Duration Hours" {
		t.Errorf("headers = %q, %q", def.Columns[0].Header, def.Columns[1].Header)
	}
	if len(def.SearchFields) != 2 || def.SearchFields[1] != "duration_hours" {
		t.Errorf("SearchFields = %v", def.SearchFields)
	}
	if def.DefaultFilter != datatable.AllFilter {
		t.Errorf("DefaultFilter = %q, want %q", def.DefaultFilter, datatable.AllFilter)
	}
	if def.Entity() != "Record" {
		t.Errorf("Entity() = %q, want Record", def.Entity())
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	resetRegistry(t)
	Register(ScreenDefinition{Info: ScreenInfo{Key: "dup"}})

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(ScreenDefinition{Info: ScreenInfo{Key: "dup"}})
}

func TestRegistryOrdering(t *testing.T) {
	resetRegistry(t)
	Register(ScreenDefinition{Info: ScreenInfo{Key: "tc_courses", Group: "Training Center"}})
	Register(ScreenDefinition{Info: ScreenInfo{Key: "admin_payments", Group: "Admin"}})
	Register(ScreenDefinition{Info: ScreenInfo{Key: "admin_courses", Group: "Admin"}})
	Register(ScreenDefinition{Info: ScreenInfo{Key: "acc_instructors", Group: "ACC"}})

	all := All()
	want := []string{"acc_instructors", "admin_courses", "admin_payments", "tc_courses"}
	for i, key := range want {
		if all[i].Info.Key != key {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].Info.Key, key)
		}
	}

	groups := Groups()
	if len(groups) != 3 || groups[0] != "ACC" || groups[2] != "Training Center" {
		t.Errorf("Groups() = %v", groups)
	}

	admin := ByGroup("Admin")
	if len(admin) != 2 || admin[0].Info.Key != "admin_courses" {
		t.Errorf("ByGroup(Admin) = %v", admin)
	}
	if ScreenCount() != 4 {
		t.Errorf("ScreenCount() = %d, want 4", ScreenCount())
	}
}

func TestEditFieldsSkipsCreateOnly(t *testing.T) {
	def := ScreenDefinition{Fields: []FieldSpec{
		{Name: "email", CreateOnly: true},
		{Name: "name"},
	}}
	got := def.EditFields()
	if len(got) != 1 || got[0].Name != "name" {
		t.Errorf("EditFields() = %v", got)
	}
}
