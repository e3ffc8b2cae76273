package datatable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, Record) error { return nil }

func TestCallbacksActionsPrecedence(t *testing.T) {
	tests := []struct {
		name           string
		edit, del, vue bool
		want           []Action
	}{
		{"edit delete view", true, true, true, []Action{ActionEdit, ActionDelete}},
		{"edit delete", true, true, false, []Action{ActionEdit, ActionDelete}},
		{"edit view", true, false, true, []Action{ActionView, ActionEdit}},
		{"delete view", false, true, true, []Action{ActionView, ActionDelete}},
		{"edit only", true, false, false, []Action{ActionEdit}},
		{"delete only", false, true, false, []Action{ActionDelete}},
		{"view only", false, false, true, []Action{ActionView}},
		{"none", false, false, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cb Callbacks
			if tt.edit {
				cb.OnEdit = noop
			}
			if tt.del {
				cb.OnDelete = noop
			}
			if tt.vue {
				cb.OnView = noop
			}
			got := cb.Actions()
			assert.Equal(t, tt.want, got)

			provided := 0
			for _, on := range []bool{tt.edit, tt.del, tt.vue} {
				if on {
					provided++
				}
			}
			assert.Equal(t, min(provided, 2), len(got))
		})
	}
}

func TestViewPlaceholders(t *testing.T) {
	cols := orgColumns()

	t.Run("empty collection uses caller message", func(t *testing.T) {
		tbl := New(Config{Columns: cols, EmptyMessage: "No centers yet."}, nil, NewState(""))
		vm := tbl.View()
		require.NotNil(t, vm.Placeholder)
		assert.Equal(t, PlaceholderEmpty, vm.Placeholder.Kind)
		assert.Equal(t, "No centers yet.", vm.Placeholder.Message)
		assert.Equal(t, 2, vm.Placeholder.Colspan)
		assert.Empty(t, vm.Rows)
	})

	t.Run("loading spans actions column", func(t *testing.T) {
		tbl := New(Config{Columns: cols, IsLoading: true, Callbacks: Callbacks{OnDelete: noop}}, orgRecords(), NewState(""))
		vm := tbl.View()
		require.NotNil(t, vm.Placeholder)
		assert.Equal(t, PlaceholderLoading, vm.Placeholder.Kind)
		assert.Equal(t, 3, vm.Placeholder.Colspan)
	})

	t.Run("search without matches", func(t *testing.T) {
		tbl := New(Config{Columns: cols, EmptyMessage: "No centers yet."}, orgRecords(), NewState("").WithSearch("nope"))
		vm := tbl.View()
		require.NotNil(t, vm.Placeholder)
		assert.Equal(t, PlaceholderNoResults, vm.Placeholder.Kind)
		assert.Equal(t, NoResultsMessage, vm.Placeholder.Message)
	})

	t.Run("filter on empty collection", func(t *testing.T) {
		tbl := New(Config{Columns: cols, Filters: statusFilters()}, nil, NewState("").WithFilter("inactive"))
		vm := tbl.View()
		require.NotNil(t, vm.Placeholder)
		assert.Equal(t, PlaceholderNoResults, vm.Placeholder.Kind)
	})

	t.Run("non-all default filter on empty collection", func(t *testing.T) {
		cfg := Config{Columns: cols, Filters: statusFilters(), DefaultFilter: "active", EmptyMessage: "No centers yet."}
		vm := New(cfg, nil, NewState("active")).View()
		require.NotNil(t, vm.Placeholder)
		assert.Equal(t, PlaceholderEmpty, vm.Placeholder.Kind)
		assert.Equal(t, "No centers yet.", vm.Placeholder.Message)

		vm = New(cfg, nil, NewState("active").WithFilter(AllFilter)).View()
		require.NotNil(t, vm.Placeholder)
		assert.Equal(t, PlaceholderNoResults, vm.Placeholder.Kind)
	})

	t.Run("default empty message", func(t *testing.T) {
		vm := New(Config{Columns: cols}, []Record{}, NewState("")).View()
		require.NotNil(t, vm.Placeholder)
		assert.Equal(t, DefaultEmptyMessage, vm.Placeholder.Message)
	})
}

func TestViewRows(t *testing.T) {
	tbl := New(Config{Columns: orgColumns()}, []Record{{"name": "no id"}, {"id": "abc", "name": "has id"}}, NewState(""))
	vm := tbl.View()
	require.Nil(t, vm.Placeholder)
	require.Len(t, vm.Rows, 2)
	assert.Equal(t, "0", vm.Rows[0].ID)
	assert.Equal(t, "abc", vm.Rows[1].ID)
	assert.Equal(t, 2, vm.Total)
	assert.Equal(t, 2, vm.Visible)
}

func TestFilterMenuListener(t *testing.T) {
	hub := NewPointerHub()
	tbl := New(Config{Columns: orgColumns(), Filters: statusFilters(), Pointer: hub}, orgRecords(), NewState(""))

	assert.False(t, tbl.FilterMenuOpen())
	assert.Equal(t, 0, hub.Listeners())

	tbl.ToggleFilterMenu()
	assert.True(t, tbl.FilterMenuOpen())
	assert.Equal(t, 1, hub.Listeners())

	hub.PointerDown(true)
	assert.True(t, tbl.FilterMenuOpen(), "pointer inside the menu keeps it open")

	hub.PointerDown(false)
	assert.False(t, tbl.FilterMenuOpen())
	assert.Equal(t, 0, hub.Listeners())

	tbl.ToggleFilterMenu()
	tbl.ToggleFilterMenu()
	assert.False(t, tbl.FilterMenuOpen())
	assert.Equal(t, 0, hub.Listeners())

	tbl.ToggleFilterMenu()
	tbl.SelectFilter("inactive")
	assert.False(t, tbl.FilterMenuOpen())
	assert.Equal(t, 0, hub.Listeners())
	assert.Equal(t, []string{"2"}, ids(tbl.Rows()))

	// No listener left behind after closing, so stray events are harmless.
	hub.PointerDown(false)
	assert.False(t, tbl.FilterMenuOpen())
}

func TestNewWithOpenMenuAttachesListener(t *testing.T) {
	hub := NewPointerHub()
	tbl := New(Config{Columns: orgColumns(), Filters: statusFilters(), Pointer: hub}, orgRecords(), NewState("").WithMenu(true))
	assert.True(t, tbl.FilterMenuOpen())
	assert.True(t, tbl.ListeningOutside())
	assert.Equal(t, 1, hub.Listeners())

	tbl.Close()
	assert.Equal(t, 0, hub.Listeners())
	assert.False(t, tbl.ListeningOutside())
}

func TestSortBy(t *testing.T) {
	cols := []Column{
		{Header: "Name", Accessor: "name"},
		{Header: "Notes", Accessor: "notes", DisableSort: true},
	}
	tbl := New(Config{Columns: cols}, orgRecords(), NewState(""))

	assert.True(t, tbl.SortBy("name"))
	assert.Equal(t, SortState{Key: "name", Direction: Ascending}, tbl.State().Sort)

	assert.True(t, tbl.SortBy("name"))
	assert.Equal(t, Descending, tbl.State().Sort.Direction)
	assert.Equal(t, []string{"2", "1"}, ids(tbl.Rows()))

	assert.False(t, tbl.SortBy("notes"))
	assert.False(t, tbl.SortBy("missing"))
	assert.Equal(t, SortState{Key: "name", Direction: Descending}, tbl.State().Sort)
}

func TestRowClick(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers row handler", func(t *testing.T) {
		var clicked, viewed Record
		tbl := New(Config{Columns: orgColumns(), Callbacks: Callbacks{
			OnRowClick: func(_ context.Context, r Record) error { clicked = r; return nil },
			OnView:     func(_ context.Context, r Record) error { viewed = r; return nil },
		}}, orgRecords(), NewState(""))

		require.NoError(t, tbl.RowClick(ctx, "2", TargetCell))
		assert.Equal(t, "Zenith", clicked["name"])
		assert.Nil(t, viewed)
	})

	t.Run("falls back to view", func(t *testing.T) {
		var viewed Record
		tbl := New(Config{Columns: orgColumns(), Callbacks: Callbacks{
			OnView: func(_ context.Context, r Record) error { viewed = r; return nil },
		}}, orgRecords(), NewState(""))

		require.NoError(t, tbl.RowClick(ctx, "1", TargetCell))
		assert.Equal(t, "Acme", viewed["name"])
	})

	t.Run("ignores interactive targets", func(t *testing.T) {
		calls := 0
		tbl := New(Config{Columns: orgColumns(), Callbacks: Callbacks{
			OnRowClick: func(context.Context, Record) error { calls++; return nil },
		}}, orgRecords(), NewState(""))

		for _, target := range []string{"button", "link", "clickable", "actions"} {
			require.NoError(t, tbl.RowClick(ctx, "1", ParseClickTarget(target)))
		}
		assert.Zero(t, calls)
	})

	t.Run("unknown row", func(t *testing.T) {
		tbl := New(Config{Columns: orgColumns(), Callbacks: Callbacks{OnView: noop}}, orgRecords(), NewState(""))
		assert.ErrorIs(t, tbl.RowClick(ctx, "99", TargetCell), ErrRowNotFound)
	})

	t.Run("row filtered out of view", func(t *testing.T) {
		tbl := New(Config{Columns: orgColumns(), Callbacks: Callbacks{OnView: noop}}, orgRecords(), NewState("").WithSearch("zen"))
		assert.ErrorIs(t, tbl.RowClick(ctx, "1", TargetCell), ErrRowNotFound)
	})
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()
	var deleted Record
	tbl := New(Config{Columns: orgColumns(), Callbacks: Callbacks{
		OnView:   noop,
		OnDelete: func(_ context.Context, r Record) error { deleted = r; return nil },
	}}, orgRecords(), NewState(""))

	require.NoError(t, tbl.Invoke(ctx, ActionDelete, "2"))
	assert.Equal(t, Record{"id": 2, "name": "Zenith", "status": "inactive"}, deleted)

	assert.ErrorIs(t, tbl.Invoke(ctx, ActionEdit, "2"), ErrActionUnavailable)
	assert.ErrorIs(t, tbl.Invoke(ctx, Action("publish"), "2"), ErrActionUnavailable)
	assert.ErrorIs(t, tbl.Invoke(ctx, ActionView, "7"), ErrRowNotFound)
}

func TestInvokeViewWithoutButton(t *testing.T) {
	var viewed Record
	tbl := New(Config{Columns: orgColumns(), Callbacks: Callbacks{
		OnView:   func(_ context.Context, r Record) error { viewed = r; return nil },
		OnEdit:   noop,
		OnDelete: noop,
	}}, orgRecords(), NewState(""))

	assert.Equal(t, []Action{ActionEdit, ActionDelete}, tbl.Actions())
	require.NoError(t, tbl.Invoke(context.Background(), ActionView, "1"))
	assert.Equal(t, "Acme", viewed["name"])
}

func TestToggleExpand(t *testing.T) {
	recs := []Record{{"id": "c1", "name": "Safety"}, {"id": "c2", "name": "Medical"}}

	flat := New(Config{Columns: orgColumns()}, recs, NewState(""))
	flat.ToggleExpand("c1")
	assert.Empty(t, flat.State().Expanded)

	tbl := New(Config{Columns: orgColumns(), Expandable: true}, recs, NewState(""))
	tbl.ToggleExpand("c2")
	tbl.SortBy("name")

	vm := tbl.View()
	require.Len(t, vm.Rows, 2)
	assert.Equal(t, "c2", vm.Rows[0].ID)
	assert.True(t, vm.Rows[0].Expanded, "expansion survives sorting")
	assert.False(t, vm.Rows[1].Expanded)

	tbl.ToggleExpand("c2")
	assert.False(t, tbl.State().IsExpanded("c2"))
}

func TestRowsWithoutIDKeepSourcePosition(t *testing.T) {
	recs := []Record{{"name": "Zulu"}, {"name": "Alpha"}, {"name": "Mike"}}
	var viewed Record
	tbl := New(Config{
		Columns:    orgColumns(),
		Expandable: true,
		Callbacks:  Callbacks{OnView: func(_ context.Context, r Record) error { viewed = r; return nil }},
	}, recs, NewState(""))

	tbl.ToggleExpand("0")
	tbl.SortBy("name")

	vm := tbl.View()
	require.Len(t, vm.Rows, 3)
	assert.Equal(t, []string{"1", "2", "0"}, []string{vm.Rows[0].ID, vm.Rows[1].ID, vm.Rows[2].ID})
	assert.Equal(t, "Zulu", vm.Rows[2].Record["name"])
	assert.True(t, vm.Rows[2].Expanded, "expansion follows the record, not the position")
	assert.False(t, vm.Rows[0].Expanded)

	require.NoError(t, tbl.Invoke(context.Background(), ActionView, "0"))
	assert.Equal(t, "Zulu", viewed["name"])
}
