package datatable

import (
	"context"
	"errors"
)

// Action is a row-level button.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Label returns the button text.
func (a Action) Label() string {
	switch a {
	case ActionView:
		return "View"
	case ActionEdit:
		return "Edit"
	case ActionDelete:
		return "Delete"
	}
	return string(a)
}

// RowCallback receives the full record a row action was taken on.
type RowCallback func(ctx context.Context, rec Record) error

// Callbacks are the row-level hooks a screen wires into its table. The table
// never mutates records itself.
type Callbacks struct {
	OnView     RowCallback
	OnEdit     RowCallback
	OnDelete   RowCallback
	OnRowClick RowCallback
}

var (
	// ErrRowNotFound is returned when an event names a row not in the view.
	ErrRowNotFound = errors.New("row not found in table view")

	// ErrActionUnavailable is returned for an action with no callback wired.
	ErrActionUnavailable = errors.New("row action not available")
)

// Actions returns the buttons shown on every row, left to right.
//
// At most two buttons are ever shown: Edit and Delete win when both are
// wired; otherwise View is paired with whichever of them exists.
func (c Callbacks) Actions() []Action {
	edit, del, view := c.OnEdit != nil, c.OnDelete != nil, c.OnView != nil
	switch {
	case edit && del:
		return []Action{ActionEdit, ActionDelete}
	case edit && view:
		return []Action{ActionView, ActionEdit}
	case del && view:
		return []Action{ActionView, ActionDelete}
	case edit:
		return []Action{ActionEdit}
	case del:
		return []Action{ActionDelete}
	case view:
		return []Action{ActionView}
	}
	return nil
}

func (c Callbacks) callback(a Action) RowCallback {
	switch a {
	case ActionView:
		return c.OnView
	case ActionEdit:
		return c.OnEdit
	case ActionDelete:
		return c.OnDelete
	}
	return nil
}

// ClickTarget classifies what a row click landed on.
type ClickTarget int

const (
	// TargetCell is plain row content.
	TargetCell ClickTarget = iota
	// TargetButton is a button inside the row.
	TargetButton
	// TargetLink is an anchor inside the row.
	TargetLink
	// TargetClickable is an element flagged as independently clickable.
	TargetClickable
	// TargetActions is anywhere in the actions cell.
	TargetActions
)

// ParseClickTarget maps the wire names used by the browser to targets.
func ParseClickTarget(s string) ClickTarget {
	switch s {
	case "button":
		return TargetButton
	case "link":
		return TargetLink
	case "clickable":
		return TargetClickable
	case "actions":
		return TargetActions
	}
	return TargetCell
}
