package core

import (
	"fmt"
	"strings"
	"time"
)

// WhereBuilder assembles a parameterized WHERE clause.
// Conditions with empty values are skipped.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder creates a builder whose first placeholder is $1.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

// Add appends "column = $n" unless value is empty.
func (wb *WhereBuilder) Add(column, value string) {
	if value == "" {
		return
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s = $%d", column, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
}

// AddTimestampRange appends "column >= $n AND column < $n+1".
// Zero bounds are skipped.
func (wb *WhereBuilder) AddTimestampRange(column string, start, end time.Time) {
	if !start.IsZero() {
		wb.conditions = append(wb.conditions, fmt.Sprintf("%s >= $%d", column, wb.argIndex))
		wb.args = append(wb.args, start)
		wb.argIndex++
	}
	if !end.IsZero() {
		wb.conditions = append(wb.conditions, fmt.Sprintf("%s < $%d", column, wb.argIndex))
		wb.args = append(wb.args, end)
		wb.argIndex++
	}
}

// NextArgIndex returns the placeholder number the next argument would take.
func (wb *WhereBuilder) NextArgIndex() int {
	return wb.argIndex
}

// Build returns the clause (with a leading space) and its arguments.
// Returns "" and nil when no conditions were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}
