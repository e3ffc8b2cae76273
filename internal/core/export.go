package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

// exportFlushInterval is the number of rows written between flushes.
const exportFlushInterval = 1000

// ExportRows loads a screen and returns the rows visible in state, in table
// order. A failed list call is an error here: an export never silently
// produces an empty file.
func (s *Service) ExportRows(ctx context.Context, key string, state datatable.State) (ScreenDefinition, []datatable.Record, error) {
	data, err := s.LoadScreen(ctx, key)
	if err != nil {
		return ScreenDefinition{}, nil, err
	}
	if data.LoadErr != nil {
		return ScreenDefinition{}, nil, fmt.Errorf("list %s: %w", key, data.LoadErr)
	}

	def := data.Definition
	if state.Filter == "" {
		state.Filter = datatable.NewState(def.DefaultFilter).Filter
	}
	rows := datatable.Apply(data.Records, def.Columns, datatable.Query{
		Search:  state.Search,
		Filter:  state.Filter,
		Filters: def.Filters,
		Sort:    state.Sort,
	})
	return def, rows, nil
}

// WriteCSV writes a header of column titles followed by one line per row,
// using each column's plain-text rendering.
func WriteCSV(w io.Writer, columns []datatable.Column, rows []datatable.Record) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for n, row := range rows {
		for i, col := range columns {
			record[i] = datatable.CellText(col, row)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
		if (n+1)%exportFlushInterval == 0 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if f, ok := w.(interface{ Flush() }); ok {
				f.Flush()
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
