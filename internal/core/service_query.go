package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/JonMunkholm/accreditation-console/internal/pagination"
)

// ScreenData is one loaded collection ready for the table engine.
type ScreenData struct {
	Definition ScreenDefinition
	Records    []datatable.Record
	Pagination pagination.State
	// LoadErr is set when the list call failed. Records is then empty and
	// the screen shows its empty state.
	LoadErr error
}

// LoadScreen fetches a screen's collection. Only an unknown screen is an
// error; API failures are logged and reported through ScreenData.LoadErr.
func (s *Service) LoadScreen(ctx context.Context, key string) (*ScreenData, error) {
	def, err := s.Screen(key)
	if err != nil {
		return nil, err
	}

	data := &ScreenData{
		Definition: def,
		Records:    []datatable.Record{},
		Pagination: pagination.New(s.pageSize),
	}

	logger := logging.WithFields(ctx, "screen", key)

	ns, err := s.namespace(def)
	if err != nil {
		logger.Error("resolve namespace", "error", err)
		data.LoadErr = err
		return data, nil
	}

	env, err := ns.List(ctx, def.Info.Resource, def.Info.EntityKey, api.Params{
		Page:    1,
		PerPage: s.pageSize,
		Extra:   def.ListParams,
	})
	if err != nil {
		logger.Error("load screen", "error", err)
		data.LoadErr = err
		return data, nil
	}

	data.Records = datatable.AttachSearchText(datatable.Records(env.Items), def.SearchFields...)
	data.Pagination.UpdateFromResponse(env)

	if data.Pagination.TotalPages > 1 {
		// Only the first page is searched, filtered and sorted.
		logger.Warn("screen list truncated",
			"loaded", len(data.Records),
			"position", data.Pagination.Summary(),
		)
	}
	logger.Debug("screen loaded",
		"records", len(data.Records),
		"shape", env.Kind.String(),
		"position", data.Pagination.Summary(),
	)
	return data, nil
}

// Detail fetches the full record behind a list row. When the API no longer
// has it, the summary row is returned instead.
func (s *Service) Detail(ctx context.Context, key, id string, summary datatable.Record) (datatable.Record, error) {
	def, err := s.Screen(key)
	if err != nil {
		return nil, err
	}
	ns, err := s.namespace(def)
	if err != nil {
		return nil, err
	}

	rec, err := ns.Get(ctx, def.Info.Resource, id)
	if err != nil {
		if api.IsNotFound(err) && summary != nil {
			logging.WithFields(ctx, "screen", key, "id", id).
				Info("detail not found, showing list row")
			return summary, nil
		}
		return nil, fmt.Errorf("get %s %s: %w", def.Info.Resource, id, err)
	}
	return datatable.Record(rec), nil
}
