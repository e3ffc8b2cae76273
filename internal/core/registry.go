package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

var (
	registry   = make(map[string]ScreenDefinition)
	registryMu sync.RWMutex
)

// Register adds a screen definition to the registry.
// Panics if a screen with the same key is already registered.
func Register(def ScreenDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("screen already registered: %s", def.Info.Key))
	}

	// Populate Columns from Fields if not set
	if len(def.Columns) == 0 && len(def.Fields) > 0 {
		def.Columns = make([]datatable.Column, len(def.Fields))
		for i, f := range def.Fields {
			def.Columns[i] = datatable.Column{Header: f.DisplayLabel(), Accessor: f.Name}
		}
	}

	if len(def.SearchFields) == 0 {
		for _, c := range def.Columns {
			def.SearchFields = append(def.SearchFields, c.Accessor)
		}
	}

	if def.DefaultFilter == "" {
		def.DefaultFilter = datatable.AllFilter
	}

	registry[def.Info.Key] = def
}

// Get returns a screen definition by key.
// Returns false if not found.
func Get(key string) (ScreenDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered screen definitions.
// Sorted by group then by key for consistent ordering.
func All() []ScreenDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ScreenDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ByGroup returns all screen definitions for a specific group, sorted by key.
func ByGroup(group string) []ScreenDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []ScreenDefinition
	for _, def := range registry {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Groups returns all unique group names, sorted alphabetically.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// ScreenCount returns the number of registered screens.
func ScreenCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered screens.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]ScreenDefinition)
}
