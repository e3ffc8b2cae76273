package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/api"
)

// DefaultListPageSize is the page size of list calls. Screens fetch one
// large page and search, filter and sort it locally.
const DefaultListPageSize = 1000

// MutationTimeout bounds a single create/update/delete/approve/reject call.
var MutationTimeout = 30 * time.Second

var (
	// ErrScreenNotFound is returned for an unregistered screen key.
	ErrScreenNotFound = errors.New("screen not found")
	// ErrActionNotAllowed is returned when a screen does not offer the
	// requested workflow.
	ErrActionNotAllowed = errors.New("action not allowed on this screen")
)

// Service provides the console's business logic on top of the marketplace
// API and the audit store.
type Service struct {
	client   *api.Client
	audit    AuditStore
	pageSize int
}

// NewService creates a new Service instance. A nil audit store discards
// entries; pageSize <= 0 uses DefaultListPageSize.
func NewService(client *api.Client, audit AuditStore, pageSize int) *Service {
	if audit == nil {
		audit = NopAuditStore{}
	}
	if pageSize <= 0 {
		pageSize = DefaultListPageSize
	}
	return &Service{client: client, audit: audit, pageSize: pageSize}
}

// Audit returns the audit store.
func (s *Service) Audit() AuditStore {
	return s.audit
}

// ListScreens returns information about all registered screens.
func (s *Service) ListScreens() []ScreenInfo {
	defs := All()
	infos := make([]ScreenInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListScreensByGroup returns screens organized by navigation group.
func (s *Service) ListScreensByGroup() map[string][]ScreenInfo {
	result := make(map[string][]ScreenInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// Screen returns the definition registered under key.
func (s *Service) Screen(key string) (ScreenDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return ScreenDefinition{}, fmt.Errorf("%w: %s", ErrScreenNotFound, key)
	}
	return def, nil
}

// namespace resolves the API namespace a screen talks to.
func (s *Service) namespace(def ScreenDefinition) (api.Namespace, error) {
	return s.client.Namespace(def.Info.Namespace)
}
