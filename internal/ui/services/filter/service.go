package filter

import (
	"strings"

	"selex/internal/domain"
	"selex/internal/tree"
	"selex/internal/ui/services/events"
)

// Service handles live filtering. The active query becomes the tree's
// traversal filter, so filtered-out nodes disappear from traversal and
// selection repair prunes them from any active selection.
type Service struct {
	state *State
	store *tree.Store
	bus   events.EventBus
}

// NewService creates a new filter service
func NewService(store *tree.Store, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{},
		store: store,
		bus:   bus,
	}
}

// Query returns the current filter query
func (s *Service) Query() string {
	return s.state.Query
}

// IsActive reports whether a filter is applied
func (s *Service) IsActive() bool {
	return s.state.Active
}

// Apply installs a new filter query. An empty query clears the filter.
func (s *Service) Apply(query string) {
	if query == s.state.Query && s.state.Active == (query != "") {
		return // Same filter
	}

	s.state.Query = query
	if query == "" {
		s.Clear()
		return
	}

	s.state.Active = true
	needle := strings.ToLower(query)
	s.store.SetFilter(func(n *domain.Node) bool {
		return strings.Contains(strings.ToLower(n.Title), needle)
	})
	s.bus.Emit(FilterChangedEvent{Query: query})
}

// Clear removes the filter
func (s *Service) Clear() {
	s.state.Query = ""
	if !s.state.Active {
		return
	}
	s.state.Active = false
	s.store.SetFilter(nil)
	s.bus.Emit(FilterClearedEvent{})
}
