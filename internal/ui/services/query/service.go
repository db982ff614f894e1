package query

import (
	"selex/internal/domain"
	"selex/internal/tree"
	"selex/internal/ui/services/events"
)

// Service answers questions about the visible shape of the tree: which
// rows are on screen in which order, and how indexes map back to nodes.
// It flattens the attached tree honoring expansion state and the active
// traversal filter.
type Service struct {
	store    *tree.Store
	bus      events.EventBus
	rows     []Row
	expanded map[*domain.Node]bool
}

// NewService creates a new query service
func NewService(store *tree.Store, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		store:    store,
		bus:      bus,
		expanded: make(map[*domain.Node]bool),
	}
}

// Rebuild recomputes the visible row list from the current tree state
func (s *Service) Rebuild() {
	s.rows = s.rows[:0]
	root := s.store.Root()
	if root == nil {
		s.bus.Emit(RowsChangedEvent{Count: 0})
		return
	}

	traversable := make(map[*domain.Node]bool)
	for _, n := range s.store.TraversableNodes() {
		traversable[n] = true
	}

	var walk func(n *domain.Node, depth int)
	walk = func(n *domain.Node, depth int) {
		for _, c := range n.Children {
			if c.Kind == domain.KindSeparator {
				continue
			}
			visible := traversable[c] || s.hasTraversableDescendant(c, traversable)
			if !visible {
				continue
			}
			s.rows = append(s.rows, Row{Node: c, Depth: depth})
			if c.IsContainer() && s.IsExpanded(c) {
				walk(c, depth+1)
			}
		}
	}
	walk(root, 0)

	s.bus.Emit(RowsChangedEvent{Count: len(s.rows)})
}

// hasTraversableDescendant keeps branch rows visible while any of their
// children still match the filter
func (s *Service) hasTraversableDescendant(n *domain.Node, traversable map[*domain.Node]bool) bool {
	for _, c := range n.Children {
		if traversable[c] || s.hasTraversableDescendant(c, traversable) {
			return true
		}
	}
	return false
}

// Rows returns the current visible rows
func (s *Service) Rows() []Row {
	return s.rows
}

// Len returns the number of visible rows
func (s *Service) Len() int {
	return len(s.rows)
}

// RowAt returns the row at a visible index (nil node if out of range)
func (s *Service) RowAt(index int) Row {
	if index < 0 || index >= len(s.rows) {
		return Row{}
	}
	return s.rows[index]
}

// NodeAt returns the node at a visible index (nil if out of range)
func (s *Service) NodeAt(index int) *domain.Node {
	return s.RowAt(index).Node
}

// IndexOf returns the visible index of a node (-1 when not visible)
func (s *Service) IndexOf(n *domain.Node) int {
	for i, r := range s.rows {
		if r.Node == n {
			return i
		}
	}
	return -1
}

// IsExpanded reports whether a container row shows its children.
// Containers start expanded.
func (s *Service) IsExpanded(n *domain.Node) bool {
	state, ok := s.expanded[n]
	if !ok {
		return true
	}
	return state
}

// ToggleExpanded flips a container row between expanded and collapsed
func (s *Service) ToggleExpanded(n *domain.Node) {
	if n == nil || !n.IsContainer() {
		return
	}
	s.expanded[n] = !s.IsExpanded(n)
	s.Rebuild()
}
