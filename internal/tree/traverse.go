package tree

import (
	"selex/internal/domain"
)

// ResolveID looks a node up by its ID
func (s *Store) ResolveID(id string) *domain.Node {
	if id == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// ResolveValue finds the first traversable node whose comparison value
// matches. Returns ErrNoValueRule when no value rule is configured.
func (s *Store) ResolveValue(value string) (*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.valueFn == nil {
		return nil, ErrNoValueRule
	}
	for _, n := range s.traversalLocked() {
		if s.valueFn(n) == value {
			return n, nil
		}
	}
	return nil, nil
}

// IsDescendant reports whether the node is still attached under the
// current root
func (s *Store) IsDescendant(n *domain.Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isDescendantLocked(n)
}

func (s *Store) isDescendantLocked(n *domain.Node) bool {
	if n == nil || s.root == nil {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p == s.root {
			return true
		}
	}
	return false
}

// FirstTraversable returns the first node in traversal order (nil if the
// tree is empty or fully filtered out)
func (s *Store) FirstTraversable() *domain.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := s.traversalLocked()
	if len(order) == 0 {
		return nil
	}
	return order[0]
}

// NextTraversable returns the neighbor of a node in traversal order.
// dir is +1 for the next node, -1 for the previous one; nil means the
// node is at the edge of the traversal or not part of it.
func (s *Store) NextTraversable(n *domain.Node, dir int) *domain.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := s.traversalLocked()
	for i, c := range order {
		if c == n {
			j := i + dir
			if j < 0 || j >= len(order) {
				return nil
			}
			return order[j]
		}
	}
	return nil
}

// TraversableNodes returns the full traversal order of the attached tree
func (s *Store) TraversableNodes() []*domain.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.traversalLocked()
}

// traversalLocked flattens the tree in preorder, keeping only nodes that
// pass the traversal filter. Separators and the root itself never appear.
func (s *Store) traversalLocked() []*domain.Node {
	var order []*domain.Node
	var walk func(n *domain.Node)
	walk = func(n *domain.Node) {
		for _, c := range n.Children {
			if c.Kind != domain.KindSeparator && s.passesLocked(c) {
				order = append(order, c)
			}
			walk(c)
		}
	}
	if s.root != nil {
		walk(s.root)
	}
	return order
}

func (s *Store) passesLocked(n *domain.Node) bool {
	if s.filterFn == nil {
		return true
	}
	return s.filterFn(n)
}
