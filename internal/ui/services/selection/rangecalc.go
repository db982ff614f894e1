package selection

import (
	"selex/internal/domain"
)

// rangeBetween returns the inclusive sequence of traversable items from
// anchor to target, ordered anchor-first. Either endpoint may precede the
// other in traversal order; the walk tries forward first and falls back
// to walking backward. Operates purely over the traversal order exposed
// by the data source, never over visual position.
func (s *Service) rangeBetween(anchor, target *domain.Node) []*domain.Node {
	if anchor == nil || target == nil {
		return nil
	}
	if anchor == target {
		return []*domain.Node{anchor}
	}

	if rng := s.walkRange(anchor, target, 1); rng != nil {
		return rng
	}
	if rng := s.walkRange(anchor, target, -1); rng != nil {
		return rng
	}
	// Endpoints not connected in traversal (target filtered out or
	// detached); fall back to the anchor alone
	return []*domain.Node{anchor}
}

func (s *Service) walkRange(from, to *domain.Node, dir int) []*domain.Node {
	rng := []*domain.Node{from}
	for n := s.data.NextTraversable(from, dir); n != nil; n = s.data.NextTraversable(n, dir) {
		rng = append(rng, n)
		if n == to {
			return rng
		}
	}
	return nil
}
