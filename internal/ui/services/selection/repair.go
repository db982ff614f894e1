package selection

import (
	"selex/internal/domain"
)

// CheckSelection repairs selection state after the underlying data tree
// changed. The data-binding layer must call it after every structural
// mutation. hint points near the mutation site and is preferred as the
// new indicator position; it may be nil.
//
// Afterwards every member of the selection list is a descendant of the
// current root, and the indicator is either nil or a descendant too.
func (s *Service) CheckSelection(hint *domain.Node) {
	if s.data == nil {
		return
	}
	if hint != nil && !s.data.IsDescendant(hint) {
		hint = nil
	}

	var survivors []*domain.Node
	for _, it := range s.state.Items {
		if s.data.IsDescendant(it) {
			survivors = append(survivors, it)
		}
	}
	pruned := len(survivors) < len(s.state.Items)

	// Multi-selection path: reapply the surviving members
	if len(survivors) > 1 {
		if pruned {
			preferred := s.state.Selected
			if preferred != nil && !s.data.IsDescendant(preferred) {
				preferred = nil
			}
			targets := make([]interface{}, len(survivors))
			for i, n := range survivors {
				targets[i] = n
			}
			s.SelectList(targets, true, preferred)
		}
		if s.state.Indicator != nil && !s.data.IsDescendant(s.state.Indicator) {
			next := hint
			if next == nil {
				next = s.state.Selected
			}
			s.setIndicator(next, nil, false)
		}
		return
	}

	// Zero or one survivor. Stale members drop before the primary policy
	// runs, whatever the primary looks like; the visuals of removed rows
	// are torn down by the view layer.
	if pruned {
		s.setItems(survivors)
		s.repairPrimary(s.firstOf(survivors), hint)
		return
	}
	s.repairPrimary(nil, hint)
}

// repairPrimary handles the single-selection repair policy. survivor is
// the sole remaining member of a pruned multi-selection (nil otherwise).
func (s *Service) repairPrimary(survivor, hint *domain.Node) {
	var candidate *domain.Node
	hadSelection := s.state.Selected != nil || len(s.state.Items) > 0

	switch {
	case survivor != nil:
		candidate = survivor
	case s.state.Selected != nil && !s.data.IsDescendant(s.state.Selected):
		candidate = s.data.FirstTraversable()
	case s.state.Selected != nil:
		// Primary is fine; only the indicator may be stale
		if s.state.Indicator != nil && !s.data.IsDescendant(s.state.Indicator) {
			s.setIndicator(s.state.Selected, nil, false)
		}
		return
	case s.state.Indicator != nil && !s.data.IsDescendant(s.state.Indicator):
		candidate = s.data.FirstTraversable()
	case s.state.Indicator != nil:
		// Nothing selected, indicator still valid: nothing to repair
		return
	default:
		// Nothing selected at all
		candidate = s.data.FirstTraversable()
	}

	if candidate == nil {
		// No repair target and the state is stale: clear what is left
		if hadSelection {
			s.ClearSelection(false, false)
		}
		if s.state.Indicator != nil && !s.data.IsDescendant(s.state.Indicator) {
			s.setIndicator(nil, nil, false)
		}
		return
	}

	if s.opts.Autoselect {
		s.Select(candidate, Request{Force: true})
		return
	}

	// Without auto-select the repaired item only receives focus
	if !s.opts.CtrlSelect {
		s.ClearSelection(false, true)
	} else {
		// Sticky ctrl-mode keeps the surviving selection, but stale
		// entries still have to go
		var keep []*domain.Node
		for _, it := range s.state.Items {
			if s.data.IsDescendant(it) {
				keep = append(keep, it)
			}
		}
		s.setItems(keep)
		if s.state.Selected != nil && !s.data.IsDescendant(s.state.Selected) {
			if len(keep) > 0 {
				s.state.Selected = keep[0]
			} else {
				s.state.Selected = nil
			}
		}
	}
	next := hint
	if next == nil {
		next = candidate
	}
	s.setIndicator(next, nil, false)
}

func (s *Service) firstOf(items []*domain.Node) *domain.Node {
	if len(items) == 0 {
		return nil
	}
	return items[0]
}
