package selection

// SetTempSelected is the pointer-interaction entry point. Unlike Select it
// must disambiguate a single click from the start of a drag: in buffered
// mode the clicked item only becomes a tentative selection, committed by
// a short dwell timer (or an explicit SelectTemp on pointer-up).
func (s *Service) SetTempSelected(target interface{}, ctrl, shift bool) (bool, error) {
	if !s.enabled || !s.opts.Selectable {
		return false, nil
	}
	s.dwell.Cancel()

	if !s.opts.Multiselect {
		ctrl, shift = false, false
	} else if s.opts.CtrlSelect && !shift {
		// Sticky ctrl-mode; shift still takes precedence
		ctrl = true
	}

	if ctrl {
		// Commit whatever is tentative, then only move focus so the user
		// can reposition without altering the multi-selection
		s.commitTemp()
		s.SetIndicator(target)
		return true, nil
	}

	if shift {
		s.commitTemp()
		return s.Select(target, Request{Shift: true})
	}

	if !s.opts.BufferSelect || len(s.state.Items) > 1 {
		return s.Select(target, Request{})
	}

	// Buffered mode: show the item as selected without touching the real
	// selection list, then commit after the dwell delay
	node, handle, stringMiss, err := s.resolve(target)
	if err != nil {
		return false, err
	}
	if stringMiss || node == nil {
		return false, ErrUnresolvable
	}

	prev := s.temp
	if prev == nil {
		prev = s.state.Selected
	}
	if prev != nil && prev != node {
		if h := s.view.VisualFor(prev); h != nil {
			s.view.ApplyDeselected(h)
			s.view.ApplyUnindicated(h)
		}
	}
	if handle != nil {
		s.view.ApplySelected(handle)
		s.view.ApplyIndicated(handle)
	}
	s.temp = node

	s.dwell.Arm(DwellDelay, func() {
		s.commitTemp()
	})
	return true, nil
}

// SelectTemp force-commits a pending tentative selection (pointer-up,
// drag start)
func (s *Service) SelectTemp() {
	s.dwell.Cancel()
	s.commitTemp()
}

func (s *Service) commitTemp() {
	node := s.temp
	s.temp = nil
	if node == nil {
		return
	}
	s.Select(node, Request{})
}
