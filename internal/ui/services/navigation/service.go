package navigation

import (
	"selex/internal/ui/services/events"
)

// Service handles all navigation logic: the cursor position within the
// visible rows and the viewport window that keeps it on screen
type Service struct {
	state   *State
	bus     events.EventBus
	queryFn func() int // Function to get max index from query service
}

// NewService creates a new navigation service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{
			Cursor:         0,
			ViewportOffset: 0,
			ViewportHeight: 20, // Default, will be updated
			MaxIndex:       0,
		},
		bus: bus,
	}
}

// SetQueryFunction sets the function to query max index
func (s *Service) SetQueryFunction(fn func() int) {
	s.queryFn = fn
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height
func (s *Service) SetViewportHeight(height int) {
	// Reserve space for header, status bar, help
	effectiveHeight := height - 6
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}
	s.state.ViewportHeight = effectiveHeight
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	s.refreshMaxIndex()
	oldCursor := s.state.Cursor

	switch direction {
	case DirectionUp:
		if s.state.Cursor > 0 {
			s.state.Cursor--
		}
	case DirectionDown:
		if s.state.Cursor < s.state.MaxIndex {
			s.state.Cursor++
		}
	case DirectionPageUp:
		s.state.Cursor -= s.state.ViewportHeight
	case DirectionPageDown:
		s.state.Cursor += s.state.ViewportHeight
	case DirectionHome:
		s.state.Cursor = 0
	case DirectionEnd:
		s.state.Cursor = s.state.MaxIndex
	}

	s.state.Cursor = s.clampIndex(s.state.Cursor)
	s.ensureVisible()

	if oldCursor != s.state.Cursor {
		s.bus.Emit(CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.refreshMaxIndex()

	oldCursor := s.state.Cursor
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()

	if oldCursor != s.state.Cursor {
		s.bus.Emit(CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}

// IndexAtScreenLine maps a viewport line back to a row index (-1 when the
// line is past the end of the list)
func (s *Service) IndexAtScreenLine(line int) int {
	s.refreshMaxIndex()
	index := s.state.ViewportOffset + line
	if index < 0 || index > s.state.MaxIndex {
		return -1
	}
	return index
}

func (s *Service) refreshMaxIndex() {
	if s.queryFn != nil {
		s.state.MaxIndex = s.queryFn()
	}
}

func (s *Service) clampIndex(index int) int {
	if index > s.state.MaxIndex {
		index = s.state.MaxIndex
	}
	if index < 0 {
		index = 0
	}
	return index
}

// ensureVisible scrolls the viewport so the cursor stays on screen
func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	}
	if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
}
