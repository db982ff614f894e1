package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"selex/internal/ui/services/events"
)

func newNav(maxIndex int) *Service {
	s := NewService(events.NewBus())
	s.SetQueryFunction(func() int { return maxIndex })
	return s
}

func TestNavigateUpDownClamps(t *testing.T) {
	s := newNav(4)

	s.Navigate(DirectionUp)
	assert.Equal(t, 0, s.GetCursor())

	for i := 0; i < 10; i++ {
		s.Navigate(DirectionDown)
	}
	assert.Equal(t, 4, s.GetCursor())
}

func TestNavigateHomeEnd(t *testing.T) {
	s := newNav(9)

	s.Navigate(DirectionEnd)
	assert.Equal(t, 9, s.GetCursor())

	s.Navigate(DirectionHome)
	assert.Equal(t, 0, s.GetCursor())
}

func TestPageMovementUsesViewportHeight(t *testing.T) {
	s := newNav(50)
	s.SetViewportHeight(16) // effective height 10

	s.Navigate(DirectionPageDown)
	assert.Equal(t, 10, s.GetCursor())

	s.Navigate(DirectionPageUp)
	assert.Equal(t, 0, s.GetCursor())
}

func TestMoveToIndexClamps(t *testing.T) {
	s := newNav(4)

	s.MoveToIndex(99)
	assert.Equal(t, 4, s.GetCursor())

	s.MoveToIndex(-3)
	assert.Equal(t, 0, s.GetCursor())
}

func TestEmptyListNeverGoesNegative(t *testing.T) {
	s := newNav(0)
	s.Navigate(DirectionEnd)
	assert.Equal(t, 0, s.GetCursor())
	s.MoveToIndex(5)
	assert.Equal(t, 0, s.GetCursor())
}

func TestViewportFollowsCursor(t *testing.T) {
	s := newNav(50)
	s.SetViewportHeight(16) // effective height 10

	s.MoveToIndex(25)
	offset := s.GetViewportOffset()
	assert.Equal(t, 16, offset)

	s.MoveToIndex(3)
	assert.Equal(t, 3, s.GetViewportOffset())
}

func TestIndexAtScreenLine(t *testing.T) {
	s := newNav(9)
	s.SetViewportHeight(16)
	s.MoveToIndex(0)

	assert.Equal(t, 0, s.IndexAtScreenLine(0))
	assert.Equal(t, 5, s.IndexAtScreenLine(5))
	assert.Equal(t, -1, s.IndexAtScreenLine(50))
	assert.Equal(t, -1, s.IndexAtScreenLine(-1))
}

func TestCursorMovedEmittedOnlyOnChange(t *testing.T) {
	bus := events.NewBus()
	moved := 0
	bus.Subscribe("cursormoved", func(events.Event) bool {
		moved++
		return true
	})

	s := NewService(bus)
	s.SetQueryFunction(func() int { return 4 })

	s.Navigate(DirectionDown)
	s.Navigate(DirectionUp)
	s.Navigate(DirectionUp) // already at the top
	assert.Equal(t, 2, moved)
}
