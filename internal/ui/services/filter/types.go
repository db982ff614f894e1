package filter

// State holds filter state
type State struct {
	Query  string
	Active bool
}

// Notification names
const (
	EventFilterChanged = "filterchanged"
	EventFilterCleared = "filtercleared"
)

// FilterChangedEvent is emitted whenever the active filter query changes
type FilterChangedEvent struct {
	Query string
}

func (e FilterChangedEvent) Name() string { return EventFilterChanged }

// FilterClearedEvent is emitted when filtering is turned off
type FilterClearedEvent struct{}

func (e FilterClearedEvent) Name() string { return EventFilterCleared }
