package query

import (
	"selex/internal/domain"
)

// Row is one visible line of the rendered tree
type Row struct {
	Node  *domain.Node
	Depth int
}

// EventRowsChanged is the notification name for row list rebuilds
const EventRowsChanged = "rowschanged"

// RowsChangedEvent is published when the visible row list was rebuilt
type RowsChangedEvent struct {
	Count int
}

func (e RowsChangedEvent) Name() string { return EventRowsChanged }
