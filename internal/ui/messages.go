package ui

import (
	"selex/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// deferredMsg carries a deferred engine callback back onto the update
// loop, so dwell and delayed-select timers never mutate state from a
// timer goroutine
type deferredMsg struct {
	fn func()
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
