package events

import (
	"sync"
)

// Bus is a synchronous event bus for UI services. Dispatch happens on the
// caller's goroutine so handlers of pre-notifications run before the
// operation mutates state and can veto it, and handlers of
// post-notifications observe the already-updated state. Handlers may
// re-enter the emitting service.
type Bus struct {
	mu        sync.RWMutex
	seq       int
	listeners map[string][]listener
}

// listener pairs a handler with its subscription id, so unsubscribing
// stays correct after earlier subscribers for the same name are removed
type listener struct {
	id      int
	handler Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]listener),
	}
}

// Subscribe registers a listener for an event name and returns an
// unsubscribe function
func (b *Bus) Subscribe(name string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	id := b.seq
	b.listeners[name] = append(b.listeners[name], listener{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		entries := b.listeners[name]
		for i, l := range entries {
			if l.id == id {
				b.listeners[name] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers an event to all listeners in subscription order. The first
// handler returning false stops dispatch and Emit returns false; emitters
// treat that as a veto for cancellable notifications.
func (b *Bus) Emit(event Event) bool {
	b.mu.RLock()
	entries := b.listeners[event.Name()]
	// Copy so handlers can subscribe/unsubscribe while we dispatch
	handlers := make([]Handler, len(entries))
	for i, l := range entries {
		handlers[i] = l.handler
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		if !handler(event) {
			return false
		}
	}
	return true
}
