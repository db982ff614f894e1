package events

// Event is implemented by all selection notifications
type Event interface {
	Name() string
}

// Handler receives a notification. Returning false from a handler of a
// cancellable pre-notification vetoes the operation; the return value is
// ignored for post-notifications.
type Handler func(Event) bool

// EventBus is a simple interface for emitting notifications
type EventBus interface {
	Emit(event Event) bool
	Subscribe(name string, handler Handler) func()
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Emit(event Event) bool                         { return true }
func (n *NullBus) Subscribe(name string, handler Handler) func() { return func() {} }
