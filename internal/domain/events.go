package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventTreeLoaded        EventType = "TreeLoaded"
	EventNodesChanged      EventType = "NodesChanged"
	EventNodeAttrChanged   EventType = "NodeAttrChanged"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
	EventConfigChanged     EventType = "ConfigChanged"
	EventSelectionMirrored EventType = "SelectionMirrored"
	EventAppReady          EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// TreeLoadedEvent is emitted when a data tree has been loaded and attached
type TreeLoadedEvent struct {
	Stats TreeStats
}

func (e TreeLoadedEvent) Type() EventType { return EventTreeLoaded }

// NodesChangedEvent is emitted after a structural mutation of the tree
// (remove, reparent). Hint points near the mutation site so selection
// repair can re-anchor there; it may be nil.
type NodesChangedEvent struct {
	Hint    *Node
	Removed []*Node
}

func (e NodesChangedEvent) Type() EventType { return EventNodesChanged }

// NodeAttrChangedEvent is emitted when a node attribute changes
type NodeAttrChangedEvent struct {
	Node *Node
	Attr string
}

func (e NodeAttrChangedEvent) Type() EventType { return EventNodeAttrChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct{}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// SelectionMirroredEvent is emitted when the offline mirror finished
// persisting a selection snapshot
type SelectionMirroredEvent struct {
	Count int
}

func (e SelectionMirroredEvent) Type() EventType { return EventSelectionMirrored }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	HasExistingConfig bool
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
