package selection

import (
	"errors"

	"selex/internal/domain"
)

// ErrUnresolvable is returned when Select is handed something that cannot
// be resolved to any node: not a node, not a known visual handle, not a
// value with a matching node.
var ErrUnresolvable = errors.New("selection: target does not resolve to a node")

// Handle is an opaque visual handle owned by the view layer
type Handle interface{}

// DataSource is the data-tree capability the engine resolves and traverses
// items through. Implemented by the tree store.
type DataSource interface {
	ResolveID(id string) *domain.Node
	ResolveValue(value string) (*domain.Node, error)
	IsDescendant(n *domain.Node) bool
	FirstTraversable() *domain.Node
	NextTraversable(n *domain.Node, dir int) *domain.Node
	TraversableNodes() []*domain.Node
}

// AttrWatcher is implemented by data sources that can report node
// attribute changes back to interested components. The node-to-observer
// mapping is owned by the data layer; the engine only keeps the
// unwatch functions for its current selection members.
type AttrWatcher interface {
	WatchAttrs(n *domain.Node, fn func(n *domain.Node, attr string)) func()
}

// ViewBinding maps items to their visual handles and applies selection
// styling. A handle may be nil when the visual representation is gone;
// callers tolerate that.
type ViewBinding interface {
	VisualFor(n *domain.Node) Handle
	ItemForVisual(h Handle) *domain.Node
	ApplySelected(h Handle)
	ApplyDeselected(h Handle)
	ApplyIndicated(h Handle)
	ApplyUnindicated(h Handle)
}

// Options are the recognized selection settings
type Options struct {
	Selectable    bool // selection permitted at all
	Multiselect   bool // ctrl/shift semantics enabled
	Autoselect    bool // auto-commit repaired selection
	AutoselectAll bool // select the whole traversable set once a root attaches
	CtrlSelect    bool // sticky ctrl-mode for pointer interaction
	AllowDeselect bool // ctrl-toggle may empty the selection
	Reselectable  bool // re-selecting the sole primary re-fires events
	DelayedSelect bool // defer afterselect dispatch by a short delay
	BufferSelect  bool // dwell mode for pointer interaction
}

// DefaultOptions returns the options a component starts with
func DefaultOptions() Options {
	return Options{
		Selectable:    true,
		AllowDeselect: true,
	}
}

// Request carries the parameters of one Select call
type Request struct {
	Ctrl  bool
	Shift bool
	Fake  bool // visual-only reselect of the current primary
	Force bool // bypass the reselect no-op rule
	Quiet bool // suppress notifications
}

// State holds selection state: the ordered selection list, the primary
// selected item and the indicator (keyboard focus). Indicator membership
// in Items is not required.
type State struct {
	Items     []*domain.Node
	Selected  *domain.Node
	Indicator *domain.Node
}

// Notification names
const (
	EventBeforeSelect   = "beforeselect"
	EventAfterSelect    = "afterselect"
	EventBeforeDeselect = "beforedeselect"
	EventAfterDeselect  = "afterdeselect"
	EventBeforeChoose   = "beforechoose"
	EventAfterChoose    = "afterchoose"
	EventIndicate       = "indicate"
)

// BeforeSelectEvent fires before a selection mutates state; a handler
// returning false vetoes the operation
type BeforeSelectEvent struct {
	Node   *domain.Node // nil for bulk selection
	Handle Handle
	Ctrl   bool
	Shift  bool
}

func (e BeforeSelectEvent) Name() string { return EventBeforeSelect }

// AfterSelectEvent fires after a completed selection
type AfterSelectEvent struct {
	Node  *domain.Node // the item just acted on
	Items []*domain.Node
}

func (e AfterSelectEvent) Name() string { return EventAfterSelect }

// BeforeDeselectEvent fires before a clear; returning false vetoes it
type BeforeDeselectEvent struct {
	Node *domain.Node
}

func (e BeforeDeselectEvent) Name() string { return EventBeforeDeselect }

// AfterDeselectEvent fires after a clear completed
type AfterDeselectEvent struct {
	Items []*domain.Node
}

func (e AfterDeselectEvent) Name() string { return EventAfterDeselect }

// BeforeChooseEvent fires before an item is chosen (activated); returning
// false vetoes the choose
type BeforeChooseEvent struct {
	Node   *domain.Node
	Handle Handle
}

func (e BeforeChooseEvent) Name() string { return EventBeforeChoose }

// AfterChooseEvent fires after an item was chosen
type AfterChooseEvent struct {
	Node  *domain.Node
	Items []*domain.Node
}

func (e AfterChooseEvent) Name() string { return EventAfterChoose }

// IndicateEvent fires whenever the indicator moves (Node may be nil when
// it is cleared)
type IndicateEvent struct {
	Node *domain.Node
}

func (e IndicateEvent) Name() string { return EventIndicate }
