package tree

import (
	"errors"
	"sync"

	"selex/internal/domain"
	"selex/internal/eventbus"
)

// ErrNoValueRule is returned by ResolveValue when no value rule has been
// configured for the tree, so there is nothing to compare values against.
var ErrNoValueRule = errors.New("tree: no value rule configured")

// ValueFunc computes the comparison value of a node for value-based lookup
type ValueFunc func(*domain.Node) string

// FilterFunc decides whether a node participates in traversal
type FilterFunc func(*domain.Node) bool

// AttrFunc is called back when an attribute of a watched node changes
type AttrFunc func(n *domain.Node, attr string)

// Store owns the data tree: node registration, traversal, structural
// mutation and the attribute-observer registry. It is the data-layer
// collaborator selection components resolve items through.
type Store struct {
	mu       sync.RWMutex
	root     *domain.Node
	byID     map[string]*domain.Node
	valueFn  ValueFunc
	filterFn FilterFunc
	bus      eventbus.EventBus

	// Attribute observers, keyed by node. The mapping lives here so the
	// data layer can fan attribute changes out to every component whose
	// selection currently includes the node.
	watchSeq int
	watchers map[*domain.Node]map[int]AttrFunc
}

// NewStore creates a new tree store
func NewStore(bus eventbus.EventBus) *Store {
	return &Store{
		byID:     make(map[string]*domain.Node),
		watchers: make(map[*domain.Node]map[int]AttrFunc),
		bus:      bus,
	}
}

// SetValueFunc installs the rule used for value-based resolution
func (s *Store) SetValueFunc(fn ValueFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valueFn = fn
}

// SetFilter installs the traversal filter; nil means every non-separator
// node is traversable
func (s *Store) SetFilter(fn FilterFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterFn = fn
}

// SetRoot attaches a new tree, replacing any previous one
func (s *Store) SetRoot(root *domain.Node) {
	s.mu.Lock()
	s.root = root
	s.byID = make(map[string]*domain.Node)
	s.register(root)
	stats := s.statsLocked()
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(eventbus.TreeLoadedEvent{Stats: stats})
	}
}

// Root returns the currently attached root (nil if none)
func (s *Store) Root() *domain.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// Stats returns counts about the attached tree
func (s *Store) Stats() domain.TreeStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statsLocked()
}

func (s *Store) statsLocked() domain.TreeStats {
	var stats domain.TreeStats
	var walk func(n *domain.Node, depth int)
	walk = func(n *domain.Node, depth int) {
		if n == nil {
			return
		}
		stats.NodeCount++
		if n.Kind == domain.KindLeaf {
			stats.LeafCount++
		}
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(s.root, 0)
	return stats
}

func (s *Store) register(n *domain.Node) {
	if n == nil {
		return
	}
	if n.ID != "" {
		s.byID[n.ID] = n
	}
	for _, c := range n.Children {
		c.Parent = n
		s.register(c)
	}
}

func (s *Store) unregister(n *domain.Node) {
	if n == nil {
		return
	}
	if n.ID != "" {
		delete(s.byID, n.ID)
	}
	delete(s.watchers, n)
	for _, c := range n.Children {
		s.unregister(c)
	}
}

// Add inserts a node (and its subtree) under the given parent
func (s *Store) Add(parent, n *domain.Node) {
	s.mu.Lock()
	if parent == nil {
		parent = s.root
	}
	if parent == nil || n == nil {
		s.mu.Unlock()
		return
	}
	n.Parent = parent
	parent.Children = append(parent.Children, n)
	s.register(n)
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(eventbus.NodesChangedEvent{Hint: n})
	}
}

// Remove detaches a node (and its subtree) from the tree and publishes a
// NodesChanged event hinted at the removal site
func (s *Store) Remove(n *domain.Node) {
	s.mu.Lock()
	if n == nil || n == s.root || n.Parent == nil {
		s.mu.Unlock()
		return
	}
	parent := n.Parent
	parent.Children = removeChild(parent.Children, n)
	n.Parent = nil
	s.unregister(n)
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(eventbus.NodesChangedEvent{Hint: parent, Removed: []*domain.Node{n}})
	}
}

// Reparent moves a node under a new parent, keeping its subtree
func (s *Store) Reparent(n, newParent *domain.Node) {
	s.mu.Lock()
	if n == nil || newParent == nil || n == s.root || n.Parent == nil {
		s.mu.Unlock()
		return
	}
	// Refuse cycles
	for p := newParent; p != nil; p = p.Parent {
		if p == n {
			s.mu.Unlock()
			return
		}
	}
	n.Parent.Children = removeChild(n.Parent.Children, n)
	n.Parent = newParent
	newParent.Children = append(newParent.Children, n)
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(eventbus.NodesChangedEvent{Hint: n})
	}
}

func removeChild(children []*domain.Node, n *domain.Node) []*domain.Node {
	for i, c := range children {
		if c == n {
			return append(children[:i], children[i+1:]...)
		}
	}
	return children
}

// SetAttr updates a node attribute and notifies every observer watching
// the node
func (s *Store) SetAttr(n *domain.Node, key, value string) {
	if n == nil {
		return
	}
	s.mu.Lock()
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	observers := make([]AttrFunc, 0, len(s.watchers[n]))
	for _, fn := range s.watchers[n] {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(n, key)
	}
	if s.bus != nil {
		s.bus.Publish(eventbus.NodeAttrChangedEvent{Node: n, Attr: key})
	}
}

// WatchAttrs registers an observer for attribute changes on a node and
// returns the function that removes it again
func (s *Store) WatchAttrs(n *domain.Node, fn AttrFunc) func() {
	if n == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.watchSeq++
	id := s.watchSeq
	if s.watchers[n] == nil {
		s.watchers[n] = make(map[int]AttrFunc)
	}
	s.watchers[n][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if m, ok := s.watchers[n]; ok {
			delete(m, id)
			if len(m) == 0 {
				delete(s.watchers, n)
			}
		}
	}
}
