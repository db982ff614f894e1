package selection

import (
	"log"

	"selex/internal/domain"
	"selex/internal/ui/services/events"
)

// pendingSelect captures a Select call made before a data root existed so
// it can be replayed once one attaches. Only one may be pending; a newer
// call replaces an older unflushed one.
type pendingSelect struct {
	target            interface{}
	req               Request
	restoreAutoselect bool
}

// Service is the selection engine of one list-like component. It owns the
// ordered selection list, the primary selected item and the indicator,
// and mutates them in response to clicks, modifier clicks, programmatic
// calls and data mutation underneath an active selection.
type Service struct {
	state   *State
	bus     events.EventBus
	view    ViewBinding
	data    DataSource
	opts    Options
	enabled bool

	pending *pendingSelect
	temp    *domain.Node // tentative dwell item, not yet in the real set
	dwell   *singleSlot
	delayed *singleSlot
	unwatch map[*domain.Node]func()
}

// NewService creates a new selection service bound to a view. The data
// root is attached separately; selects made before that are deferred.
func NewService(bus events.EventBus, view ViewBinding, opts Options) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state:   &State{},
		bus:     bus,
		view:    view,
		opts:    opts,
		enabled: true,
		dwell:   newSingleSlot(nil),
		delayed: newSingleSlot(nil),
		unwatch: make(map[*domain.Node]func()),
	}
}

// SetScheduler replaces the deferred-call scheduler. Tests use this to
// drive the dwell and delayed-select timers manually.
func (s *Service) SetScheduler(fn ScheduleFunc) {
	s.dwell = newSingleSlot(fn)
	s.delayed = newSingleSlot(fn)
}

// SetEnabled enables or disables the component. All mutating operations
// are no-ops while disabled.
func (s *Service) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Options returns the current selection options
func (s *Service) Options() Options {
	return s.opts
}

// SetOptions replaces the selection options
func (s *Service) SetOptions(opts Options) {
	s.opts = opts
}

// AttachRoot binds the engine to a data source. A pending deferred select
// is replayed immediately; otherwise the configured auto-select mode runs.
func (s *Service) AttachRoot(data DataSource) {
	s.data = data
	if data == nil {
		return
	}

	if p := s.pending; p != nil {
		s.pending = nil
		if _, err := s.Select(p.target, p.req); err != nil {
			log.Printf("selection: deferred select failed: %v", err)
		}
		s.opts.Autoselect = p.restoreAutoselect
		return
	}

	if s.opts.AutoselectAll {
		if _, err := s.SelectAll(); err != nil {
			log.Printf("selection: autoselect all failed: %v", err)
		}
		return
	}
	if s.opts.Autoselect && s.state.Selected == nil {
		if first := data.FirstTraversable(); first != nil {
			s.Select(first, Request{})
		}
	}
}

// DetachRoot unbinds the data source, clearing selection state and
// cancelling outstanding timers. State is cleared, not destroyed; the
// component stays usable.
func (s *Service) DetachRoot() {
	s.dwell.Cancel()
	s.delayed.Cancel()
	s.temp = nil
	s.ClearSelection(false, true)
	s.setIndicator(nil, nil, true)
	s.data = nil
}

// Close cancels outstanding deferred work. Must be called on teardown so
// a dwell timer cannot fire into a dead component.
func (s *Service) Close() {
	s.dwell.Cancel()
	s.delayed.Cancel()
	s.temp = nil
	s.pending = nil
	for n, un := range s.unwatch {
		un()
		delete(s.unwatch, n)
	}
}

// Queries

// Selected returns the primary selected item (nil when nothing is selected)
func (s *Service) Selected() *domain.Node {
	return s.state.Selected
}

// Indicator returns the item carrying keyboard focus (nil when unset)
func (s *Service) Indicator() *domain.Node {
	return s.state.Indicator
}

// Items returns a snapshot of the ordered selection list
func (s *Service) Items() []*domain.Node {
	return s.snapshot()
}

// IsSelected checks membership in the selection list
func (s *Service) IsSelected(n *domain.Node) bool {
	return indexOf(s.state.Items, n) >= 0
}

// IsTentative reports whether n is the current dwell candidate
func (s *Service) IsTentative(n *domain.Node) bool {
	return n != nil && n == s.temp
}

// Count returns the number of selected items
func (s *Service) Count() int {
	return len(s.state.Items)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return s.state.Selected != nil || len(s.state.Items) > 0
}

// Select resolves target and mutates the selection according to the
// request's modifier flags. target may be a *domain.Node, a visual handle
// or a string (value first, node ID as fallback). It returns true when a
// selection completed, false on no-op or veto, and an error only when the
// target resolves to nothing at all.
func (s *Service) Select(target interface{}, req Request) (bool, error) {
	if !s.enabled || !s.opts.Selectable {
		return false, nil
	}

	// No data root yet: capture the call and replay it on attach. The
	// previous auto-select mode is restored after the replay.
	if s.data == nil {
		restore := s.opts.Autoselect
		if s.pending != nil {
			restore = s.pending.restoreAutoselect
		}
		s.pending = &pendingSelect{target: target, req: req, restoreAutoselect: restore}
		s.opts.Autoselect = true
		return false, nil
	}

	node, handle, stringMiss, err := s.resolve(target)
	if err != nil {
		return false, err
	}
	if stringMiss {
		// A value with no matching node clears the selection instead of
		// erroring
		s.ClearSelection(false, req.Quiet)
		return false, nil
	}
	if node == nil {
		return false, ErrUnresolvable
	}

	// Modifier keys only mean something with multiselect on
	if !s.opts.Multiselect {
		req.Ctrl, req.Shift = false, false
	}

	// Reselecting the sole primary is a no-op unless forced or configured
	// reselectable. Decided before any notification fires, so consumers
	// never see a beforeselect for it.
	if !req.Ctrl && !req.Shift && !req.Fake && !req.Force && !s.opts.Reselectable &&
		node == s.state.Selected && len(s.state.Items) <= 1 {
		return false, nil
	}

	if !req.Quiet {
		if !s.bus.Emit(BeforeSelectEvent{Node: node, Handle: handle, Ctrl: req.Ctrl, Shift: req.Shift}) {
			return false, nil
		}
	}

	switch {
	case req.Shift:
		s.selectRange(node, handle, req)
	case req.Ctrl:
		if !s.selectToggle(node, handle, req) {
			return false, nil
		}
	default:
		if !s.selectPlain(node, handle, req) {
			return false, nil
		}
	}

	s.emitAfterSelect(node, req.Quiet)
	return true, nil
}

// selectPlain replaces the selection with a single item
func (s *Service) selectPlain(node *domain.Node, handle Handle, req Request) bool {
	// A fake reselect of the current primary refreshes visuals only
	if req.Fake && node == s.state.Selected {
		if handle != nil {
			s.view.ApplySelected(handle)
			s.view.ApplyIndicated(handle)
		}
		return true
	}

	for _, it := range s.state.Items {
		if h := s.view.VisualFor(it); h != nil {
			s.view.ApplyDeselected(h)
		}
	}
	if sel := s.state.Selected; sel != nil && indexOf(s.state.Items, sel) < 0 {
		if h := s.view.VisualFor(sel); h != nil {
			s.view.ApplyDeselected(h)
		}
	}

	s.setItems([]*domain.Node{node})
	s.state.Selected = node
	if handle != nil {
		s.view.ApplySelected(handle)
	}
	s.setIndicator(node, handle, req.Quiet)
	return true
}

// selectToggle adds or removes one item from the selection (ctrl click)
func (s *Service) selectToggle(node *domain.Node, handle Handle, req Request) bool {
	if idx := indexOf(s.state.Items, node); idx >= 0 {
		if !s.opts.AllowDeselect && len(s.state.Items) == 1 {
			// The last selected item may not be toggled away
			return false
		}
		items := s.snapshot()
		items = append(items[:idx], items[idx+1:]...)
		s.setItems(items)
		if handle != nil {
			s.view.ApplyDeselected(handle)
		}
		if node == s.state.Selected && !req.Fake {
			// Primary repairs to the first remaining member
			if len(items) > 0 {
				s.state.Selected = items[0]
			} else {
				s.state.Selected = nil
			}
		}
	} else {
		s.setItems(append(s.snapshot(), node))
		s.state.Selected = node
		if handle != nil {
			s.view.ApplySelected(handle)
		}
	}
	s.setIndicator(node, handle, req.Quiet)
	return true
}

// selectRange replaces the selection with the inclusive range between the
// current anchor and node (shift click). The anchor is the first member of
// the selection list, or the previous indicator when the list is empty.
func (s *Service) selectRange(node *domain.Node, handle Handle, req Request) {
	anchor := s.state.Indicator
	if len(s.state.Items) > 0 {
		anchor = s.state.Items[0]
	}
	if anchor == nil {
		anchor = node
	}

	rng := s.rangeBetween(anchor, node)
	if len(rng) == 0 {
		rng = []*domain.Node{node}
	}

	// Deselect members that fall outside the new range
	for _, it := range s.state.Items {
		if indexOf(rng, it) < 0 {
			if h := s.view.VisualFor(it); h != nil {
				s.view.ApplyDeselected(h)
			}
		}
	}
	for _, it := range rng {
		if h := s.view.VisualFor(it); h != nil {
			s.view.ApplySelected(h)
		}
	}

	s.setItems(rng)
	s.state.Selected = rng[0]
	s.setIndicator(node, handle, req.Quiet)
}

// ClearSelection deselects the primary and, unless onlyPrimary, every
// member of the selection list. Returns false when there was nothing to
// clear or a handler vetoed the deselect.
func (s *Service) ClearSelection(onlyPrimary, quiet bool) bool {
	if s.state.Selected == nil && len(s.state.Items) == 0 {
		return false
	}
	if !quiet {
		if !s.bus.Emit(BeforeDeselectEvent{Node: s.state.Selected}) {
			return false
		}
	}

	if sel := s.state.Selected; sel != nil {
		// The visual may already be torn down; a nil handle is fine
		if h := s.view.VisualFor(sel); h != nil {
			s.view.ApplyDeselected(h)
		}
	}
	if !onlyPrimary {
		for _, it := range s.state.Items {
			if h := s.view.VisualFor(it); h != nil {
				s.view.ApplyDeselected(h)
			}
		}
		s.setItems(nil)
	}
	s.state.Selected = nil

	// Keep the indicator visible on whatever it still points at
	if ind := s.state.Indicator; ind != nil {
		if h := s.view.VisualFor(ind); h != nil {
			s.view.ApplyIndicated(h)
		}
	}

	if !quiet {
		s.bus.Emit(AfterDeselectEvent{Items: s.snapshot()})
	}
	return true
}

// SelectList replaces the selection with a batch of items. Entries that
// do not resolve are skipped individually; the batch proceeds. The
// primary becomes preferred when it is part of the resolved set, else the
// first resolved item.
func (s *Service) SelectList(targets []interface{}, quiet bool, preferred *domain.Node) (bool, error) {
	if !s.enabled || !s.opts.Selectable {
		return false, nil
	}
	if !quiet {
		if !s.bus.Emit(BeforeSelectEvent{}) {
			return false, nil
		}
	}

	s.ClearSelection(false, true)

	var items []*domain.Node
	for _, t := range targets {
		node, handle, _, err := s.resolve(t)
		if err != nil || node == nil {
			continue
		}
		if indexOf(items, node) >= 0 {
			continue
		}
		if handle != nil {
			s.view.ApplySelected(handle)
		}
		items = append(items, node)
	}
	if len(items) == 0 {
		return false, nil
	}

	s.setItems(items)
	primary := items[0]
	if preferred != nil && indexOf(items, preferred) >= 0 {
		primary = preferred
	}
	s.state.Selected = primary

	s.emitAfterSelect(primary, quiet)
	return true, nil
}

// SelectAll selects the full traversable node set. Requires multiselect
// and an attached root; otherwise a no-op.
func (s *Service) SelectAll() (bool, error) {
	if !s.enabled || !s.opts.Selectable || !s.opts.Multiselect || s.data == nil {
		return false, nil
	}
	nodes := s.data.TraversableNodes()
	targets := make([]interface{}, len(nodes))
	for i, n := range nodes {
		targets[i] = n
	}
	return s.SelectList(targets, false, nil)
}

// SetIndicator moves keyboard focus to target (clearing it when target is
// nil or unresolvable) and emits an indicate notification
func (s *Service) SetIndicator(target interface{}) {
	if target == nil {
		s.setIndicator(nil, nil, false)
		return
	}
	node, handle, _, err := s.resolve(target)
	if err != nil || node == nil {
		s.setIndicator(nil, nil, false)
		return
	}
	s.setIndicator(node, handle, false)
}

func (s *Service) setIndicator(node *domain.Node, handle Handle, quiet bool) {
	if prev := s.state.Indicator; prev != nil && prev != node {
		if h := s.view.VisualFor(prev); h != nil {
			s.view.ApplyUnindicated(h)
		}
	}
	s.state.Indicator = node
	if node != nil {
		if handle == nil {
			handle = s.view.VisualFor(node)
		}
		if handle != nil {
			s.view.ApplyIndicated(handle)
		}
	}
	if !quiet {
		s.bus.Emit(IndicateEvent{Node: node})
	}
}

// Choose activates an item: it is plain-selected if not already the
// primary, framed by beforechoose/afterchoose notifications
func (s *Service) Choose(target interface{}) (bool, error) {
	if !s.enabled || !s.opts.Selectable {
		return false, nil
	}
	node, handle, _, err := s.resolve(target)
	if err != nil {
		return false, err
	}
	if node == nil {
		return false, ErrUnresolvable
	}

	if !s.bus.Emit(BeforeChooseEvent{Node: node, Handle: handle}) {
		return false, nil
	}
	if node != s.state.Selected {
		ok, err := s.Select(node, Request{})
		if err != nil {
			return false, err
		}
		// A vetoed select aborts the choose as well
		if !ok && node != s.state.Selected {
			return false, nil
		}
	}
	s.bus.Emit(AfterChooseEvent{Node: node, Items: s.snapshot()})
	return true, nil
}

// resolve maps a select target to an item and its visual handle.
// stringMiss reports the special case of a value string with no matching
// node, where policy is to clear the selection rather than error.
func (s *Service) resolve(target interface{}) (node *domain.Node, handle Handle, stringMiss bool, err error) {
	switch t := target.(type) {
	case nil:
		return nil, nil, false, nil
	case *domain.Node:
		node = t
	case string:
		if s.data == nil {
			return nil, nil, false, nil
		}
		var verr error
		node, verr = s.data.ResolveValue(t)
		if node == nil {
			node = s.data.ResolveID(t)
		}
		if node == nil {
			if verr != nil {
				// Value-based selection without a value rule is a
				// configuration problem, surfaced as-is
				return nil, nil, false, verr
			}
			return nil, nil, true, nil
		}
	default:
		// Anything else is treated as a visual handle; the binding walks
		// up the visual hierarchy to an identifiable item
		node = s.view.ItemForVisual(t)
		handle = t
	}
	if node != nil && handle == nil {
		handle = s.view.VisualFor(node)
	}
	return node, handle, false, err
}

func (s *Service) emitAfterSelect(node *domain.Node, quiet bool) {
	if quiet {
		return
	}
	ev := AfterSelectEvent{Node: node, Items: s.snapshot()}
	if s.opts.DelayedSelect {
		// Deferred so consumers can batch UI updates; state is already
		// mutated by the time this fires
		s.delayed.Arm(AfterSelectDelay, func() {
			s.bus.Emit(ev)
		})
		return
	}
	s.bus.Emit(ev)
}

// setItems installs a new selection list and keeps attribute watches in
// sync with membership. The watch mapping itself is owned by the data
// layer; the engine only holds the unwatch functions.
func (s *Service) setItems(items []*domain.Node) {
	watcher, _ := s.data.(AttrWatcher)
	if watcher != nil {
		for n, un := range s.unwatch {
			if indexOf(items, n) < 0 {
				un()
				delete(s.unwatch, n)
			}
		}
		for _, n := range items {
			if _, ok := s.unwatch[n]; !ok {
				s.unwatch[n] = watcher.WatchAttrs(n, s.nodeAttrChanged)
			}
		}
	}
	s.state.Items = items
}

// nodeAttrChanged re-applies visuals for a selected node whose attributes
// changed, so restyled rows keep their selection styling
func (s *Service) nodeAttrChanged(n *domain.Node, attr string) {
	if indexOf(s.state.Items, n) < 0 {
		return
	}
	if h := s.view.VisualFor(n); h != nil {
		s.view.ApplySelected(h)
		if n == s.state.Indicator {
			s.view.ApplyIndicated(h)
		}
	}
}

func (s *Service) snapshot() []*domain.Node {
	out := make([]*domain.Node, len(s.state.Items))
	copy(out, s.state.Items)
	return out
}

func indexOf(items []*domain.Node, n *domain.Node) int {
	for i, it := range items {
		if it == n {
			return i
		}
	}
	return -1
}
