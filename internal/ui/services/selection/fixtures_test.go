package selection

import (
	"errors"
	"time"

	"selex/internal/domain"
)

var errNoValueRule = errors.New("no value rule configured")

// fakeData is a flat DataSource over an ordered node list
type fakeData struct {
	nodes     []*domain.Node
	removed   map[*domain.Node]bool
	valueRule bool
	watches   map[*domain.Node][]func(*domain.Node, string)
}

func newFakeData(titles ...string) *fakeData {
	d := &fakeData{
		removed:   make(map[*domain.Node]bool),
		valueRule: true,
		watches:   make(map[*domain.Node][]func(*domain.Node, string)),
	}
	for _, t := range titles {
		d.nodes = append(d.nodes, &domain.Node{
			ID:    t,
			Title: t,
			Value: "v-" + t,
			Kind:  domain.KindLeaf,
		})
	}
	return d
}

func (d *fakeData) node(id string) *domain.Node {
	for _, n := range d.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (d *fakeData) remove(n *domain.Node) {
	d.removed[n] = true
}

func (d *fakeData) alive() []*domain.Node {
	var out []*domain.Node
	for _, n := range d.nodes {
		if !d.removed[n] {
			out = append(out, n)
		}
	}
	return out
}

func (d *fakeData) ResolveID(id string) *domain.Node {
	for _, n := range d.alive() {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (d *fakeData) ResolveValue(value string) (*domain.Node, error) {
	if !d.valueRule {
		return nil, errNoValueRule
	}
	for _, n := range d.alive() {
		if n.Value == value {
			return n, nil
		}
	}
	return nil, nil
}

func (d *fakeData) IsDescendant(n *domain.Node) bool {
	for _, a := range d.alive() {
		if a == n {
			return true
		}
	}
	return false
}

func (d *fakeData) FirstTraversable() *domain.Node {
	alive := d.alive()
	if len(alive) == 0 {
		return nil
	}
	return alive[0]
}

func (d *fakeData) NextTraversable(n *domain.Node, dir int) *domain.Node {
	alive := d.alive()
	for i, a := range alive {
		if a == n {
			j := i + dir
			if j < 0 || j >= len(alive) {
				return nil
			}
			return alive[j]
		}
	}
	return nil
}

func (d *fakeData) TraversableNodes() []*domain.Node {
	return d.alive()
}

func (d *fakeData) WatchAttrs(n *domain.Node, fn func(*domain.Node, string)) func() {
	d.watches[n] = append(d.watches[n], fn)
	return func() {
		delete(d.watches, n)
	}
}

func (d *fakeData) fireAttr(n *domain.Node, attr string) {
	for _, fn := range d.watches[n] {
		fn(n, attr)
	}
}

// rowHandle is the fake view's visual handle type, deliberately distinct
// from *domain.Node so handle-based targets exercise the handle path
type rowHandle struct {
	n *domain.Node
}

// fakeView records every visual call in order
type fakeView struct {
	calls   []string
	missing map[*domain.Node]bool // rows whose visuals are torn down
}

func newFakeView() *fakeView {
	return &fakeView{missing: make(map[*domain.Node]bool)}
}

func (v *fakeView) VisualFor(n *domain.Node) Handle {
	if n == nil || v.missing[n] {
		return nil
	}
	return rowHandle{n: n}
}

func (v *fakeView) ItemForVisual(h Handle) *domain.Node {
	if rh, ok := h.(rowHandle); ok {
		return rh.n
	}
	return nil
}

func (v *fakeView) record(op string, h Handle) {
	if rh, ok := h.(rowHandle); ok && rh.n != nil {
		v.calls = append(v.calls, op+":"+rh.n.ID)
	}
}

func (v *fakeView) ApplySelected(h Handle)    { v.record("sel", h) }
func (v *fakeView) ApplyDeselected(h Handle)  { v.record("desel", h) }
func (v *fakeView) ApplyIndicated(h Handle)   { v.record("ind", h) }
func (v *fakeView) ApplyUnindicated(h Handle) { v.record("unind", h) }

func (v *fakeView) count(op, id string) int {
	c := 0
	for _, call := range v.calls {
		if call == op+":"+id {
			c++
		}
	}
	return c
}

// manualScheduler collects deferred calls so tests decide when (and
// whether) timers fire
type manualScheduler struct {
	pending  []func()
	canceled int
}

func (m *manualScheduler) schedule(d time.Duration, fn func()) func() {
	idx := len(m.pending)
	m.pending = append(m.pending, fn)
	return func() {
		if m.pending[idx] != nil {
			m.pending[idx] = nil
			m.canceled++
		}
	}
}

func (m *manualScheduler) fire() {
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		if fn != nil {
			fn()
		}
	}
}

func (m *manualScheduler) outstanding() int {
	c := 0
	for _, fn := range m.pending {
		if fn != nil {
			c++
		}
	}
	return c
}

func ids(items []*domain.Node) []string {
	out := make([]string, len(items))
	for i, n := range items {
		out[i] = n.ID
	}
	return out
}
