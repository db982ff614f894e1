package state

import (
	"selex/internal/domain"
)

// RowVisual is the visual handle of one rendered row. The selection
// engine mutates its flags through the view binding; the renderer styles
// the row from them.
type RowVisual struct {
	Node      *domain.Node
	Selected  bool
	Indicated bool
}

// ViewState owns the visual flags of all rows the component has handed
// out handles for
type ViewState struct {
	visuals map[*domain.Node]*RowVisual
}

// NewViewState creates an empty view state
func NewViewState() *ViewState {
	return &ViewState{
		visuals: make(map[*domain.Node]*RowVisual),
	}
}

// HandleFor returns the visual handle for a node, creating it on first use
func (v *ViewState) HandleFor(n *domain.Node) *RowVisual {
	if n == nil {
		return nil
	}
	rv, ok := v.visuals[n]
	if !ok {
		rv = &RowVisual{Node: n}
		v.visuals[n] = rv
	}
	return rv
}

// Lookup returns the existing handle for a node (nil when none was made)
func (v *ViewState) Lookup(n *domain.Node) *RowVisual {
	return v.visuals[n]
}

// Drop forgets the handle of a node, e.g. when its row left the view
func (v *ViewState) Drop(n *domain.Node) {
	delete(v.visuals, n)
}

// Reset forgets all handles
func (v *ViewState) Reset() {
	v.visuals = make(map[*domain.Node]*RowVisual)
}
