package ui

import (
	"selex/internal/domain"
	"selex/internal/ui/services/selection"
	"selex/internal/ui/state"
)

// selection.ViewBinding implementation. Handles are *state.RowVisual
// records; a node whose row is not currently rendered has no handle, and
// the engine tolerates that.

// VisualFor returns the visual handle of a node's row, or nil when the
// row is not part of the current view
func (m *Model) VisualFor(n *domain.Node) selection.Handle {
	if n == nil || m.query.IndexOf(n) < 0 {
		return nil
	}
	return m.viewState.HandleFor(n)
}

// ItemForVisual maps a visual handle back to its item
func (m *Model) ItemForVisual(h selection.Handle) *domain.Node {
	if rv, ok := h.(*state.RowVisual); ok && rv != nil {
		return rv.Node
	}
	return nil
}

// ApplySelected marks a row as selected
func (m *Model) ApplySelected(h selection.Handle) {
	if rv, ok := h.(*state.RowVisual); ok && rv != nil {
		rv.Selected = true
	}
}

// ApplyDeselected removes the selected styling from a row
func (m *Model) ApplyDeselected(h selection.Handle) {
	if rv, ok := h.(*state.RowVisual); ok && rv != nil {
		rv.Selected = false
	}
}

// ApplyIndicated marks a row as carrying keyboard focus
func (m *Model) ApplyIndicated(h selection.Handle) {
	if rv, ok := h.(*state.RowVisual); ok && rv != nil {
		rv.Indicated = false
		for _, other := range m.query.Rows() {
			if o := m.viewState.Lookup(other.Node); o != nil && o != rv {
				o.Indicated = false
			}
		}
		rv.Indicated = true
	}
}

// ApplyUnindicated removes the focus styling from a row
func (m *Model) ApplyUnindicated(h selection.Handle) {
	if rv, ok := h.(*state.RowVisual); ok && rv != nil {
		rv.Indicated = false
	}
}
