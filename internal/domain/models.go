package domain

// NodeKind describes the structural role of a node in the data tree
type NodeKind int

const (
	// KindBranch is a container node that may hold children
	KindBranch NodeKind = iota
	// KindLeaf is a plain selectable item
	KindLeaf
	// KindSeparator is decoration and never appears in traversal
	KindSeparator
)

// Node is a single item of the data tree. Nodes are compared by pointer
// identity; the tree store owns their structure, components only hold
// references into it.
type Node struct {
	ID       string
	Title    string
	Value    string // comparison value for value-based selection ("" if none)
	Kind     NodeKind
	Attrs    map[string]string
	Parent   *Node
	Children []*Node
}

// IsContainer returns true for nodes that can hold children
func (n *Node) IsContainer() bool {
	return n.Kind == KindBranch
}

// Attr returns a node attribute value ("" if unset)
func (n *Node) Attr(key string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// TreeStats describes the currently loaded tree
type TreeStats struct {
	NodeCount int
	LeafCount int
	MaxDepth  int
}
