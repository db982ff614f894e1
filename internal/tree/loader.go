package tree

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"selex/internal/domain"
)

// nodeSpec is the TOML shape of one node
type nodeSpec struct {
	ID    string            `toml:"id"`
	Title string            `toml:"title"`
	Value string            `toml:"value"`
	Kind  string            `toml:"kind"`
	Attrs map[string]string `toml:"attrs"`
	Nodes []nodeSpec        `toml:"nodes"`
}

// treeSpec is the TOML shape of a whole tree file
type treeSpec struct {
	Title string     `toml:"title"`
	Nodes []nodeSpec `toml:"nodes"`
}

// LoadFile reads a tree definition from a TOML file and returns its root
func LoadFile(path string) (*domain.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree file: %w", err)
	}
	return Parse(data)
}

// Parse builds a tree from TOML data
func Parse(data []byte) (*domain.Node, error) {
	var spec treeSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse tree file: %w", err)
	}
	if len(spec.Nodes) == 0 {
		return nil, fmt.Errorf("tree file defines no nodes")
	}

	root := &domain.Node{
		ID:    "root",
		Title: spec.Title,
		Kind:  domain.KindBranch,
	}
	for i := range spec.Nodes {
		child, err := buildNode(&spec.Nodes[i])
		if err != nil {
			return nil, err
		}
		child.Parent = root
		root.Children = append(root.Children, child)
	}
	return root, nil
}

func buildNode(spec *nodeSpec) (*domain.Node, error) {
	kind := domain.KindLeaf
	switch spec.Kind {
	case "", "leaf":
	case "branch":
		kind = domain.KindBranch
	case "separator":
		kind = domain.KindSeparator
	default:
		return nil, fmt.Errorf("node %q: unknown kind %q", spec.ID, spec.Kind)
	}
	if len(spec.Nodes) > 0 {
		kind = domain.KindBranch
	}

	n := &domain.Node{
		ID:    spec.ID,
		Title: spec.Title,
		Value: spec.Value,
		Kind:  kind,
		Attrs: spec.Attrs,
	}
	for i := range spec.Nodes {
		child, err := buildNode(&spec.Nodes[i])
		if err != nil {
			return nil, err
		}
		child.Parent = n
		n.Children = append(n.Children, child)
	}
	return n, nil
}
