package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selex/internal/domain"
	"selex/internal/tree"
	"selex/internal/ui/services/events"
)

func buildStore(t *testing.T) *tree.Store {
	t.Helper()
	store := tree.NewStore(nil)
	root, err := tree.Parse([]byte(`
title = "Test"

[[nodes]]
id = "fruit"
title = "Fruit"

  [[nodes.nodes]]
  id = "apple"
  title = "Apple"

  [[nodes.nodes]]
  id = "pear"
  title = "Pear"

[[nodes]]
kind = "separator"

[[nodes]]
id = "bread"
title = "Bread"
`))
	require.NoError(t, err)
	store.SetRoot(root)
	return store
}

func rowIDs(s *Service) []string {
	var out []string
	for _, r := range s.Rows() {
		out = append(out, r.Node.ID)
	}
	return out
}

func TestRebuildFlattensExpandedTree(t *testing.T) {
	store := buildStore(t)
	s := NewService(store, events.NewBus())
	s.Rebuild()

	assert.Equal(t, []string{"fruit", "apple", "pear", "bread"}, rowIDs(s))
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 0, s.RowAt(0).Depth)
	assert.Equal(t, 1, s.RowAt(1).Depth)
}

func TestCollapseHidesChildren(t *testing.T) {
	store := buildStore(t)
	s := NewService(store, nil)
	s.Rebuild()

	fruit := store.ResolveID("fruit")
	require.True(t, s.IsExpanded(fruit))

	s.ToggleExpanded(fruit)
	assert.False(t, s.IsExpanded(fruit))
	assert.Equal(t, []string{"fruit", "bread"}, rowIDs(s))

	s.ToggleExpanded(fruit)
	assert.Equal(t, []string{"fruit", "apple", "pear", "bread"}, rowIDs(s))
}

func TestToggleExpandedIgnoresLeaves(t *testing.T) {
	store := buildStore(t)
	s := NewService(store, nil)
	s.Rebuild()

	s.ToggleExpanded(store.ResolveID("bread"))
	assert.Equal(t, 4, s.Len())
}

func TestFilterKeepsMatchingBranchesVisible(t *testing.T) {
	store := buildStore(t)
	s := NewService(store, nil)

	store.SetFilter(func(n *domain.Node) bool { return n.ID == "pear" })
	s.Rebuild()

	// The branch stays visible as the path to its matching child
	assert.Equal(t, []string{"fruit", "pear"}, rowIDs(s))
}

func TestIndexLookups(t *testing.T) {
	store := buildStore(t)
	s := NewService(store, nil)
	s.Rebuild()

	apple := store.ResolveID("apple")
	assert.Equal(t, 1, s.IndexOf(apple))
	assert.Equal(t, apple, s.NodeAt(1))
	assert.Equal(t, -1, s.IndexOf(&domain.Node{}))
	assert.Nil(t, s.NodeAt(99))
	assert.Nil(t, s.NodeAt(-1))
}

func TestRebuildEmitsRowsChanged(t *testing.T) {
	store := buildStore(t)
	bus := events.NewBus()
	var counts []int
	bus.Subscribe(EventRowsChanged, func(e events.Event) bool {
		counts = append(counts, e.(RowsChangedEvent).Count)
		return true
	})

	s := NewService(store, bus)
	s.Rebuild()
	assert.Equal(t, []int{4}, counts)
}

func TestRebuildWithoutRoot(t *testing.T) {
	s := NewService(tree.NewStore(nil), nil)
	s.Rebuild()
	assert.Equal(t, 0, s.Len())
}
