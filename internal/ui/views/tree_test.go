package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRows() []RowData {
	return []RowData{
		{Title: "Fruit", IsContainer: true, Expanded: true},
		{Title: "Apple", Depth: 1, Selected: true, Indicated: true},
		{Title: "Pear", Depth: 1},
		{Title: "Plum", Depth: 1, Tentative: true},
		{Title: "Bread"},
	}
}

func TestRenderRowsMarkers(t *testing.T) {
	out := RenderRows(sampleRows(), 1, 0, 10, NewStyles())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5)

	assert.Contains(t, lines[0], "▾")
	assert.Contains(t, lines[1], "[x]")
	assert.Contains(t, lines[1], "‹")
	assert.Contains(t, lines[2], "[ ]")
	assert.Contains(t, lines[3], "[~]")
}

func TestRenderRowsWindowing(t *testing.T) {
	out := RenderRows(sampleRows(), 0, 0, 3, NewStyles())
	assert.Contains(t, out, "Fruit")
	assert.NotContains(t, out, "Bread")
	assert.Contains(t, out, "… 2 more")
}

func TestRenderRowsCollapsedContainer(t *testing.T) {
	rows := []RowData{{Title: "Fruit", IsContainer: true}}
	out := RenderRows(rows, -1, 0, 5, NewStyles())
	assert.Contains(t, out, "▸")
}

func TestRenderRowsEmpty(t *testing.T) {
	out := RenderRows(nil, 0, 0, 5, NewStyles())
	assert.Empty(t, out)
}
