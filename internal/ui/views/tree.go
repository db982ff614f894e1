package views

import (
	"fmt"
	"strings"
)

// RowData is everything the renderer needs to draw one visible row
type RowData struct {
	Title       string
	Depth       int
	IsContainer bool
	Expanded    bool
	Selected    bool
	Indicated   bool
	Tentative   bool
}

// RenderRows draws the visible window of the row list. cursor is the
// absolute index of the cursor row, offset the first visible index.
func RenderRows(rows []RowData, cursor, offset, height int, styles *Styles) string {
	var b strings.Builder

	end := offset + height
	if end > len(rows) {
		end = len(rows)
	}
	if offset < 0 {
		offset = 0
	}

	for i := offset; i < end; i++ {
		row := rows[i]
		indent := strings.Repeat("  ", row.Depth)

		prefix := "  "
		if row.IsContainer {
			if row.Expanded {
				prefix = "▾ "
			} else {
				prefix = "▸ "
			}
		}

		marker := "[ ]"
		switch {
		case row.Selected:
			marker = "[x]"
		case row.Tentative:
			marker = "[~]"
		}
		if row.IsContainer {
			marker = "   "
		}

		title := row.Title
		switch {
		case row.IsContainer:
			title = styles.Branch.Render(title)
		case row.Selected:
			title = styles.Selected.Render(title)
		case row.Tentative:
			title = styles.Tentative.Render(title)
		default:
			title = styles.Leaf.Render(title)
		}
		if row.Indicated {
			title = styles.Indicated.Render("‹") + title + styles.Indicated.Render("›")
		}

		line := fmt.Sprintf("%s%s%s %s", indent, prefix, marker, title)
		if i == cursor {
			line = styles.SelectionBg.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if end < len(rows) {
		b.WriteString(styles.Scroll.Render(fmt.Sprintf("… %d more", len(rows)-end)))
		b.WriteString("\n")
	}

	return b.String()
}
