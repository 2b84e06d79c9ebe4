package components

import (
	"strings"

	"filescout/internal/tui/styles"

	"github.com/charmbracelet/x/ansi"
)

// RenderEditor draws the edit buffer lines with the cursor at (row, col),
// scrolled so the cursor stays visible, inside a box of width x height.
func RenderEditor(theme styles.Theme, lines []string, row, col, width, height int, footer string) string {
	inner := max(1, width-2)
	rows := max(1, height-3)

	top := 0
	if row >= rows {
		top = row - rows + 1
	}
	left := 0
	if col >= inner {
		left = col - inner + 1
	}

	var out []string
	for i := top; i < len(lines) && i < top+rows; i++ {
		runes := []rune(lines[i])
		if i == row {
			c := min(col, len(runes))
			before := string(runes[:c])
			under := " "
			after := ""
			if c < len(runes) {
				under = string(runes[c])
				after = string(runes[c+1:])
			}
			head := visible(before, left, inner)
			tail := visible(after, 0, max(0, inner-ansi.StringWidth(head)-1))
			out = append(out, head+theme.Cursor.Render(under)+tail)
			continue
		}
		out = append(out, visible(string(runes), left, inner))
	}
	for len(out) < rows {
		out = append(out, "")
	}

	box := styles.Editor.BorderForeground(theme.Pair.Primary).Width(inner).Render(strings.Join(out, "\n"))
	return box + "\n" + footer
}

func visible(s string, skip, width int) string {
	runes := []rune(s)
	if skip >= len(runes) {
		return ""
	}
	return ansi.Truncate(string(runes[skip:]), width, "")
}
