package components

import (
	"strings"

	"filescout/internal/tui/styles"
	"filescout/pkg/types"

	"github.com/charmbracelet/x/ansi"
)

// FileList renders one pane of entries with an optional highlighted
// selection, scrolled so the selection stays visible.
type FileList struct {
	files    []types.FileEntry
	selected int
	width    int
	height   int
	theme    styles.Theme
}

// NewFileList creates an empty list with no selection.
func NewFileList(theme styles.Theme) *FileList {
	return &FileList{selected: -1, theme: theme}
}

// SetFiles replaces the entries and the selected index (-1 for none).
func (fl *FileList) SetFiles(files []types.FileEntry, selected int) {
	fl.files = files
	fl.selected = selected
}

// SetSize sets the pane's dimensions in cells.
func (fl *FileList) SetSize(width, height int) {
	fl.width = width
	fl.height = height
}

// offset is the index of the first visible entry.
func (fl *FileList) offset() int {
	if fl.height <= 0 || fl.selected < fl.height {
		return 0
	}
	return fl.selected - fl.height + 1
}

func (fl *FileList) View() string {
	if fl.width <= 0 || fl.height <= 0 {
		return ""
	}
	if len(fl.files) == 0 {
		return fl.theme.Empty.Render(ansi.Truncate("No items", fl.width, ""))
	}

	start := fl.offset()
	end := start + fl.height
	if end > len(fl.files) {
		end = len(fl.files)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		file := fl.files[i]
		name := ansi.Truncate(file.Name(), fl.width, "…")
		style := fl.theme.File
		if file.IsDir() {
			style = fl.theme.Dir
		}
		if i == fl.selected {
			style = fl.theme.Selected
			name += strings.Repeat(" ", max(0, fl.width-ansi.StringWidth(name)))
		}
		lines = append(lines, style.Render(name))
	}
	return strings.Join(lines, "\n")
}
