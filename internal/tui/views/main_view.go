// Package views composes the screen from the model's state.
package views

import (
	"filescout/internal/navigation"
	"filescout/internal/tui/components"
	"filescout/internal/tui/styles"
	"filescout/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Snapshot() navigation.View
	Mode() types.ViewMode
	Palette() int
	Size() (width, height int)
	Scroll() (x, y int)
	EditLines() []string
	EditCursor() (row, col int)
	Prompt() *components.Prompt
	StatusBar() *components.StatusBar
	ShowHelp() bool
	KeyMap() types.KeyMap
}

// RenderMainView draws the whole screen.
func RenderMainView(m ModelReader) string {
	width, height := m.Size()
	theme := styles.NewTheme(m.Palette())
	keys := m.KeyMap()

	h := help.New()
	h.Width = width

	if m.Mode() == types.FileEdit {
		row, col := m.EditCursor()
		footer := h.ShortHelpView(keys.EditHelp())
		return components.RenderEditor(theme, m.EditLines(), row, col, width, height-1, footer)
	}

	v := m.Snapshot()

	var footer string
	if m.Mode().CapturesText() {
		footer = h.ShortHelpView(keys.PromptHelp())
	} else {
		h.ShowAll = m.ShowHelp()
		footer = h.View(keys)
	}

	status := m.StatusBar()
	status.SetTheme(theme)
	status.SetError(v.LastError)
	status.SetSelection(v.Permission, v.SelectedSize, v.SelectedModTime, isFile(v))

	paneHeight := height - 2 - lipgloss.Height(footer)
	if paneHeight < 1 {
		paneHeight = 1
	}

	header := theme.Pwd.Render(ansi.Truncate(v.Pwd, width, "…"))
	panes := renderPanes(m, v, theme, width, paneHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		panes,
		status.View(width),
		footer,
	)
}

// renderPanes lays out parent, current and preview side by side. The
// parent pane takes 15% of the width; the rest is split evenly.
func renderPanes(m ModelReader, v navigation.View, theme styles.Theme, width, height int) string {
	parentWidth := width * 15 / 100
	rest := width - parentWidth
	currentWidth := rest / 2
	previewWidth := rest - currentWidth

	parent := components.NewFileList(theme)
	parent.SetFiles(v.ParentListing, v.ParentSelected)
	parent.SetSize(max(0, parentWidth-2), height)

	// The current pane carries a left and right border.
	innerCurrent := max(0, currentWidth-2)
	current := components.NewFileList(theme)
	current.SetFiles(v.Current, v.Selected)
	currentBody := ""
	if m.Mode() == types.Rename || m.Mode() == types.Create {
		box := m.Prompt().View(theme, innerCurrent)
		current.SetSize(innerCurrent, max(0, height-lipgloss.Height(box)))
		currentBody = lipgloss.JoinVertical(lipgloss.Left, box, current.View())
	} else {
		current.SetSize(innerCurrent, height)
		currentBody = current.View()
	}

	preview := renderPreview(m, v, theme, max(0, previewWidth-2), height)

	pane := func(body string, w int) string {
		return lipgloss.NewStyle().Width(w).Height(height).MaxHeight(height).PaddingLeft(1).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		pane(parent.View(), max(0, parentWidth-1)),
		theme.Border.Height(height).Render(lipgloss.NewStyle().Width(innerCurrent).Height(height).MaxHeight(height).Render(currentBody)),
		pane(preview, max(0, previewWidth-1)),
	)
}

func renderPreview(m ModelReader, v navigation.View, theme styles.Theme, width, height int) string {
	switch v.Preview.Kind {
	case navigation.PreviewDir:
		list := components.NewFileList(theme)
		list.SetFiles(v.Preview.Listing, -1)
		list.SetSize(width, height)
		return list.View()
	case navigation.PreviewFile:
		if v.Preview.Loading {
			return theme.Empty.Render("Loading…")
		}
		cv := components.NewContentView(theme)
		cv.SetSize(width, height)
		cv.SetContent(v.Preview.Content)
		x, y := m.Scroll()
		cv.ScrollTo(x, y)
		return cv.View()
	default:
		return ""
	}
}

func isFile(v navigation.View) bool {
	entry, ok := v.SelectedEntry()
	return ok && entry.IsFile()
}
