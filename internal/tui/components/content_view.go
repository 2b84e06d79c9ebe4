package components

import (
	"strings"

	"filescout/internal/tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
)

const tabWidth = 4

// ContentView shows file text scrolled by independent x and y offsets.
type ContentView struct {
	viewport viewport.Model
	theme    styles.Theme
	lines    []string
	x, y     int
}

func NewContentView(theme styles.Theme) *ContentView {
	return &ContentView{
		viewport: viewport.New(0, 0),
		theme:    theme,
	}
}

func (cv *ContentView) SetSize(width, height int) {
	cv.viewport.Width = width
	cv.viewport.Height = height
}

// SetContent replaces the text. Tabs are expanded so column offsets match
// what is drawn.
func (cv *ContentView) SetContent(content string) {
	content = strings.TrimSuffix(content, "\n")
	content = strings.ReplaceAll(content, "\t", strings.Repeat(" ", tabWidth))
	if content == "" {
		cv.lines = nil
		return
	}
	cv.lines = strings.Split(content, "\n")
}

// ScrollTo sets the offsets: x columns are skipped on every line and the
// view starts at line y.
func (cv *ContentView) ScrollTo(x, y int) {
	cv.x = max(0, x)
	cv.y = max(0, y)
}

func (cv *ContentView) View() string {
	if len(cv.lines) == 0 {
		return cv.theme.Empty.Render("No content")
	}

	width := cv.viewport.Width
	visible := cv.lines[min(cv.y, len(cv.lines)):]
	shifted := make([]string, len(visible))
	for i, line := range visible {
		runes := []rune(line)
		if cv.x < len(runes) {
			line = string(runes[cv.x:])
		} else {
			line = ""
		}
		shifted[i] = cv.theme.Content.Render(ansi.Truncate(line, width, ""))
	}
	cv.viewport.SetContent(strings.Join(shifted, "\n"))
	return cv.viewport.View()
}
