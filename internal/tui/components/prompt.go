package components

import (
	"filescout/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Prompt is the single-line name entry box used by rename and create.
type Prompt struct {
	input textinput.Model
	title string
}

func NewPrompt() *Prompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 255
	return &Prompt{input: ti}
}

// Open shows the prompt with title and an initial value.
func (p *Prompt) Open(title, value string) tea.Cmd {
	p.title = title
	p.input.SetValue(value)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Close hides the prompt and clears its value.
func (p *Prompt) Close() {
	p.input.Blur()
	p.input.Reset()
	p.title = ""
}

func (p *Prompt) Value() string {
	return p.input.Value()
}

func (p *Prompt) Title() string {
	return p.title
}

func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View draws the box width cells wide.
func (p *Prompt) View(theme styles.Theme, width int) string {
	inner := max(1, width-2)
	p.input.Width = max(1, inner-1)
	body := styles.Title.Render(p.title) + "\n" + p.input.View()
	return theme.Prompt.Width(inner).Render(body)
}
