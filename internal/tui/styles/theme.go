package styles

import "github.com/charmbracelet/lipgloss"

// Pair is one palette entry. Primary colours directories, borders and the
// selection background; Secondary colours files and text drawn on top of
// the selection.
type Pair struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
}

// Palette holds the colour pairs the colour key cycles through.
var Palette = [...]Pair{
	{Primary: "4", Secondary: "15"},      // blue on white
	{Primary: "6", Secondary: "15"},      // cyan
	{Primary: "2", Secondary: "15"},      // green
	{Primary: "#D3D3D3", Secondary: "8"}, // light grey on dark grey
	{Primary: "5", Secondary: "15"},      // magenta
	{Primary: "1", Secondary: "15"},      // red
	{Primary: "3", Secondary: "8"},       // yellow
	{Primary: "15", Secondary: "8"},      // white
	{Primary: "12", Secondary: "8"},      // light blue
}

// Theme is the set of styles derived from one palette entry.
type Theme struct {
	Pair Pair

	Pwd      lipgloss.Style
	Dir      lipgloss.Style
	File     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
	Badge    lipgloss.Style
	Empty    lipgloss.Style
	Content  lipgloss.Style
	Prompt   lipgloss.Style
	Cursor   lipgloss.Style
}

// NewTheme builds the theme for palette entry index, wrapping around.
func NewTheme(index int) Theme {
	n := len(Palette)
	pair := Palette[((index%n)+n)%n]
	return Theme{
		Pair:     pair,
		Pwd:      lipgloss.NewStyle().Foreground(pair.Primary),
		Dir:      lipgloss.NewStyle().Foreground(pair.Primary),
		File:     lipgloss.NewStyle().Foreground(pair.Secondary),
		Selected: lipgloss.NewStyle().Background(pair.Primary).Foreground(pair.Secondary),
		Border: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, true).
			BorderForeground(pair.Primary),
		Badge:   lipgloss.NewStyle().Foreground(pair.Primary).Bold(true),
		Empty:   lipgloss.NewStyle().Foreground(pair.Primary),
		Content: lipgloss.NewStyle().Foreground(pair.Secondary),
		Prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(pair.Primary),
		Cursor: lipgloss.NewStyle().Reverse(true),
	}
}
