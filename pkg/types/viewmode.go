package types

// ViewMode is the interaction state that decides how key events are routed.
type ViewMode int

const (
	// ListView is the default mode for browsing the three panes
	ListView ViewMode = iota
	// ContentView shows the selected file read-only with its own scroll offsets
	ContentView
	// FileEdit routes keys into the edit buffer
	FileEdit
	// Rename prompts for a new name for the selected entry
	Rename
	// Create prompts for the name of a new empty file
	Create
)

func (m ViewMode) String() string {
	switch m {
	case ContentView:
		return "content"
	case FileEdit:
		return "edit"
	case Rename:
		return "rename"
	case Create:
		return "create"
	default:
		return "list"
	}
}

// CapturesText reports whether the mode consumes character keys for its own
// text entry, which disables the global single-key commands.
func (m ViewMode) CapturesText() bool {
	return m == FileEdit || m == Rename || m == Create
}

// Direction is a one-step movement used by selection and cursor moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Next and Previous name the selection directions used by the current pane.
const (
	Previous = Up
	Next     = Down
)
