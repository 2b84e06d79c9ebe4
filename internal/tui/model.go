// Package tui is the interactive front end: a bubbletea model whose key
// handling is an explicit state machine over types.ViewMode.
package tui

import (
	"filescout/internal/editor"
	"filescout/internal/jobs"
	"filescout/internal/log"
	"filescout/internal/navigation"
	"filescout/internal/tui/components"
	"filescout/internal/tui/messages"
	"filescout/internal/tui/styles"
	"filescout/internal/tui/views"
	"filescout/internal/watch"
	"filescout/pkg/types"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options wires the model to its collaborators.
type Options struct {
	Navigator *navigation.Navigator
	Runner    *jobs.Runner
	// Watcher is optional; without it the listing refreshes only on demand.
	Watcher *watch.Watcher
	// Suffix marks encrypted files.
	Suffix  string
	Palette int
	// Clipboard replaces the system clipboard, mainly for tests.
	Clipboard func(string) error
}

type Model struct {
	nav     *navigation.Navigator
	runner  *jobs.Runner
	watcher *watch.Watcher
	suffix  string

	keys     types.KeyMap
	handlers map[types.ViewMode]handler
	mode     types.ViewMode

	buffer    *editor.Buffer
	prompt    *components.Prompt
	statusBar *components.StatusBar
	// target is the file the buffer or the rename prompt acts on, fixed when
	// editing or renaming starts.
	target string

	scrollX, scrollY int
	palette          int
	showHelp         bool
	exit             bool
	width, height    int

	watchedDir string
	clipboard  func(string) error
}

func New(opts Options) *Model {
	if opts.Suffix == "" {
		opts.Suffix = jobs.DefaultSuffix
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	m := &Model{
		nav:       opts.Navigator,
		runner:    opts.Runner,
		watcher:   opts.Watcher,
		suffix:    opts.Suffix,
		keys:      types.DefaultKeyMap(),
		mode:      types.ListView,
		buffer:    editor.New(""),
		prompt:    components.NewPrompt(),
		statusBar: components.NewStatusBar(),
		palette:   ((opts.Palette % len(styles.Palette)) + len(styles.Palette)) % len(styles.Palette),
		width:     defaultWidth,
		height:    defaultHeight,
		clipboard: opts.Clipboard,
	}
	m.handlers = map[types.ViewMode]handler{
		types.ListView:    (*Model).handleListView,
		types.ContentView: (*Model).handleContentView,
		types.FileEdit:    (*Model).handleFileEdit,
		types.Rename:      (*Model).handlePrompt,
		types.Create:      (*Model).handlePrompt,
	}
	m.syncWatcher()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.runner != nil {
		cmds = append(cmds, waitForNotification(m.runner.Notifier().C()))
	}
	if m.watcher != nil && m.watcher.IsRunning() {
		cmds = append(cmds, waitForChange(m.watcher.Changes()))
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model
func (m *Model) View() string {
	if m.exit {
		return ""
	}
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case messages.JobDoneMsg:
		m.statusBar.SetNotice(msg.Message)
		m.statusBar.SetJobs(m.inFlight())
		if m.runner == nil {
			return m, nil
		}
		return m, waitForNotification(m.runner.Notifier().C())

	case messages.PreviewLoadedMsg:
		return m, nil

	case messages.DirectoryChangeMsg:
		if msg.Dir == m.nav.Pwd() {
			m.nav.Refresh()
		}
		if m.watcher == nil {
			return m, nil
		}
		return m, waitForChange(m.watcher.Changes())

	case messages.ClipboardMsg:
		if msg.Error != nil {
			m.nav.SetError(msg.Error)
		} else {
			m.statusBar.SetNotice("Copied " + msg.Text)
		}
		return m, nil

	case spinner.TickMsg:
		m.statusBar.SetJobs(m.inFlight())
		return m, m.statusBar.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	h, ok := m.handlers[m.mode]
	if !ok {
		log.Warnf("no key handler for mode %s", m.mode)
		return nil
	}
	cmd := h(m, msg)
	if m.exit {
		return tea.Quit
	}
	m.syncWatcher()
	return cmd
}

// syncWatcher points the watcher at the current directory after navigation.
func (m *Model) syncWatcher() {
	if m.watcher == nil || m.nav == nil {
		return
	}
	pwd := m.nav.Pwd()
	if pwd == "" || pwd == m.watchedDir {
		return
	}
	if err := m.watcher.SetDirectory(pwd); err != nil {
		log.LogWithFields(log.F("directory", pwd), log.F("error", err)).Debug("cannot watch directory")
		return
	}
	m.watchedDir = pwd
}

func (m *Model) inFlight() int {
	if m.runner == nil {
		return 0
	}
	return m.runner.InFlight()
}

// Getters used by the views

func (m *Model) Snapshot() navigation.View {
	return m.nav.Snapshot()
}

func (m *Model) Mode() types.ViewMode {
	return m.mode
}

func (m *Model) Palette() int {
	return m.palette
}

func (m *Model) Size() (int, int) {
	return m.width, m.height
}

func (m *Model) Scroll() (int, int) {
	return m.scrollX, m.scrollY
}

func (m *Model) EditLines() []string {
	return m.buffer.Lines()
}

func (m *Model) EditCursor() (int, int) {
	return m.buffer.Cursor()
}

func (m *Model) Prompt() *components.Prompt {
	return m.prompt
}

func (m *Model) StatusBar() *components.StatusBar {
	return m.statusBar
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) KeyMap() types.KeyMap {
	return m.keys
}

// Exiting reports whether the quit key was pressed.
func (m *Model) Exiting() bool {
	return m.exit
}
