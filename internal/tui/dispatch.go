package tui

import (
	"filescout/internal/errors"
	"filescout/internal/jobs"
	"filescout/internal/tui/styles"
	"filescout/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handler processes one key in one view mode.
type handler func(m *Model, msg tea.KeyMsg) tea.Cmd

// handleGlobal runs the commands shared by ListView and ContentView. It
// reports whether the key was consumed.
func (m *Model) handleGlobal(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.exit = true
		return true, nil

	case key.Matches(msg, m.keys.Rename):
		entry, ok := m.nav.Selected()
		if !ok {
			m.nav.SetError(errors.ErrNotSelected)
			return true, nil
		}
		m.target = entry.Path
		m.mode = types.Rename
		return true, m.prompt.Open(" Rename ", entry.Name())

	case key.Matches(msg, m.keys.Create):
		m.mode = types.Create
		return true, m.prompt.Open(" New File ", "")

	case key.Matches(msg, m.keys.Open):
		entry, ok := m.nav.Selected()
		if !ok {
			m.nav.SetError(errors.ErrNotSelected)
			return true, nil
		}
		content, err := m.nav.ReadFile(entry.Path)
		if err != nil {
			return true, nil
		}
		m.buffer.Load(content)
		m.target = entry.Path
		m.mode = types.FileEdit
		return true, nil

	case key.Matches(msg, m.keys.Encrypt):
		return true, m.submit(jobs.EncryptJob)

	case key.Matches(msg, m.keys.Decrypt):
		return true, m.submit(jobs.DecryptJob)

	case key.Matches(msg, m.keys.Delete):
		idx, err := m.nav.Delete()
		if err == nil {
			m.nav.RefreshAt(idx)
		}
		if entry, ok := m.nav.Selected(); m.mode == types.ContentView && (!ok || !entry.IsFile()) {
			m.toListView()
		}
		return true, nil

	case key.Matches(msg, m.keys.Color):
		m.palette = (m.palette + 1) % len(styles.Palette)
		return true, nil

	case key.Matches(msg, m.keys.Yank):
		entry, ok := m.nav.Selected()
		if !ok {
			m.nav.SetError(errors.ErrNotSelected)
			return true, nil
		}
		return true, copyToClipboard(m.clipboard, entry.Path)

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return true, nil
	}
	return false, nil
}

// submit plans a job for the selection and starts it.
func (m *Model) submit(plan func(types.FileEntry, string) (jobs.Job, error)) tea.Cmd {
	entry, ok := m.nav.Selected()
	if !ok {
		m.nav.SetError(errors.ErrNotSelected)
		return nil
	}
	job, err := plan(entry, m.suffix)
	if err != nil {
		m.nav.SetError(err)
		return nil
	}
	m.runner.Submit(job)
	m.statusBar.SetJobs(m.inFlight())
	return m.statusBar.Tick()
}

func (m *Model) handleListView(msg tea.KeyMsg) tea.Cmd {
	if done, cmd := m.handleGlobal(msg); done {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		if entry, ok := m.nav.Selected(); ok && entry.IsFile() {
			m.mode = types.ContentView
			m.scrollX, m.scrollY = 0, 0
		}
	case key.Matches(msg, m.keys.Down):
		return m.move(types.Next)
	case key.Matches(msg, m.keys.Up):
		return m.move(types.Previous)
	case key.Matches(msg, m.keys.Right):
		_ = m.nav.Descend()
	case key.Matches(msg, m.keys.Left):
		_ = m.nav.Ascend()
	}
	return nil
}

func (m *Model) move(dir types.Direction) tea.Cmd {
	req := m.nav.MoveSelection(dir)
	if req == nil {
		return nil
	}
	return loadPreview(m.nav, req)
}

func (m *Model) handleContentView(msg tea.KeyMsg) tea.Cmd {
	if done, cmd := m.handleGlobal(msg); done {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.toListView()
	case key.Matches(msg, m.keys.Down):
		if m.scrollY < m.nav.Snapshot().Preview.LineCount-1 {
			m.scrollY++
		}
	case key.Matches(msg, m.keys.Up):
		if m.scrollY > 0 {
			m.scrollY--
		}
	case key.Matches(msg, m.keys.Right):
		m.scrollX++
	case key.Matches(msg, m.keys.Left):
		if m.scrollX > 0 {
			m.scrollX--
		}
	}
	return nil
}

func (m *Model) handleFileEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Save):
		if err := m.nav.WriteFile(m.target, m.buffer.Content()); err == nil {
			m.statusBar.SetNotice("Saved")
		}
		m.nav.Refresh()
		m.buffer.Reset()
		m.toListView()
	case key.Matches(msg, m.keys.Cancel):
		m.buffer.Reset()
		m.toListView()
	case key.Matches(msg, m.keys.Commit):
		m.buffer.InsertNewline()
	case key.Matches(msg, m.keys.Backspace):
		m.buffer.DeleteBeforeCursor()
	case key.Matches(msg, m.keys.Tab):
		m.buffer.Insert(' ')
	case key.Matches(msg, m.keys.Up):
		m.buffer.Move(types.Up)
	case key.Matches(msg, m.keys.Down):
		m.buffer.Move(types.Down)
	case key.Matches(msg, m.keys.Left):
		m.buffer.Move(types.Left)
	case key.Matches(msg, m.keys.Right):
		m.buffer.Move(types.Right)
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		for _, r := range msg.Runes {
			switch r {
			case '\n', '\r':
				m.buffer.InsertNewline()
			case '\t':
				m.buffer.Insert(' ')
			default:
				m.buffer.Insert(r)
			}
		}
	}
	return nil
}

func (m *Model) handlePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Commit):
		name := m.prompt.Value()
		if m.mode == types.Rename {
			_ = m.nav.Rename(m.target, name)
		} else {
			_ = m.nav.Create(name)
		}
		m.prompt.Close()
		m.target = ""
		m.nav.Refresh()
		m.mode = types.ListView
		return nil
	case key.Matches(msg, m.keys.Discard):
		m.prompt.Close()
		m.target = ""
		m.mode = types.ListView
		return nil
	case key.Matches(msg, m.keys.Backspace), msg.Type == tea.KeyRunes, msg.Type == tea.KeySpace:
		// The cursor stays at the end: names are typed and erased from the
		// right only.
		return m.prompt.Update(msg)
	}
	return nil
}

func (m *Model) toListView() {
	m.target = ""
	m.mode = types.ListView
	m.scrollX, m.scrollY = 0, 0
}
