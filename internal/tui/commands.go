package tui

import (
	"filescout/internal/jobs"
	"filescout/internal/navigation"
	"filescout/internal/tui/messages"
	"filescout/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// waitForNotification blocks on the job queue and is re-armed after every
// delivery.
func waitForNotification(ch <-chan jobs.Notification) tea.Cmd {
	return func() tea.Msg {
		note, ok := <-ch
		if !ok {
			return nil
		}
		return messages.JobDoneMsg{Notification: note}
	}
}

func waitForChange(ch <-chan watch.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return messages.DirectoryChangeMsg{Change: change}
	}
}

func copyToClipboard(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return messages.ClipboardMsg{Text: text, Error: write(text)}
	}
}

// loadPreview reads a file preview off the event loop.
func loadPreview(nav *navigation.Navigator, req *navigation.PreviewRequest) tea.Cmd {
	return func() tea.Msg {
		return messages.PreviewLoadedMsg{Path: req.Path, Applied: nav.LoadPreview(req)}
	}
}
