// Package messages holds the tea.Msg types published to the event loop by
// work that runs outside it.
package messages

import (
	"filescout/internal/jobs"
	"filescout/internal/watch"
)

// JobDoneMsg delivers a job outcome. The navigation state already reflects
// the job when this arrives.
type JobDoneMsg struct {
	jobs.Notification
}

// PreviewLoadedMsg reports that an off-loop preview read finished. Applied
// is false when the selection moved on before it completed.
type PreviewLoadedMsg struct {
	Path    string
	Applied bool
}

// DirectoryChangeMsg reports that the watched directory changed on disk.
type DirectoryChangeMsg struct {
	watch.Change
}

// ClipboardMsg reports the result of copying a path to the clipboard.
type ClipboardMsg struct {
	Text  string
	Error error
}
