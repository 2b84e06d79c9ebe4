// Package navigation owns the browser's notion of "where the user is": the
// current directory, its parent, the selection and the preview of the
// selected entry. A Navigator is shared between the interactive loop and
// background jobs and serialises every operation behind one mutex.
package navigation

import (
	"time"

	"filescout/pkg/types"
)

// PreviewKind tells which half of a Preview is populated.
type PreviewKind int

const (
	PreviewNone PreviewKind = iota
	PreviewDir
	PreviewFile
)

// Preview is the one-level lookahead for the selected entry: the listing of
// a selected directory, or the text of a selected file.
type Preview struct {
	Kind      PreviewKind
	Target    string
	Listing   []types.FileEntry
	Content   string
	LineCount int
	// Loading is set while a file's content is being read off the loop.
	Loading bool
}

// View is a point-in-time copy of the navigation state. Listings are always
// replaced wholesale and never patched in place, so a View can be read
// without holding the navigator's lock.
type View struct {
	Pwd string
	// Parent is empty when Pwd is the filesystem root.
	Parent string

	Current []types.FileEntry
	// Selected indexes Current, or is -1 when Current is empty.
	Selected int

	ParentListing []types.FileEntry
	// ParentSelected indexes the entry of ParentListing equal to Pwd.
	ParentSelected int

	Preview Preview

	SelectedPath    string
	Permission      string
	SelectedSize    int64
	SelectedModTime time.Time

	LastError error
}

// HasSelection reports whether an entry is selected.
func (v View) HasSelection() bool {
	return v.Selected >= 0 && v.Selected < len(v.Current)
}

// SelectedEntry returns the selected entry.
func (v View) SelectedEntry() (types.FileEntry, bool) {
	if !v.HasSelection() {
		return types.FileEntry{}, false
	}
	return v.Current[v.Selected], true
}

func emptyView() View {
	return View{Selected: -1, ParentSelected: -1}
}

func indexOf(entries []types.FileEntry, path string) int {
	for i, e := range entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

// countLines counts lines the way a text reader does: a trailing newline
// does not start another line and empty content has no lines.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	if s[len(s)-1] != '\n' {
		n++
	}
	return n
}
