package navigation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"filescout/internal/analysis"
	"filescout/internal/errors"
	"filescout/internal/listing"
	"filescout/internal/log"
	"filescout/pkg/types"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultPreviewLimit caps how much of a file is read for the preview pane.
const DefaultPreviewLimit = 1 << 20

// Options configures a Navigator.
type Options struct {
	Lister       *listing.Lister
	PreviewLimit int64
}

// Navigator is the shared navigation state. All methods are safe for
// concurrent use; each one is atomic with respect to the others.
type Navigator struct {
	mu  sync.Mutex
	st  View
	gen uint64

	lister       *listing.Lister
	analyzer     *analysis.Engine
	previewLimit int64
}

// PreviewRequest is returned by MoveSelection when the new selection is a
// file whose content still has to be read. Pass it to LoadPreview from a
// goroutine other than the interactive loop.
type PreviewRequest struct {
	Path string
	gen  uint64
}

// New creates a Navigator with no current directory. Call Enter before use.
func New(opts Options) *Navigator {
	if opts.Lister == nil {
		opts.Lister = &listing.Lister{}
	}
	if opts.PreviewLimit <= 0 {
		opts.PreviewLimit = DefaultPreviewLimit
	}
	return &Navigator{
		st:           emptyView(),
		lister:       opts.Lister,
		analyzer:     analysis.New(),
		previewLimit: opts.PreviewLimit,
	}
}

// Snapshot returns a copy of the current state for rendering.
func (n *Navigator) Snapshot() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.st
}

// Pwd returns the current directory.
func (n *Navigator) Pwd() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.st.Pwd
}

// Selected returns the selected entry, if any.
func (n *Navigator) Selected() (types.FileEntry, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.st.SelectedEntry()
}

// SetError records err as the most recent failure. A nil err is ignored;
// only a selection change resets it.
func (n *Navigator) SetError(err error) {
	if err == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.st.LastError = err
}

// Enter makes path the current directory and selects index, or the first
// entry when index is negative. The index is clamped to the listing. Failing
// to resolve path is returned and leaves the state untouched.
func (n *Navigator) Enter(path string, index int) error {
	pwd, err := canonicalize(path)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enterLocked(pwd, index, "")
	return nil
}

// Refresh re-enumerates the current directory keeping the selected index.
func (n *Navigator) Refresh() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.st.Pwd == "" {
		return
	}
	n.enterLocked(n.st.Pwd, n.st.Selected, "")
}

// RefreshAt re-enumerates the current directory selecting index.
func (n *Navigator) RefreshAt(index int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.st.Pwd == "" {
		return
	}
	n.enterLocked(n.st.Pwd, index, "")
}

// MoveSelection moves the selection one step, clamped at both ends, and
// clears the recorded error. When the new selection is a file its content
// is not read here; the returned request must be passed to LoadPreview.
func (n *Navigator) MoveSelection(dir types.Direction) *PreviewRequest {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.st.LastError = nil
	if len(n.st.Current) == 0 {
		return nil
	}

	idx := n.st.Selected
	switch dir {
	case types.Next:
		if idx < len(n.st.Current)-1 {
			idx++
		}
	case types.Previous:
		if idx > 0 {
			idx--
		}
	}
	if idx == n.st.Selected {
		return nil
	}

	n.st.Selected = idx
	n.gen++
	return n.selectLocked(&n.st, true)
}

// LoadPreview reads the file named by req outside the lock and publishes it
// if the selection has not changed in the meantime. It reports whether the
// result was applied.
func (n *Navigator) LoadPreview(req *PreviewRequest) bool {
	if req == nil {
		return false
	}
	content, err := n.readPreview(req.Path)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.gen != req.gen || n.st.SelectedPath != req.Path {
		return false
	}
	n.st.Preview = Preview{
		Kind:      PreviewFile,
		Target:    req.Path,
		Content:   content,
		LineCount: countLines(content),
	}
	if err != nil {
		n.st.LastError = err
	}
	return true
}

// Descend enters the selected directory. Selecting anything else is a no-op.
func (n *Navigator) Descend() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry, ok := n.st.SelectedEntry()
	if !ok || !entry.IsDir() {
		return nil
	}
	pwd, err := canonicalize(entry.Path)
	if err != nil {
		n.st.LastError = err
		return err
	}
	n.st.LastError = nil
	n.enterLocked(pwd, -1, "")
	return nil
}

// Ascend enters the parent directory with the directory just left selected.
// At the filesystem root it does nothing.
func (n *Navigator) Ascend() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.st.Parent == "" {
		return nil
	}
	if _, err := os.Stat(n.st.Parent); err != nil {
		err = errors.FromOS("enter directory", n.st.Parent, err)
		n.st.LastError = err
		return err
	}
	n.st.LastError = nil
	n.enterLocked(n.st.Parent, n.st.ParentSelected, n.st.Pwd)
	return nil
}

// Create makes an empty file called name in the current directory. It does
// not select the new file; refresh to see it.
func (n *Navigator) Create(name string) error {
	pwd := n.Pwd()
	if err := validName(name); err != nil {
		n.SetError(err)
		return err
	}

	path := filepath.Join(pwd, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		err = errors.FromOS("create file", path, err)
		n.SetError(err)
		return err
	}
	if err := f.Close(); err != nil {
		err = errors.FromOS("create file", path, err)
		n.SetError(err)
		return err
	}
	log.LogWithFields(log.F("path", path)).Info("created file")
	return nil
}

// Rename gives the entry at path a new name in the same directory. Callers
// pass the path they captured when the rename began, so a refresh in the
// meantime cannot redirect it. An empty path means nothing was selected.
func (n *Navigator) Rename(path, newName string) error {
	if path == "" {
		n.SetError(errors.ErrNotSelected)
		return errors.ErrNotSelected
	}
	if err := validName(newName); err != nil {
		n.SetError(err)
		return err
	}

	target := filepath.Join(filepath.Dir(path), newName)
	if target == path {
		return nil
	}
	if _, err := os.Lstat(target); err == nil {
		err := errors.NewFileError("rename", target, errors.AlreadyExists, os.ErrExist)
		n.SetError(err)
		return err
	}
	if err := os.Rename(path, target); err != nil {
		err = errors.FromOS("rename", path, err)
		n.SetError(err)
		return err
	}
	log.LogWithFields(log.F("from", path), log.F("to", target)).Info("renamed entry")
	return nil
}

// Delete removes the selected entry, recursively for directories. It
// returns the index to refresh at so the selection stays put visually after
// the listing shrinks.
func (n *Navigator) Delete() (int, error) {
	n.mu.Lock()
	entry, ok := n.st.SelectedEntry()
	idx := n.st.Selected
	n.mu.Unlock()

	if !ok {
		n.SetError(errors.ErrNotSelected)
		return 0, errors.ErrNotSelected
	}
	next := idx - 1
	if next < 0 {
		next = 0
	}

	if _, err := os.Lstat(entry.Path); err != nil {
		err = errors.FromOS("delete", entry.Path, err)
		n.SetError(err)
		return next, err
	}
	if err := os.RemoveAll(entry.Path); err != nil {
		err = errors.FromOS("delete", entry.Path, err)
		n.SetError(err)
		return next, err
	}
	log.LogWithFields(log.F("path", entry.Path)).Info("deleted entry")
	return next, nil
}

// WriteFile replaces the bytes of the file at path with content.
func (n *Navigator) WriteFile(path, content string) error {
	if path == "" {
		n.SetError(errors.ErrNotSelected)
		return errors.ErrNotSelected
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		err = errors.FromOS("write file", path, err)
		n.SetError(err)
		return err
	}
	return nil
}

// ReadFile returns the full text of the file at path. Content that is not
// valid UTF-8 is refused.
func (n *Navigator) ReadFile(path string) (string, error) {
	if path == "" {
		n.SetError(errors.ErrNotSelected)
		return "", errors.ErrNotSelected
	}
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.FromOS("read file", path, err)
		n.SetError(err)
		return "", err
	}
	if !utf8.Valid(data) {
		err := errors.NewFileError("not a text file", path, errors.InvalidOperation, nil)
		n.SetError(err)
		return "", err
	}
	return string(data), nil
}

// enterLocked rebuilds the whole state for pwd. The recorded error is kept.
// keep, when set, names an entry of pwd that the listing filters must not
// hide; pwd itself is always kept in the parent listing.
func (n *Navigator) enterLocked(pwd string, index int, keep string) {
	st := emptyView()
	st.Pwd = pwd
	st.LastError = n.st.LastError

	if parent := filepath.Dir(pwd); parent != pwd {
		st.Parent = parent
		st.ParentListing = n.lister.ListKeeping(parent, pwd)
		st.ParentSelected = indexOf(st.ParentListing, pwd)
	}

	st.Current = n.lister.ListKeeping(pwd, keep)
	n.gen++
	if len(st.Current) > 0 {
		if index < 0 {
			index = 0
		}
		if index >= len(st.Current) {
			index = len(st.Current) - 1
		}
		st.Selected = index
		n.selectLocked(&st, false)
	}
	n.st = st

	log.LogWithFields(log.F("pwd", pwd), log.F("entries", len(st.Current)), log.F("selected", st.Selected)).
		Debug("entered directory")
}

// selectLocked recomputes everything derived from st.Selected. File content
// is read in place unless async is set, in which case a request is returned.
func (n *Navigator) selectLocked(st *View, async bool) *PreviewRequest {
	entry := st.Current[st.Selected]
	st.SelectedPath = entry.Path
	st.SelectedSize = 0
	st.SelectedModTime = time.Time{}
	if info, err := os.Stat(entry.Path); err == nil {
		st.SelectedSize = info.Size()
		st.SelectedModTime = info.ModTime()
	}

	badge, err := listing.Badge(entry.Path)
	if err != nil {
		st.LastError = errors.FromOS("stat", entry.Path, err)
	}
	st.Permission = badge

	switch entry.Kind {
	case types.KindDir:
		st.Preview = Preview{
			Kind:    PreviewDir,
			Target:  entry.Path,
			Listing: n.lister.List(entry.Path),
		}
	case types.KindFile:
		if async {
			st.Preview = Preview{Kind: PreviewFile, Target: entry.Path, Loading: true}
			return &PreviewRequest{Path: entry.Path, gen: n.gen}
		}
		content, err := n.readPreview(entry.Path)
		st.Preview = Preview{
			Kind:      PreviewFile,
			Target:    entry.Path,
			Content:   content,
			LineCount: countLines(content),
		}
		if err != nil {
			st.LastError = err
		}
	default:
		st.Preview = Preview{}
	}
	return nil
}

// readPreview reads at most previewLimit bytes of path. Content that does
// not look like text is refused rather than shown as garbage.
func (n *Navigator) readPreview(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.FromOS("read file", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, n.previewLimit))
	if err != nil {
		return "", errors.FromOS("read file", path, err)
	}

	if !isText(data) {
		if summary, ok := n.analyzer.Summary(path, data); ok {
			return summary, nil
		}
		mtype := mimetype.Detect(data)
		return "", errors.NewFileError("cannot preview binary file", path, errors.InvalidOperation,
			fmt.Errorf("%s", mtype.String()))
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

func isText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.NewFileError("enter directory", path, errors.InvalidPath, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.FromOS("enter directory", path, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.FromOS("enter directory", path, err)
	}
	if !info.IsDir() {
		return "", errors.NewFileError("not a directory", path, errors.InvalidPath, nil)
	}
	return resolved, nil
}

func validName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.NewFileError("invalid name", name, errors.InvalidPath, nil)
	case strings.ContainsRune(name, filepath.Separator), strings.ContainsRune(name, '/'):
		return errors.NewFileError("name must not contain a path separator", name, errors.InvalidPath, nil)
	}
	return nil
}
