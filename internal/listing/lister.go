// Package listing enumerates a single directory level into the ordered
// entries shown by the browser panes.
package listing

import (
	"os"
	"path/filepath"
	"strings"

	"filescout/internal/log"
	"filescout/pkg/types"

	"github.com/gobwas/glob"
)

// Options controls which entries a Lister reports.
type Options struct {
	// Ignore holds glob patterns matched against entry base names.
	Ignore []string
	// HideDotfiles drops entries whose name starts with a dot.
	HideDotfiles bool
}

// Lister enumerates directories. The zero value lists everything.
type Lister struct {
	ignore       []glob.Glob
	hideDotfiles bool
}

// New compiles the ignore patterns in opts.
func New(opts Options) (*Lister, error) {
	l := &Lister{hideDotfiles: opts.HideDotfiles}
	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		l.ignore = append(l.ignore, g)
	}
	return l, nil
}

// List returns the entries of path, directories first and then everything
// else, each group in enumeration order. Listing is best-effort: entries
// that cannot be classified are skipped and a directory that cannot be read
// yields whatever was enumerated before the failure.
func (l *Lister) List(path string) []types.FileEntry {
	return l.ListKeeping(path, "")
}

// ListKeeping is List, except that the entry whose full path is keep is
// never dropped by the ignore patterns or the dotfile filter.
func (l *Lister) ListKeeping(path, keep string) []types.FileEntry {
	entries, err := os.ReadDir(path)
	if err != nil {
		log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("partial directory listing")
	}

	var dirs, files []types.FileEntry
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(path, name)
		if full != keep && l.skip(name) {
			continue
		}
		kind, ok := Classify(full)
		if !ok {
			continue
		}
		fe := types.FileEntry{Path: full, Kind: kind}
		if kind == types.KindDir {
			dirs = append(dirs, fe)
		} else {
			files = append(files, fe)
		}
	}
	return append(dirs, files...)
}

func (l *Lister) skip(name string) bool {
	if l == nil {
		return false
	}
	if l.hideDotfiles && strings.HasPrefix(name, ".") {
		return true
	}
	for _, g := range l.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Classify stats path, following symlinks. An entry that exists but whose
// target cannot be resolved is KindOther; ok is false only when the entry
// itself cannot be inspected.
func Classify(path string) (kind types.EntryKind, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		if _, lerr := os.Lstat(path); lerr != nil {
			return types.KindOther, false
		}
		return types.KindOther, true
	}
	switch {
	case info.IsDir():
		return types.KindDir, true
	case info.Mode().IsRegular():
		return types.KindFile, true
	default:
		return types.KindOther, true
	}
}
