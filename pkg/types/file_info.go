package types

import (
	"path/filepath"
)

// EntryKind classifies a directory entry. It is derived from the filesystem
// when a listing is taken and is not refreshed afterwards.
type EntryKind int

const (
	// KindOther covers anything that is neither a directory nor a regular
	// file, including symlinks whose target cannot be resolved.
	KindOther EntryKind = iota
	KindDir
	KindFile
)

func (k EntryKind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "other"
	}
}

// FileEntry is one entry of a directory listing.
type FileEntry struct {
	Path string
	Kind EntryKind
}

// Name returns the base name of the entry
func (f FileEntry) Name() string {
	return filepath.Base(f.Path)
}

func (f FileEntry) IsDir() bool {
	return f.Kind == KindDir
}

func (f FileEntry) IsFile() bool {
	return f.Kind == KindFile
}
