// Package jobs runs encrypt and decrypt transforms off the interactive loop
// and reports each outcome exactly once through a bounded Notifier.
package jobs

import (
	"path/filepath"
	"strings"

	"filescout/internal/errors"
	"filescout/pkg/types"

	"github.com/google/uuid"
)

// DefaultSuffix is appended to encrypted file names.
const DefaultSuffix = ".enc"

// Kind selects the transform a job runs.
type Kind int

const (
	Seal Kind = iota
	Open
)

func (k Kind) String() string {
	if k == Open {
		return "decrypt"
	}
	return "encrypt"
}

// Job is one immutable transform request.
type Job struct {
	ID     uuid.UUID
	Source string
	Dest   string
	Kind   Kind
}

// NewJob builds a job with a fresh ID.
func NewJob(kind Kind, source, dest string) Job {
	return Job{ID: uuid.New(), Source: source, Dest: dest, Kind: kind}
}

// EncryptJob plans encrypting entry next to itself under name+suffix.
func EncryptJob(entry types.FileEntry, suffix string) (Job, error) {
	if !entry.IsFile() {
		return Job{}, errors.NewFileError("can only encrypt files", entry.Path, errors.InvalidOperation, nil)
	}
	return NewJob(Seal, entry.Path, entry.Path+suffix), nil
}

// DecryptJob plans decrypting entry next to itself with suffix removed.
func DecryptJob(entry types.FileEntry, suffix string) (Job, error) {
	if !entry.IsFile() {
		return Job{}, errors.NewFileError("can only decrypt files", entry.Path, errors.InvalidOperation, nil)
	}
	name := filepath.Base(entry.Path)
	if !strings.HasSuffix(name, suffix) || len(name) == len(suffix) {
		return Job{}, errors.NewFileError("not an encrypted file (expected "+suffix+" suffix)", entry.Path, errors.InvalidOperation, nil)
	}
	dest := filepath.Join(filepath.Dir(entry.Path), strings.TrimSuffix(name, suffix))
	return NewJob(Open, entry.Path, dest), nil
}
