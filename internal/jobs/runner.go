package jobs

import (
	"sync"
	"sync/atomic"

	"filescout/internal/crypto"
	"filescout/internal/errors"
	"filescout/internal/log"
)

// State is the part of the navigation state a job touches when it finishes.
type State interface {
	Refresh()
	SetError(err error)
}

// Runner spawns one goroutine per job. Jobs are never cancelled and are not
// limited in number; they interact only through State.
type Runner struct {
	state    State
	notifier *Notifier
	key      []byte
	keyErr   error

	inFlight atomic.Int64
	wg       sync.WaitGroup
}

// NewRunner creates a runner. A nil key makes every job fail with keyErr,
// or ErrNoKey when keyErr is nil.
func NewRunner(state State, notifier *Notifier, key []byte, keyErr error) *Runner {
	if key == nil && keyErr == nil {
		keyErr = errors.ErrNoKey
	}
	return &Runner{state: state, notifier: notifier, key: key, keyErr: keyErr}
}

// Notifier returns the queue outcomes are delivered on.
func (r *Runner) Notifier() *Notifier {
	return r.notifier
}

// InFlight is the number of jobs that have not finished yet.
func (r *Runner) InFlight() int {
	return int(r.inFlight.Load())
}

// Submit starts job in the background and returns immediately.
func (r *Runner) Submit(job Job) {
	r.inFlight.Add(1)
	r.wg.Add(1)
	log.LogWithFields(log.F("job", job.ID), log.F("kind", job.Kind), log.F("source", job.Source)).
		Debug("job submitted")
	go func() {
		defer r.wg.Done()
		r.run(job)
	}()
}

// Wait blocks until every submitted job has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(job Job) {
	err := r.transform(job)

	// The state change lands before the notification is sent.
	if err == nil {
		r.state.Refresh()
	} else {
		r.state.SetError(err)
	}
	r.inFlight.Add(-1)

	note := Notification{
		JobID:   job.ID,
		Kind:    job.Kind,
		Source:  job.Source,
		Dest:    job.Dest,
		Message: message(job.Kind, err),
		Err:     err,
	}
	fields := []log.Field{log.F("job", job.ID), log.F("kind", job.Kind), log.F("dest", job.Dest)}
	if err != nil {
		log.LogWithFields(append(fields, log.F("error", err))...).Warn("job failed")
	} else {
		log.LogWithFields(fields...).Info("job completed")
	}

	if !r.notifier.Send(note) {
		r.state.SetError(errors.NewKind(errors.NotifyFailed, "failed to refresh"))
		log.LogWithFields(fields...).Warn("notification dropped")
	}
}

func (r *Runner) transform(job Job) error {
	if r.key == nil {
		return r.keyErr
	}
	if job.Kind == Open {
		return crypto.DecryptFile(r.key, job.Source, job.Dest)
	}
	return crypto.EncryptFile(r.key, job.Source, job.Dest)
}

func message(kind Kind, err error) string {
	switch {
	case kind == Seal && err == nil:
		return "File Encryption completed"
	case kind == Seal:
		return "Failed to Encrypt file"
	case err == nil:
		return "File Decryption completed"
	default:
		return "Failed to Decrypt file"
	}
}
