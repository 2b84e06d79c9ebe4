package main

import (
	"fmt"
	"sync"

	"filescout/internal/errors"
	"filescout/internal/jobs"
	"filescout/internal/listing"
	"filescout/pkg/types"

	"github.com/spf13/cobra"
)

// batchState collects job failures for the command line, where there is no
// listing to refresh.
type batchState struct {
	mu   sync.Mutex
	errs []error
}

func (s *batchState) Refresh() {}

func (s *batchState) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func newEncryptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt FILE...",
		Short: "Encrypt files without opening the browser",
		Long: `Encrypt each FILE with AES-256-GCM. The result is written next to the
original with the configured suffix appended; the original is kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args, jobs.EncryptJob)
		},
	}
}

func newDecryptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt FILE...",
		Short: "Decrypt files without opening the browser",
		Long: `Decrypt each FILE, which must carry the configured suffix. The result is
written next to it with the suffix removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args, jobs.DecryptJob)
		},
	}
}

// runBatch plans one job per path, runs them all and prints one line per
// notification.
func runBatch(cmd *cobra.Command, opts *rootOptions, paths []string, plan func(types.FileEntry, string) (jobs.Job, error)) error {
	cfg, closer, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	planned := make([]jobs.Job, 0, len(paths))
	for _, path := range paths {
		kind, ok := listing.Classify(path)
		if !ok {
			return errors.NewFileError("cannot access file", path, errors.FileNotFound, nil)
		}
		job, err := plan(types.FileEntry{Path: path, Kind: kind}, cfg.Crypto.Suffix)
		if err != nil {
			return err
		}
		planned = append(planned, job)
	}

	key, err := loadKey(cfg, opts)
	if err != nil {
		return err
	}

	state := &batchState{}
	notifier := jobs.NewNotifier(len(planned))
	runner := jobs.NewRunner(state, notifier, key, nil)
	for _, job := range planned {
		runner.Submit(job)
	}
	runner.Wait()
	notifier.Close()

	out := cmd.OutOrStdout()
	for note := range notifier.C() {
		if note.Success() {
			fmt.Fprintln(out, success(fmt.Sprintf("%s: %s -> %s", note.Message, note.Source, note.Dest)))
		} else {
			fmt.Fprintln(out, failure(fmt.Sprintf("%s: %s: %v", note.Message, note.Source, note.Err)))
		}
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if n := len(state.errs); n > 0 {
		return errors.Newf("%d of %d files failed", n, len(planned))
	}
	return nil
}
