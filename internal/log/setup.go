package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup points the package logger at path, creating parent directories as
// needed. An empty path discards all output. The returned closer releases
// the log file.
func Setup(path string, debug, json bool) (io.Closer, error) {
	SetDebug(debug)

	var opts []Option
	if json {
		opts = append(opts, WithJSON())
	}

	if path == "" {
		SetOutput(io.Discard, opts...)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	SetOutput(f, opts...)
	return f, nil
}
