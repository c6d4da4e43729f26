// Package logging constructs the process-wide log file as an explicit
// slog.Logger. There is no package-level singleton: the CLI opens the
// logger once at startup and passes it down; tests inject their own.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
)

// Open creates (or appends to) the log file at path and returns a text
// logger writing to it, together with a closer for process shutdown.
// The parent directory is created if needed.
func Open(path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, defs.FilePerm)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, f, nil
}

// DefaultPath returns the log file location under the user's home
// directory (~/.djboot/djboot.log). Falls back to the working directory
// when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(defs.HomeDirName, defs.LogFileName)
	}
	return filepath.Join(home, defs.HomeDirName, defs.LogFileName)
}

// Discard returns a logger that drops all records. Used as the default
// when a component is constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
