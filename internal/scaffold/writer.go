// Package scaffold generates and patches the files of a new Django
// project: settings.py registration, urls/views source, landing
// templates, and static assets.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
)

// WriteIfAbsent writes content to path unless the file already exists.
// Parent directories are created as needed. The boolean reports whether
// the file was written; an existing file is a no-op, not an error, so
// hand-edited files survive re-runs.
func WriteIfAbsent(path, content string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return false, fmt.Errorf("create parent of %s: %w", path, err)
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), defs.FilePerm); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// WriteWithBackup writes content to path unconditionally. When the file
// already exists it is first copied to a ".bak" sibling. Used only for
// files this tool fully owns (routing and view files).
func WriteWithBackup(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}
	if prev, err := os.ReadFile(path); err == nil {
		backup := path + defs.BackupSuffix
		if err := os.WriteFile(backup, prev, defs.FilePerm); err != nil {
			return fmt.Errorf("back up %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
