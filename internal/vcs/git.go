// Package vcs initializes a git repository in a generated project.
package vcs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
	"github.com/danewalkr/django-bootstrapper/internal/runner"
	"github.com/danewalkr/django-bootstrapper/internal/scaffold"
)

const gitignoreContent = `# Python
__pycache__/
*.py[cod]
*.pyo
*.pyd
.Python
env/
venv/
.venv/
build/
develop-eggs/
dist/
downloads/
eggs/
.eggs/
lib/
lib64/
parts/
sdist/
var/
*.egg-info/
.installed.cfg
*.egg

# Django
*.log
local_settings.py
db.sqlite3
media/

# VSCode
.vscode/

# macOS / Windows
.DS_Store
Thumbs.db
`

// WriteGitignore creates dest/.gitignore unless one already exists.
func WriteGitignore(dest string) error {
	_, err := scaffold.WriteIfAbsent(filepath.Join(dest, defs.GitignoreFile), gitignoreContent)
	return err
}

// Init writes the ignore file and runs git init in dest. The caller
// decides whether a failure aborts the run; for this tool it is logged
// and swallowed.
func Init(ctx context.Context, r runner.Runner, dest string, sink runner.LineSink) error {
	if err := WriteGitignore(dest); err != nil {
		return err
	}
	if _, err := r.Run(ctx, dest, sink, "git", "init"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}
