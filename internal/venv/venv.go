// Package venv provisions an isolated Python environment and installs
// Django into it through the command runner.
package venv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
	"github.com/danewalkr/django-bootstrapper/internal/logging"
	"github.com/danewalkr/django-bootstrapper/internal/runner"
)

// Provisioner creates virtualenvs and installs packages. All external
// work goes through the injected Runner, so tests can fake it.
type Provisioner struct {
	runner runner.Runner
	logger *slog.Logger
}

// New creates a Provisioner. A nil logger discards log records.
func New(r runner.Runner, logger *slog.Logger) *Provisioner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Provisioner{runner: r, logger: logger}
}

// DefaultPython locates a system Python executable on PATH.
func DefaultPython() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no python executable found on PATH")
}

// PythonPath returns the interpreter path inside dest's virtualenv.
func PythonPath(dest string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dest, defs.VenvDir, "Scripts", "python.exe")
	}
	return filepath.Join(dest, defs.VenvDir, "bin", "python")
}

// Ensure creates dest/.venv using basePython (discovered on PATH when
// empty) unless it already exists. It returns the interpreter path
// inside the environment and whether creation actually ran.
func (p *Provisioner) Ensure(ctx context.Context, dest, basePython string, sink runner.LineSink) (string, bool, error) {
	venvDir := filepath.Join(dest, defs.VenvDir)
	if _, err := os.Stat(venvDir); err == nil {
		p.logger.Info("virtualenv already exists", "path", venvDir)
		return PythonPath(dest), false, nil
	}

	if basePython == "" {
		found, err := DefaultPython()
		if err != nil {
			return "", false, err
		}
		basePython = found
	}

	if _, err := p.runner.Run(ctx, "", sink, basePython, "-m", "venv", venvDir); err != nil {
		return "", false, fmt.Errorf("create virtualenv: %w", err)
	}
	p.logger.Info("virtualenv created", "path", venvDir)
	return PythonPath(dest), true, nil
}

// InstallDjango upgrades pip, then installs Django at the pinned
// version when one is given, latest otherwise. A single attempt each;
// network failures surface to the caller.
func (p *Provisioner) InstallDjango(ctx context.Context, python, version string, sink runner.LineSink) error {
	if _, err := p.runner.Run(ctx, "", sink, python, "-m", "pip", "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("upgrade pip: %w", err)
	}
	pkg := "django"
	if version != "" {
		pkg = "django==" + version
	}
	if _, err := p.runner.Run(ctx, "", sink, python, "-m", "pip", "install", pkg); err != nil {
		return fmt.Errorf("install %s: %w", pkg, err)
	}
	return nil
}

// Freeze returns the pip freeze output for the given interpreter.
func (p *Provisioner) Freeze(ctx context.Context, python string, sink runner.LineSink) (string, error) {
	out, err := p.runner.Run(ctx, "", sink, python, "-m", "pip", "freeze")
	if err != nil {
		return "", fmt.Errorf("pip freeze: %w", err)
	}
	return out, nil
}
