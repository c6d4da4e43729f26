// Package project orchestrates the full generation sequence: environment
// provisioning, Django's own generators, settings patching, routing and
// asset generation, dependency snapshot, and optional git init.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
	"github.com/danewalkr/django-bootstrapper/internal/logging"
	"github.com/danewalkr/django-bootstrapper/internal/runner"
	"github.com/danewalkr/django-bootstrapper/internal/scaffold"
	"github.com/danewalkr/django-bootstrapper/internal/vcs"
	"github.com/danewalkr/django-bootstrapper/internal/venv"
)

// Options is the full set of caller-supplied parameters for one
// generation run. It is immutable for the run's duration.
type Options struct {
	Destination   string   // Target directory; created if missing.
	ProjectName   string   // Django project name.
	PythonPath    string   // Optional interpreter; ignored when it does not exist.
	Apps          []string // App names, in order. Uniqueness is not enforced.
	DjangoVersion string   // Optional pinned Django version.
	CreateVenv    bool     // Provision dest/.venv and use its interpreter.
	CreateAssets  bool     // Materialize templates/ and static/.
	InitGit       bool     // Run git init with a generated .gitignore.
	DryRun        bool     // Report planned actions without side effects.
}

// Result summarizes a generation run.
type Result struct {
	ProjectDir string   // Absolute destination directory.
	PythonUsed string   // Interpreter the run settled on.
	Warnings   []string // Non-fatal failures, already reported.
}

// Generator runs the scaffolding sequence for one project.
type Generator interface {
	Generate(ctx context.Context, opts Options, rep Reporter) (*Result, error)
}

// generator is the concrete implementation of Generator.
type generator struct {
	runner runner.Runner
	assets fs.FS
	logger *slog.Logger
}

// NewGenerator creates a Generator. assets may be nil, in which case
// the materializer synthesizes fallback files. A nil logger discards
// log records.
func NewGenerator(r runner.Runner, assets fs.FS, logger *slog.Logger) Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &generator{runner: r, assets: assets, logger: logger}
}

// Generate executes the sequence. Environment creation, framework
// install, and project/app creation failures abort the run; the
// dependency snapshot and git init are logged and swallowed. In dry-run
// mode every mutating step is replaced by a description of the action.
func (g *generator) Generate(ctx context.Context, opts Options, rep Reporter) (*Result, error) {
	if rep == nil {
		rep = NopReporter()
	}

	dest, err := filepath.Abs(opts.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolve destination %q: %w", opts.Destination, err)
	}
	if err := os.MkdirAll(dest, defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create destination %s: %w", dest, err)
	}
	rep.Report("📁 Destination: " + dest)
	g.logger.Info("generation started",
		"dest", dest,
		"project", opts.ProjectName,
		"apps", opts.Apps,
		"dryRun", opts.DryRun,
	)

	result := &Result{ProjectDir: dest}
	sink := runner.LineSink(rep.Report)
	prov := venv.New(g.runner, g.logger)

	python := ""
	if opts.PythonPath != "" {
		if _, statErr := os.Stat(opts.PythonPath); statErr == nil {
			python = opts.PythonPath
		}
	}

	// Environment
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.CreateVenv {
		if opts.DryRun {
			rep.Report("[dry-run] would create virtualenv at: " + filepath.Join(dest, defs.VenvDir))
		} else {
			venvPython, created, err := prov.Ensure(ctx, dest, python, sink)
			if err != nil {
				rep.Report("❌ " + err.Error())
				return nil, err
			}
			if created {
				rep.Report("⚙️ Created virtual environment at " + filepath.Join(dest, defs.VenvDir))
			} else {
				rep.Report("ℹ️ .venv already exists, skipping creation.")
			}
			python = venvPython
		}
	}
	if python == "" {
		found, err := venv.DefaultPython()
		if err != nil {
			if !opts.DryRun {
				return nil, err
			}
			found = "python3"
		}
		python = found
	}
	result.PythonUsed = python

	// Framework install and project creation
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.DryRun {
		version := opts.DjangoVersion
		if version == "" {
			version = "latest"
		}
		pkg := "django"
		if opts.DjangoVersion != "" {
			pkg = "django==" + opts.DjangoVersion
		}
		rep.Report(fmt.Sprintf("[dry-run] would install Django (%s) using: %s -m pip install %s", version, python, pkg))
		rep.Report(fmt.Sprintf("[dry-run] would run: %s -m django startproject %s . (cwd=%s)", python, opts.ProjectName, dest))
	} else {
		rep.Report("📦 Installing/ensuring Django...")
		if err := prov.InstallDjango(ctx, python, opts.DjangoVersion, sink); err != nil {
			rep.Report("❌ " + err.Error())
			return nil, err
		}
		rep.Report("✅ Django ready.")

		rep.Report(fmt.Sprintf("🧱 Creating Django project '%s' in %s ...", opts.ProjectName, dest))
		if _, err := g.runner.Run(ctx, dest, sink, python, "-m", "django", "startproject", opts.ProjectName, "."); err != nil {
			rep.Report("❌ " + err.Error())
			return nil, fmt.Errorf("startproject: %w", err)
		}
	}

	// Apps
	managePy := filepath.Join(dest, defs.ManagePy)
	for _, app := range opts.Apps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep.Report(fmt.Sprintf("📁 Creating app '%s' ...", app))
		if opts.DryRun {
			rep.Report(fmt.Sprintf("[dry-run] would run: %s %s startapp %s (cwd=%s)", python, managePy, app, dest))
			continue
		}
		if _, err := g.runner.Run(ctx, dest, sink, python, managePy, "startapp", app); err != nil {
			rep.Report("❌ " + err.Error())
			return nil, fmt.Errorf("startapp %s: %w", app, err)
		}
	}

	// Settings, routing, assets, requirements, git
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	settingsPath := filepath.Join(dest, opts.ProjectName, defs.SettingsPy)
	if opts.DryRun {
		rep.Report("[dry-run] would patch settings.py at: " + settingsPath)
		if len(opts.Apps) > 0 {
			rep.Report("[dry-run] would create project-level urls and app urls for: [" + strings.Join(opts.Apps, ", ") + "]")
		}
		if opts.CreateAssets {
			rep.Report(fmt.Sprintf("[dry-run] would create templates/static at: %s and %s",
				filepath.Join(dest, defs.TemplatesDir), filepath.Join(dest, defs.StaticDir)))
		}
		rep.Report("[dry-run] would write requirements.txt (pip freeze) for python: " + python)
		if opts.InitGit {
			rep.Report("[dry-run] would initialize git in: " + dest)
		}
		rep.Report("🎉 Django project created successfully!")
		return result, nil
	}

	patcher := scaffold.NewSettingsPatcher(g.logger)
	patched, err := patcher.Patch(settingsPath, opts.Apps)
	if err != nil {
		return nil, err
	}
	if patched {
		rep.Report("🧩 settings.py patched cleanly (idempotent, safe).")
	} else {
		warn := fmt.Sprintf("settings.py not found at %s, skipping patch", settingsPath)
		rep.Report("⚠️ " + warn + ".")
		result.Warnings = append(result.Warnings, warn)
	}

	if len(opts.Apps) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep.Report("🔗 Creating/patching project urls.py ...")
		routes := scaffold.NewRouteGenerator(g.logger)
		if err := routes.Generate(dest, opts.ProjectName, opts.Apps); err != nil {
			return nil, err
		}
		rep.Report("✅ URLs and app views created (home + app routes).")
	}

	if opts.CreateAssets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep.Report("📂 Copying templates and static assets ...")
		mat := scaffold.NewMaterializer(g.assets, g.logger)
		if err := mat.Materialize(dest); err != nil {
			return nil, err
		}
		changed, err := mat.SanitizeBase(dest)
		if err != nil {
			return nil, err
		}
		if changed {
			rep.Report("🔧 Sanitized templates/base.html (backup created).")
		} else {
			rep.Report("ℹ️ templates/base.html looks good; no changes made.")
		}
	}

	rep.Report("📝 Writing requirements.txt ...")
	if out, err := prov.Freeze(ctx, python, sink); err != nil {
		warn := "could not write requirements.txt: " + err.Error()
		rep.Report("⚠️ " + warn)
		result.Warnings = append(result.Warnings, warn)
	} else if err := os.WriteFile(filepath.Join(dest, defs.RequirementsTxt), []byte(out), defs.FilePerm); err != nil {
		warn := "could not write requirements.txt: " + err.Error()
		rep.Report("⚠️ " + warn)
		result.Warnings = append(result.Warnings, warn)
	}

	if opts.InitGit {
		if err := vcs.Init(ctx, g.runner, dest, sink); err != nil {
			warn := "git initialization failed: " + err.Error()
			rep.Report("⚠️ " + warn)
			result.Warnings = append(result.Warnings, warn)
		} else {
			rep.Report("✅ Git repository initialized with .gitignore.")
		}
	}

	rep.Report("🎉 Django project created successfully!")
	g.logger.Info("generation finished", "dest", dest, "warnings", len(result.Warnings))
	return result, nil
}
