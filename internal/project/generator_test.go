package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/danewalkr/django-bootstrapper/internal/runner"
)

const fakeSettings = `INSTALLED_APPS = [
    'django.contrib.admin',
    'django.contrib.staticfiles',
]

TEMPLATES = [
    {
        'DIRS': [],
        'APP_DIRS': True,
    },
]

STATIC_URL = 'static/'
`

// fakeRunner mimics the side effects of the real commands: startproject
// lays down manage.py and settings.py, startapp creates the app package,
// pip freeze reports a pinned set.
type fakeRunner struct {
	t        *testing.T
	calls    []string
	dirs     []string
	failOn   string
	settings string
}

func newFakeRunner(t *testing.T) *fakeRunner {
	return &fakeRunner{t: t, settings: fakeSettings}
}

func (f *fakeRunner) Run(_ context.Context, dir string, _ runner.LineSink, name string, args ...string) (string, error) {
	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)
	f.dirs = append(f.dirs, dir)

	if f.failOn != "" && strings.Contains(call, f.failOn) {
		return "", &runner.CommandError{Name: name, Args: args, ExitCode: 1, Stderr: "simulated failure"}
	}

	switch {
	case strings.Contains(call, "-m venv"):
		f.mkdir(args[len(args)-1])
	case strings.Contains(call, "startproject"):
		project := args[3]
		f.write(filepath.Join(dir, "manage.py"), "#!/usr/bin/env python\n")
		if f.settings != "" {
			f.write(filepath.Join(dir, project, "settings.py"), f.settings)
		}
	case strings.Contains(call, "startapp"):
		app := args[len(args)-1]
		f.write(filepath.Join(dir, app, "views.py"), "from django.shortcuts import render\n")
		f.write(filepath.Join(dir, app, "apps.py"), "from django.apps import AppConfig\n")
	case strings.Contains(call, "pip freeze"):
		return "Django==5.1.1\nasgiref==3.8.1", nil
	}
	return "", nil
}

func (f *fakeRunner) mkdir(path string) {
	f.t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		f.t.Fatalf("fake runner mkdir: %v", err)
	}
}

func (f *fakeRunner) write(path, content string) {
	f.t.Helper()
	f.mkdir(filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		f.t.Fatalf("fake runner write: %v", err)
	}
}

func (f *fakeRunner) sawCall(substr string) bool {
	for _, c := range f.calls {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// recorder collects reported progress lines.
type recorder struct {
	lines []string
}

func (r *recorder) Report(msg string) { r.lines = append(r.lines, msg) }

func (r *recorder) saw(substr string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"templates/base.html":  {Data: []byte("<!doctype html>\n<html><body>{% block content %}{% endblock %}</body></html>\n")},
		"templates/home.html":  {Data: []byte("{% extends 'base.html' %}\n")},
		"static/css/style.css": {Data: []byte("body {}\n")},
	}
}

// stubPython creates a file that passes the interpreter existence check.
func stubPython(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "python3")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("stub python: %v", err)
	}
	return path
}

func baseOptions(t *testing.T) Options {
	return Options{
		Destination:  filepath.Join(t.TempDir(), "proj"),
		ProjectName:  "mysite",
		PythonPath:   stubPython(t),
		Apps:         []string{"blog", "shop"},
		CreateVenv:   true,
		CreateAssets: true,
	}
}

func TestGenerateFullRun(t *testing.T) {
	fr := newFakeRunner(t)
	opts := baseOptions(t)
	rec := &recorder{}
	gen := NewGenerator(fr, testAssets(), nil)

	result, err := gen.Generate(context.Background(), opts, rec)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	dest := result.ProjectDir
	for _, rel := range []string{
		"manage.py",
		"mysite/settings.py",
		"mysite/urls.py",
		"blog/urls.py",
		"blog/views.py",
		"shop/urls.py",
		"templates/blog/index.html",
		"templates/shop/index.html",
		"templates/base.html",
		"templates/home.html",
		"static/css/style.css",
		"requirements.txt",
	} {
		if _, err := os.Stat(filepath.Join(dest, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}

	settings, err := os.ReadFile(filepath.Join(dest, "mysite", "settings.py"))
	if err != nil {
		t.Fatalf("ReadFile(settings) error = %v", err)
	}
	for _, app := range []string{"blog", "shop"} {
		if got := strings.Count(string(settings), "'"+app+"',"); got != 1 {
			t.Errorf("%q registered %d times, want 1", app, got)
		}
	}

	base, err := os.ReadFile(filepath.Join(dest, "templates", "base.html"))
	if err != nil {
		t.Fatalf("ReadFile(base) error = %v", err)
	}
	if !strings.Contains(string(base), "{% load static %}") {
		t.Error("base.html not sanitized with the load-static tag")
	}

	reqs, err := os.ReadFile(filepath.Join(dest, "requirements.txt"))
	if err != nil {
		t.Fatalf("ReadFile(requirements) error = %v", err)
	}
	if !strings.Contains(string(reqs), "Django==5.1.1") {
		t.Errorf("requirements.txt = %q", reqs)
	}

	if result.PythonUsed == "" {
		t.Error("Result.PythonUsed empty")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
	if !rec.saw("🎉") {
		t.Error("success message not reported")
	}
	if !fr.sawCall("-m venv") || !fr.sawCall("startproject mysite .") || !fr.sawCall("startapp blog") {
		t.Errorf("expected command sequence not run, got %v", fr.calls)
	}
}

func TestGenerateRerunIsSafe(t *testing.T) {
	fr := newFakeRunner(t)
	opts := baseOptions(t)
	gen := NewGenerator(fr, testAssets(), nil)
	ctx := context.Background()

	result, err := gen.Generate(ctx, opts, nil)
	if err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}

	// Hand-edit a landing page between runs.
	landing := filepath.Join(result.ProjectDir, "templates", "blog", "index.html")
	if err := os.WriteFile(landing, []byte("edited by hand"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := gen.Generate(ctx, opts, nil); err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}

	settings, err := os.ReadFile(filepath.Join(result.ProjectDir, "mysite", "settings.py"))
	if err != nil {
		t.Fatalf("ReadFile(settings) error = %v", err)
	}
	if got := strings.Count(string(settings), "'blog',"); got != 1 {
		t.Errorf("'blog' registered %d times after re-run, want 1", got)
	}

	data, err := os.ReadFile(landing)
	if err != nil {
		t.Fatalf("ReadFile(landing) error = %v", err)
	}
	if string(data) != "edited by hand" {
		t.Error("hand-edited landing page overwritten on re-run")
	}

	// The second run skips venv creation.
	venvRuns := 0
	for _, c := range fr.calls {
		if strings.Contains(c, "-m venv") {
			venvRuns++
		}
	}
	if venvRuns != 1 {
		t.Errorf("venv created %d times, want 1", venvRuns)
	}
}

func TestGenerateDryRun(t *testing.T) {
	fr := newFakeRunner(t)
	opts := baseOptions(t)
	opts.DryRun = true
	opts.InitGit = true
	rec := &recorder{}
	gen := NewGenerator(fr, testAssets(), nil)

	result, err := gen.Generate(context.Background(), opts, rec)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(fr.calls) != 0 {
		t.Errorf("dry run executed commands: %v", fr.calls)
	}

	entries, err := os.ReadDir(result.ProjectDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created files: %v", entries)
	}

	for _, want := range []string{
		"would create virtualenv",
		"would install Django",
		"would run:",
		"would patch settings.py",
		"would create templates/static",
		"would initialize git",
	} {
		if !rec.saw(want) {
			t.Errorf("dry-run report missing %q, got %v", want, rec.lines)
		}
	}
}

func TestGenerateStartprojectFailure(t *testing.T) {
	fr := newFakeRunner(t)
	fr.failOn = "startproject"
	opts := baseOptions(t)
	rec := &recorder{}
	gen := NewGenerator(fr, nil, nil)

	_, err := gen.Generate(context.Background(), opts, rec)
	if err == nil {
		t.Fatal("Generate() error = nil, want startproject failure")
	}
	if !strings.Contains(err.Error(), "startproject") {
		t.Errorf("error = %v, want startproject context", err)
	}
	if !rec.saw("❌") {
		t.Error("failure not reported")
	}
}

func TestGenerateMissingSettingsIsWarning(t *testing.T) {
	fr := newFakeRunner(t)
	fr.settings = ""
	opts := baseOptions(t)
	opts.CreateAssets = false
	rec := &recorder{}
	gen := NewGenerator(fr, nil, nil)

	result, err := gen.Generate(context.Background(), opts, rec)
	if err != nil {
		t.Fatalf("Generate() error = %v, want warning only", err)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("Warnings empty, want settings warning")
	}
	if !strings.Contains(result.Warnings[0], "settings.py not found") {
		t.Errorf("Warnings[0] = %q", result.Warnings[0])
	}
	if !rec.saw("⚠️") {
		t.Error("warning not reported")
	}
}

func TestGenerateFreezeFailureIsWarning(t *testing.T) {
	fr := newFakeRunner(t)
	fr.failOn = "freeze"
	opts := baseOptions(t)
	gen := NewGenerator(fr, testAssets(), nil)

	result, err := gen.Generate(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v, want warning only", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "requirements.txt") {
		t.Errorf("Warnings = %v, want requirements warning", result.Warnings)
	}
	if _, err := os.Stat(filepath.Join(result.ProjectDir, "requirements.txt")); !os.IsNotExist(err) {
		t.Error("requirements.txt written despite freeze failure")
	}
}

func TestGenerateInitGit(t *testing.T) {
	fr := newFakeRunner(t)
	opts := baseOptions(t)
	opts.InitGit = true
	gen := NewGenerator(fr, testAssets(), nil)

	result, err := gen.Generate(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !fr.sawCall("git init") {
		t.Errorf("git init not run, calls = %v", fr.calls)
	}
	if _, err := os.Stat(filepath.Join(result.ProjectDir, ".gitignore")); err != nil {
		t.Errorf(".gitignore not written: %v", err)
	}
}

func TestGenerateGitFailureIsWarning(t *testing.T) {
	fr := newFakeRunner(t)
	fr.failOn = "git init"
	opts := baseOptions(t)
	opts.InitGit = true
	gen := NewGenerator(fr, testAssets(), nil)

	result, err := gen.Generate(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v, want warning only", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "git") {
		t.Errorf("Warnings = %v, want git warning", result.Warnings)
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewGenerator(newFakeRunner(t), nil, nil)
	_, err := gen.Generate(ctx, baseOptions(t), nil)
	if err != context.Canceled {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestGenerateNoApps(t *testing.T) {
	fr := newFakeRunner(t)
	opts := baseOptions(t)
	opts.Apps = nil
	opts.CreateAssets = false
	gen := NewGenerator(fr, nil, nil)

	result, err := gen.Generate(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if fr.sawCall("startapp") {
		t.Errorf("startapp run without apps: %v", fr.calls)
	}
	// Project-level routing is only rewritten when apps are requested.
	if _, err := os.Stat(filepath.Join(result.ProjectDir, "mysite", "urls.py")); !os.IsNotExist(err) {
		t.Error("urls.py generated without apps")
	}
}
