// Package wizard implements the interactive terminal form for project
// generation. It collects the same fields as the headless flag surface
// and asks for confirmation before anything is created.
package wizard

import (
	"errors"
	"strings"
)

// ErrCancelled is returned when the user aborts the form.
var ErrCancelled = errors.New("wizard cancelled")

// Defaults seed the form fields before the user edits them.
type Defaults struct {
	Destination   string
	ProjectName   string
	PythonPath    string
	DjangoVersion string
	Apps          []string
	CreateVenv    bool
	CreateAssets  bool
	InitGit       bool
}

// Result holds the answers from a completed form.
type Result struct {
	Destination   string
	ProjectName   string
	PythonPath    string
	DjangoVersion string
	Apps          []string
	CreateVenv    bool
	CreateAssets  bool
	InitGit       bool
	Confirmed     bool
}

// ParseApps splits a comma-separated app list, trimming whitespace and
// dropping empty entries.
func ParseApps(raw string) []string {
	var apps []string
	for part := range strings.SplitSeq(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			apps = append(apps, trimmed)
		}
	}
	return apps
}
