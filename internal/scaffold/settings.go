package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
	"github.com/danewalkr/django-bootstrapper/internal/logging"
)

// Rules holds the textual landmarks used to patch a generated
// settings.py. Detection is deliberately substring/regex based rather
// than structural: the generated file's layout is only loosely
// guaranteed, and keeping the landmarks as data makes deviations easy
// to diagnose. Files that stray from Django's default layout may be
// patched incorrectly or not at all; that is an accepted limitation.
type Rules struct {
	// AppsBlockOpen and AppsBlockClose are the trimmed-line prefixes
	// that open and close the app-registration block.
	AppsBlockOpen  string
	AppsBlockClose string

	// TemplatesToken marks the presence of a templates section.
	TemplatesToken string
	// AppDirsLine is the literal line the DIRS declaration is injected
	// before when no DIRS list exists yet.
	AppDirsLine string
	// DirsPattern matches an existing DIRS list; DirsCanonical replaces it.
	DirsPattern   *regexp.Regexp
	DirsCanonical string
	// DirsInjected is the indented declaration inserted above AppDirsLine.
	DirsInjected string

	// StaticURLPresent detects any STATIC_URL assignment;
	// StaticURLAssign matches the full assignment for normalization.
	StaticURLPresent *regexp.Regexp
	StaticURLAssign  *regexp.Regexp
	StaticURLLine    string

	// StaticDirsToken detects a STATICFILES_DIRS declaration;
	// StaticDirsLine is appended when the token is absent.
	StaticDirsToken string
	StaticDirsLine  string
}

// DefaultRules returns the landmarks of Django's default generated
// settings.py.
func DefaultRules() Rules {
	return Rules{
		AppsBlockOpen:    "INSTALLED_APPS",
		AppsBlockClose:   "]",
		TemplatesToken:   "TEMPLATES",
		AppDirsLine:      "'APP_DIRS': True,",
		DirsPattern:      regexp.MustCompile(`'DIRS'\s*:\s*\[[^\]]*\]`),
		DirsCanonical:    "'DIRS': [BASE_DIR / 'templates']",
		DirsInjected:     "            'DIRS': [BASE_DIR / 'templates'],",
		StaticURLPresent: regexp.MustCompile(`STATIC_URL\s*=`),
		StaticURLAssign:  regexp.MustCompile(`STATIC_URL\s*=\s*['"].*?['"]`),
		StaticURLLine:    "STATIC_URL = '/static/'",
		StaticDirsToken:  "STATICFILES_DIRS",
		StaticDirsLine:   "STATICFILES_DIRS = [BASE_DIR / 'static']",
	}
}

// SettingsPatcher rewrites a generated settings.py in a single
// idempotent pass: app registration, template search path, static URL
// prefix, and static file directories.
type SettingsPatcher struct {
	rules  Rules
	logger *slog.Logger
}

// NewSettingsPatcher creates a patcher with the default rules.
func NewSettingsPatcher(logger *slog.Logger) *SettingsPatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SettingsPatcher{rules: DefaultRules(), logger: logger}
}

// NewSettingsPatcherWithRules creates a patcher with custom landmarks.
func NewSettingsPatcherWithRules(rules Rules, logger *slog.Logger) *SettingsPatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SettingsPatcher{rules: rules, logger: logger}
}

// Patch applies all rewrites to the settings file at path. A missing
// file is not an error: it returns (false, nil) so the caller can warn
// and continue. Patching twice yields the same result as patching once;
// duplicate names in apps produce duplicate registration lines on the
// first pass (documented limitation, not deduplicated). Any existing
// STATIC_URL value is overwritten with the canonical '/static/'.
func (p *SettingsPatcher) Patch(path string, apps []string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("settings file not found, skipping patch", "path", path)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	text := string(data)
	newText := p.registerApps(text, apps)
	newText = p.ensureTemplateDirs(newText)
	newText = p.ensureStaticSettings(newText)

	if err := os.WriteFile(path, []byte(newText), defs.FilePerm); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	p.logger.Info("settings patched", "path", path, "apps", apps)
	return true, nil
}

// registerApps inserts one registration line per app immediately before
// the block's closing line. Presence is checked against the original
// text as a quoted literal, so re-runs insert nothing.
func (p *SettingsPatcher) registerApps(text string, apps []string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+len(apps))
	inBlock := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, p.rules.AppsBlockOpen) {
			inBlock = true
			out = append(out, line)
			continue
		}
		if inBlock && strings.HasPrefix(stripped, p.rules.AppsBlockClose) {
			for _, app := range apps {
				if !strings.Contains(text, "'"+app+"'") && !strings.Contains(text, `"`+app+`"`) {
					out = append(out, fmt.Sprintf("    '%s',", app))
				}
			}
			inBlock = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// ensureTemplateDirs points the template search path at the
// project-local templates directory. An existing DIRS list is replaced
// wholesale; otherwise the declaration is injected above APP_DIRS when
// a templates section exists at all.
func (p *SettingsPatcher) ensureTemplateDirs(text string) string {
	if p.rules.DirsPattern.MatchString(text) {
		return p.rules.DirsPattern.ReplaceAllString(text, p.rules.DirsCanonical)
	}
	if strings.Contains(text, p.rules.TemplatesToken) {
		return strings.ReplaceAll(text, p.rules.AppDirsLine,
			p.rules.DirsInjected+"\n            "+p.rules.AppDirsLine)
	}
	return text
}

// ensureStaticSettings appends a STATIC_URL when absent, normalizes any
// existing value to the canonical prefix, and appends STATICFILES_DIRS
// when the identifier does not appear anywhere in the file.
func (p *SettingsPatcher) ensureStaticSettings(text string) string {
	if !p.rules.StaticURLPresent.MatchString(text) {
		text += "\n" + p.rules.StaticURLLine + "\n"
	}
	text = p.rules.StaticURLAssign.ReplaceAllString(text, p.rules.StaticURLLine)
	if !strings.Contains(text, p.rules.StaticDirsToken) {
		text += "\n" + p.rules.StaticDirsLine + "\n"
	}
	return text
}
