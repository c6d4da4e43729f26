package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
	"github.com/danewalkr/django-bootstrapper/internal/logging"
)

// loadStaticTag is the directive every base template must carry so
// {% static %} references resolve.
const loadStaticTag = "{% load static %}"

const doctypeLine = "<!doctype html>"

// staticHrefPattern matches href attributes wrapping a template tag
// with stray whitespace inside the quotes.
var staticHrefPattern = regexp.MustCompile(`href="\s*\{%(.*?)%\}\s*"`)

// Fallback content synthesized when the bundled asset tree is empty.
// The fallback base deliberately omits the load-static directive; the
// sanitize pass inserts it, same as for bundled assets.
const fallbackBaseHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>{{ project_name|default:"My Django Project" }}</title>
    <link rel="stylesheet" href="{% static 'css/style.css' %}">
    <style>
      body{font-family:Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:0;background:#f8f9fb;color:#222}
      .card{background:#fff;border-radius:8px;padding:16px}
    </style>
  </head>
  <body>
    <main>
      {% block content %}{% endblock %}
    </main>
  </body>
</html>
`

const fallbackHomeHTML = `{% extends 'base.html' %}
{% block content %}
  <div class="card">
    <h2>Welcome to {{ project_name|title }}</h2>
    <p>Your Django project has been generated successfully.</p>
  </div>
{% endblock %}
`

const fallbackAppIndexHTML = `{% extends 'base.html' %}
{% block content %}
  <div class="card">
    <h2>{{ app_title }}</h2>
    <p>This page was generated for this app module.</p>
  </div>
{% endblock %}
`

const fallbackCSS = `/* minimal style.css generated for convenience */
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial; }
.container { max-width: 1100px; margin: 0 auto; padding: 12px; }
`

// Materializer copies the bundled template/static asset tree into a
// project, or synthesizes minimal fallbacks when the tree is empty.
type Materializer struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewMaterializer creates a Materializer over the given asset tree.
// In production fsys comes from DefaultAssets; tests use fstest.MapFS.
func NewMaterializer(fsys fs.FS, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Materializer{fsys: fsys, logger: logger}
}

// Materialize populates root/templates and root/static. A non-empty
// bundled subtree is copied wholesale, merging into directories that
// already exist; an empty or missing subtree is replaced by synthesized
// fallback files written only if absent.
func (m *Materializer) Materialize(root string) error {
	if m.hasEntries(defs.TemplatesDir) {
		if err := m.copyTree(defs.TemplatesDir, root); err != nil {
			return err
		}
	} else {
		templatesDir := filepath.Join(root, defs.TemplatesDir)
		fallbacks := map[string]string{
			defs.BaseHTML:     fallbackBaseHTML,
			defs.HomeHTML:     fallbackHomeHTML,
			defs.AppIndexHTML: fallbackAppIndexHTML,
		}
		for name, content := range fallbacks {
			if _, err := WriteIfAbsent(filepath.Join(templatesDir, name), content); err != nil {
				return err
			}
		}
	}

	if m.hasEntries(defs.StaticDir) {
		if err := m.copyTree(defs.StaticDir, root); err != nil {
			return err
		}
	} else {
		cssPath := filepath.Join(root, defs.StaticDir, defs.CSSSubdir, defs.StyleCSS)
		if _, err := WriteIfAbsent(cssPath, fallbackCSS); err != nil {
			return err
		}
	}

	m.logger.Info("assets materialized", "root", root)
	return nil
}

// hasEntries reports whether the bundled subtree exists and is non-empty.
func (m *Materializer) hasEntries(dir string) bool {
	if m.fsys == nil {
		return false
	}
	entries, err := fs.ReadDir(m.fsys, dir)
	return err == nil && len(entries) > 0
}

// copyTree copies the named subtree of the bundled assets under root,
// overwriting files that already exist along the way.
func (m *Materializer) copyTree(subtree, root string) error {
	return fs.WalkDir(m.fsys, subtree, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if err := validateAssetPath(root, path); err != nil {
			return err
		}
		data, err := fs.ReadFile(m.fsys, path)
		if err != nil {
			return fmt.Errorf("read bundled asset %s: %w", path, err)
		}
		dest := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dest), defs.DirPerm); err != nil {
			return fmt.Errorf("create asset dir: %w", err)
		}
		if err := os.WriteFile(dest, data, defs.FilePerm); err != nil {
			return fmt.Errorf("write asset %s: %w", dest, err)
		}
		return nil
	})
}

// SanitizeBase post-processes root/templates/base.html: inserts the
// load-static directive when missing (after the doctype when present,
// otherwise at the very top) and strips stray whitespace inside
// href-wrapped template tags. The original is backed up before any
// rewrite. The boolean reports whether a change was made; a missing
// base template is not an error.
func (m *Materializer) SanitizeBase(root string) (bool, error) {
	basePath := filepath.Join(root, defs.TemplatesDir, defs.BaseHTML)
	data, err := os.ReadFile(basePath)
	if errors.Is(err, fs.ErrNotExist) {
		m.logger.Info("no base template found, skipping sanitize", "path", basePath)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", basePath, err)
	}

	text := string(data)
	changed := false

	if !strings.Contains(text, loadStaticTag) {
		if strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), doctypeLine) {
			text = strings.Replace(text, doctypeLine, doctypeLine+"\n"+loadStaticTag, 1)
		} else {
			text = loadStaticTag + "\n" + text
		}
		changed = true
	}

	cleaned := staticHrefPattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := staticHrefPattern.FindStringSubmatch(match)[1]
		return `href="{%` + strings.TrimSpace(inner) + `%}"`
	})
	if cleaned != text {
		text = cleaned
		changed = true
	}

	if !changed {
		return false, nil
	}

	if err := os.WriteFile(basePath+defs.BackupSuffix, data, defs.FilePerm); err != nil {
		return false, fmt.Errorf("back up %s: %w", basePath, err)
	}
	if err := os.WriteFile(basePath, []byte(text), defs.FilePerm); err != nil {
		return false, fmt.Errorf("write %s: %w", basePath, err)
	}
	m.logger.Info("base template sanitized", "path", basePath)
	return true, nil
}

// validateAssetPath ensures a bundled path cannot escape the project root.
func validateAssetPath(root, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("bundled asset path %q is absolute", relPath)
	}
	if strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, string(filepath.Separator)+"..") {
		return fmt.Errorf("bundled asset path %q escapes project root", relPath)
	}
	return nil
}
