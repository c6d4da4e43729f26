package scaffold

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
	"github.com/danewalkr/django-bootstrapper/internal/logging"
)

const projectURLsTmpl = `from django.contrib import admin
from django.urls import path, include
from django.shortcuts import render


def home(request):
    apps = {{.AppsLiteral}}
    return render(request, 'home.html', {
        'project_name': '{{.ProjectName}}',
        'apps': apps,
    })


urlpatterns = [
    path('', home, name='home'),
    path('admin/', admin.site.urls),
{{- range .Apps}}
    path('{{.}}/', include('{{.}}.urls')),
{{- end}}
]
`

const appURLsTmpl = `from django.urls import path
from . import views

urlpatterns = [
    path('', views.index, name='{{.App}}_index'),
]
`

const appViewsTmpl = `from django.shortcuts import render


def index(request):
    apps = {{.AppsLiteral}}
    return render(request, '{{.App}}/index.html', {
        'app_title': '{{.AppTitle}}',
        'apps': apps,
        'project_name': '{{.ProjectName}}',
    })
`

const appIndexTmpl = `{% extends 'base.html' %}
{% block content %}
  <div class="card">
    <h2>{{.AppTitle}} App</h2>
    <p>This is the <strong>{{.App}}</strong> app's default page.</p>
    <p>Edit <code>templates/{{.App}}/index.html</code> to customize.</p>
  </div>
{% endblock %}
`

// titleCaser derives an app's display name: each whitespace-delimited
// segment gets an initial capital. Cosmetic only, never used for file
// or route identifiers.
var titleCaser = cases.Title(language.English)

// DisplayTitle returns the cosmetic display name for an app name.
func DisplayTitle(name string) string {
	return titleCaser.String(name)
}

// routeContext is the data handed to the routing/view templates.
type routeContext struct {
	ProjectName string
	Apps        []string
	AppsLiteral string
	App         string
	AppTitle    string
}

// RouteGenerator emits the project-level routing file and per-app
// routing, view, and landing-template files.
type RouteGenerator struct {
	logger *slog.Logger
}

// NewRouteGenerator creates a RouteGenerator. A nil logger discards
// log records.
func NewRouteGenerator(logger *slog.Logger) *RouteGenerator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &RouteGenerator{logger: logger}
}

// Generate writes root/<project>/urls.py (always overwritten) and, for
// each app: templates/<app>/index.html (created only if absent, so user
// edits survive re-runs), <app>/urls.py and <app>/views.py (overwritten
// with a backup of any prior version).
func (g *RouteGenerator) Generate(root, project string, apps []string) error {
	ctx := routeContext{
		ProjectName: project,
		Apps:        apps,
		AppsLiteral: pythonListLiteral(apps),
	}

	content, err := renderText("project_urls", projectURLsTmpl, ctx)
	if err != nil {
		return err
	}
	projectURLs := filepath.Join(root, project, defs.UrlsPy)
	if err := os.MkdirAll(filepath.Dir(projectURLs), defs.DirPerm); err != nil {
		return fmt.Errorf("create project package dir: %w", err)
	}
	if err := os.WriteFile(projectURLs, []byte(content), defs.FilePerm); err != nil {
		return fmt.Errorf("write project urls: %w", err)
	}
	g.logger.Info("project urls written", "path", projectURLs)

	for _, app := range apps {
		appCtx := ctx
		appCtx.App = app
		appCtx.AppTitle = DisplayTitle(app)

		landing, err := renderText("app_index", appIndexTmpl, appCtx)
		if err != nil {
			return err
		}
		landingPath := filepath.Join(root, defs.TemplatesDir, app, defs.IndexHTML)
		if _, err := WriteIfAbsent(landingPath, landing); err != nil {
			return err
		}

		urls, err := renderText("app_urls", appURLsTmpl, appCtx)
		if err != nil {
			return err
		}
		if err := WriteWithBackup(filepath.Join(root, app, defs.UrlsPy), urls); err != nil {
			return err
		}

		views, err := renderText("app_views", appViewsTmpl, appCtx)
		if err != nil {
			return err
		}
		if err := WriteWithBackup(filepath.Join(root, app, defs.ViewsPy), views); err != nil {
			return err
		}

		g.logger.Info("app routing generated", "app", app)
	}

	return nil
}

// renderText executes a source template in strict mode.
func renderText(name, tmpl string, data any) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// pythonListLiteral renders names as a single-quoted Python list.
func pythonListLiteral(names []string) string {
	if len(names) == 0 {
		return "[]"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
