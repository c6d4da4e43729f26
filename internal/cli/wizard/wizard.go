package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the form and returns the answers. The settings form and
// the confirmation run as separate huh.Forms so the confirmation title
// can show the values actually entered.
func Run(def Defaults) (*Result, error) {
	result := &Result{
		Destination:   def.Destination,
		ProjectName:   def.ProjectName,
		PythonPath:    def.PythonPath,
		DjangoVersion: def.DjangoVersion,
		CreateVenv:    def.CreateVenv,
		CreateAssets:  def.CreateAssets,
		InitGit:       def.InitGit,
	}
	appsRaw := strings.Join(def.Apps, ", ")
	theme := newWizardTheme()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project folder").
				Description("Directory the project is generated into").
				Value(&result.Destination).
				Validate(required("project folder")),
			huh.NewInput().
				Title("Project name").
				Description("Avoid spaces or special characters").
				Value(&result.ProjectName).
				Validate(required("project name")),
			huh.NewInput().
				Title("Apps (comma separated)").
				Description("Django apps to create, e.g. blog, shop").
				Value(&appsRaw),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Python executable (optional)").
				Description("Leave blank to use the system default").
				Value(&result.PythonPath),
			huh.NewInput().
				Title("Django version (optional)").
				Description("Leave blank to install the latest").
				Value(&result.DjangoVersion),
			huh.NewConfirm().
				Title("Create virtualenv (.venv)?").
				Value(&result.CreateVenv),
			huh.NewConfirm().
				Title("Create templates/static folders?").
				Value(&result.CreateAssets),
			huh.NewConfirm().
				Title("Initialize git repository?").
				Value(&result.InitGit),
		),
	).WithTheme(theme)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	result.Apps = ParseApps(appsRaw)

	confirm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Create '%s' at %s?", result.ProjectName, result.Destination)).
				Value(&result.Confirmed),
		),
	).WithTheme(theme)

	if err := confirm.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	return result, nil
}

// required validates that a field is not blank.
func required(name string) func(string) error {
	return func(val string) error {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
