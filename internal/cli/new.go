package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/danewalkr/django-bootstrapper/internal/cli/wizard"
	"github.com/danewalkr/django-bootstrapper/internal/config"
	"github.com/danewalkr/django-bootstrapper/internal/defs"
	"github.com/danewalkr/django-bootstrapper/internal/logging"
	"github.com/danewalkr/django-bootstrapper/internal/project"
	"github.com/danewalkr/django-bootstrapper/internal/runner"
	"github.com/danewalkr/django-bootstrapper/internal/scaffold"
	"github.com/danewalkr/django-bootstrapper/internal/ui"
)

var newCmd = &cobra.Command{
	Use:   "new [destination] [project-name]",
	Short: "Generate a new Django project",
	Long: `Generate a Django project at the given destination: virtualenv,
Django install, project and app skeletons, settings patching, routing,
templates, and static assets.

Usage patterns:
  djboot new ./mysite-dir mysite --apps blog,shop
  djboot new --interactive
  djboot new --dry-run

With no arguments the project lands in ` + defs.DefaultDestination + `
under the name '` + defs.DefaultProjectName + `'.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	registerNewFlags(newCmd)
}

func registerNewFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("apps", nil, "Django apps to create (comma separated or repeated)")
	cmd.Flags().Bool("no-venv", false, "Skip virtualenv creation")
	cmd.Flags().Bool("init-git", false, "Initialize a git repository with a .gitignore")
	cmd.Flags().Bool("dry-run", false, "Print the plan without creating files")
	cmd.Flags().String("django-version", "", "Pin a Django version (e.g. 5.1.1)")
	cmd.Flags().String("python", "", "Python executable used to build the virtualenv")
	cmd.Flags().Bool("no-assets", false, "Skip templates/static asset generation")
	cmd.Flags().BoolP("interactive", "i", false, "Run the guided terminal form")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}

func runNew(cmd *cobra.Command, args []string) error {
	logger, closer, err := logging.Open(logging.DefaultPath())
	if err != nil {
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}

	opts := buildOptions(cmd, args, config.Load(config.DefaultPath(), logger))

	interactive := getBoolFlag(cmd, "interactive")
	if interactive {
		res, err := wizard.Run(wizard.Defaults{
			Destination:   opts.Destination,
			ProjectName:   opts.ProjectName,
			PythonPath:    opts.PythonPath,
			DjangoVersion: opts.DjangoVersion,
			Apps:          opts.Apps,
			CreateVenv:    opts.CreateVenv,
			CreateAssets:  opts.CreateAssets,
			InitGit:       opts.InitGit,
		})
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Cancelled."))
				return nil
			}
			return err
		}
		if !res.Confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Cancelled."))
			return nil
		}
		opts.Destination = res.Destination
		opts.ProjectName = res.ProjectName
		opts.PythonPath = res.PythonPath
		opts.DjangoVersion = res.DjangoVersion
		opts.Apps = res.Apps
		opts.CreateVenv = res.CreateVenv
		opts.CreateAssets = res.CreateAssets
		opts.InitGit = res.InitGit
	}

	assets, err := scaffold.DefaultAssets()
	if err != nil {
		return fmt.Errorf("loading bundled assets: %w", err)
	}
	gen := project.NewGenerator(runner.New(logger), assets, logger)

	rep, stop := buildReporter(cmd, interactive)
	result, genErr := gen.Generate(cmd.Context(), opts, rep)
	stop()
	if genErr != nil {
		logger.Error("generation failed", slog.String("error", genErr.Error()))
		return genErr
	}

	out := cmd.OutOrStdout()
	if warn := renderWarnings(result.Warnings); warn != "" {
		fmt.Fprintln(out, warn)
	}
	fmt.Fprintln(out, renderSuccessCard("Django project ready", []kvPair{
		{key: "Project", value: opts.ProjectName},
		{key: "Location", value: result.ProjectDir},
		{key: "Python", value: result.PythonUsed},
	}))
	return nil
}

// buildOptions merges flags over config-file defaults over built-ins.
// A flag only wins when the user actually set it.
func buildOptions(cmd *cobra.Command, args []string, cfg *config.Config) project.Options {
	opts := project.Options{
		Destination:  defs.DefaultDestination,
		ProjectName:  defs.DefaultProjectName,
		CreateVenv:   true,
		CreateAssets: true,
	}
	if len(args) > 0 {
		opts.Destination = args[0]
	}
	if len(args) > 1 {
		opts.ProjectName = args[1]
	}

	if cfg.PythonPath != "" {
		opts.PythonPath = cfg.PythonPath
	}
	if cfg.DjangoVersion != "" {
		opts.DjangoVersion = cfg.DjangoVersion
	}
	if cfg.CreateVenv != nil {
		opts.CreateVenv = *cfg.CreateVenv
	}
	if cfg.CreateAssets != nil {
		opts.CreateAssets = *cfg.CreateAssets
	}
	if cfg.InitGit != nil {
		opts.InitGit = *cfg.InitGit
	}

	if cmd.Flags().Changed("python") {
		opts.PythonPath = getStringFlag(cmd, "python")
	}
	if cmd.Flags().Changed("django-version") {
		opts.DjangoVersion = getStringFlag(cmd, "django-version")
	}
	if cmd.Flags().Changed("no-venv") {
		opts.CreateVenv = !getBoolFlag(cmd, "no-venv")
	}
	if cmd.Flags().Changed("no-assets") {
		opts.CreateAssets = !getBoolFlag(cmd, "no-assets")
	}
	if cmd.Flags().Changed("init-git") {
		opts.InitGit = getBoolFlag(cmd, "init-git")
	}
	opts.Apps = getStringSliceFlag(cmd, "apps")
	opts.DryRun = getBoolFlag(cmd, "dry-run")
	return opts
}

// buildReporter picks the progress sink. Interactive terminals get an
// animated spinner; everything else streams plain lines.
func buildReporter(cmd *cobra.Command, interactive bool) (project.Reporter, func()) {
	hm := ui.NewHeadlessManager()
	if interactive && !hm.IsHeadless() {
		sp := ui.NewSpinner(ui.DefaultTheme(), hm, "Starting...")
		return project.ReporterFunc(sp.SetTitle), sp.Stop
	}
	return project.NewWriterReporter(cmd.OutOrStdout()), func() {}
}
