package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/danewalkr/django-bootstrapper/internal/logging"
)

const guideMarkdown = `# django-bootstrapper

Generates a ready-to-run Django project: virtualenv, Django install,
project and app skeletons, templates, static files, and routing.

## Quick start

` + "```" + `
djboot new ./my_django_project mysite --apps blog,shop
` + "```" + `

## What gets created

1. **Virtualenv** at ` + "`.venv`" + ` inside the destination (skip with ` + "`--no-venv`" + `).
2. **Django** installed into the venv, pinned with ` + "`--django-version`" + ` if given.
3. **Project skeleton** via ` + "`django-admin startproject`" + `, then one
   ` + "`startapp`" + ` per entry in ` + "`--apps`" + `.
4. **settings.py** patched in place: apps registered in INSTALLED_APPS,
   template and static directories wired up. Patching is idempotent, so
   re-running against an existing project is safe.
5. **urls.py / views.py** for the project and each app, with a home page
   and one route per app. Overwritten files get a ` + "`.bak`" + ` backup first.
6. **templates/ and static/** starter files (skip with ` + "`--no-assets`" + `).
7. **requirements.txt** from ` + "`pip freeze`" + `.
8. Optionally ` + "`git init`" + ` plus a Python-flavored ` + "`.gitignore`" + ` (` + "`--init-git`" + `).

## Modes

- ` + "`--dry-run`" + ` prints every step without creating files.
- ` + "`--interactive`" + ` walks through a terminal form instead of flags.

## Defaults

Per-user defaults live in ` + "`~/.djboot/config.yaml`" + ` (python_path,
django_version, create_venv, create_assets, init_git). Explicit flags
always win over the file.

## Troubleshooting

Each run appends to a log file; pass ` + "`--log`" + ` to this command to print
its location.
`

var guideShowLog bool

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the usage guide",
	RunE:  runGuide,
}

func init() {
	guideCmd.Flags().BoolVar(&guideShowLog, "log", false, "print the log file path and exit")
	rootCmd.AddCommand(guideCmd)
}

func runGuide(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if guideShowLog {
		fmt.Fprintln(out, logging.DefaultPath())
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// No styled renderer available, emit the raw markdown.
		fmt.Fprint(out, guideMarkdown, "\n")
		return nil
	}
	rendered, err := renderer.Render(guideMarkdown)
	if err != nil {
		fmt.Fprint(out, guideMarkdown, "\n")
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}
