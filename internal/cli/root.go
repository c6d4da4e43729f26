// Package cli wires the cobra command surface for the generator.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danewalkr/django-bootstrapper/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "djboot",
	Short: "Bootstrap Django projects with batteries included",
	Long: `django-bootstrapper provisions a virtualenv, installs Django,
runs the framework's own project and app generators, then wires in
templates, static assets, per-app routing, and a basic home page.

Run "djboot new" headless with flags, or "djboot new --interactive"
for a guided terminal form.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("django-bootstrapper %s\n", version.GetVersion()))
}
