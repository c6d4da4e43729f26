package main

import (
	"os"

	"github.com/danewalkr/django-bootstrapper/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
