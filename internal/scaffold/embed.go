package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed assets
var embeddedAssets embed.FS

// DefaultAssets returns the bundled template/static asset tree that
// ships with the binary.
func DefaultAssets() (fs.FS, error) {
	return fs.Sub(embeddedAssets, "assets")
}
