// Package ui provides terminal presentation helpers: theme colors,
// headless-mode detection, and spinner-based progress display.
package ui

// Theme holds the terminal color palette.
type Theme struct {
	NoColor bool
	Colors  Palette
}

// Palette is the set of brand colors used across the CLI.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// DefaultTheme returns the standard palette (Django greens).
func DefaultTheme() *Theme {
	return &Theme{
		Colors: Palette{
			Primary:   "#44B78B",
			Secondary: "#0C4B33",
			Success:   "#2E7D32",
			Warning:   "#B45309",
			Error:     "#DC2626",
			Muted:     "#9CA3AF",
		},
	}
}
