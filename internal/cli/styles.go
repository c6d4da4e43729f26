package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0C4B33", Dark: "#44B78B"}).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"})

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#0C4B33", Dark: "#44B78B"}).
			Padding(0, 2)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0C4B33", Dark: "#44B78B"}).
			Bold(true).
			Width(12)
)

type kvPair struct {
	key   string
	value string
}

func renderKeyValueLines(pairs []kvPair) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, keyStyle.Render(p.key)+" "+p.value)
	}
	return strings.Join(lines, "\n")
}

// renderSuccessCard draws the post-generation summary box.
func renderSuccessCard(title string, pairs []kvPair) string {
	body := successStyle.Render(title)
	if len(pairs) > 0 {
		body += "\n\n" + renderKeyValueLines(pairs)
	}
	return cardStyle.Render(body)
}

func renderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(warnStyle.Render(fmt.Sprintf("Completed with %d warning(s):", len(warnings))))
	for _, w := range warnings {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("  • " + w))
	}
	return b.String()
}
