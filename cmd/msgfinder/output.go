package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/msgfinder/msgfinder/internal/store"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	kindColors = map[store.Kind]string{
		store.KindNative:       "10",
		store.KindRelocated:    "12",
		store.KindLegacyBackup: "11",
		store.KindModernBackup: "13",
	}
)

// kindBadge renders a layout kind as a colored fixed-width badge so
// per-store lines line up in listings.
func kindBadge(k store.Kind) string {
	color, ok := kindColors[k]
	if !ok {
		color = "9"
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color)).
		Width(14).
		Render(string(k))
}

// formatSize renders a byte count in binary units.
func formatSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf(
		"%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp],
	)
}
