package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/litescript/kat-search/internal/kat"
	"github.com/litescript/kat-search/internal/theme"
)

// HealthBar renders a visual health indicator
func HealthBar(health int, width int) string {
	styles := theme.Current()

	filled := health * width / 100
	if filled > width {
		filled = width
	}

	var style lipgloss.Style
	switch {
	case health >= 70:
		style = styles.HealthGood
	case health >= 40:
		style = styles.HealthMed
	default:
		style = styles.HealthBad
	}

	return style.Render(strings.Repeat("█", filled)) +
		styles.Muted.Render(strings.Repeat("░", width-filled))
}

// Truncate shortens s to max display cells, ending in an ellipsis.
func Truncate(s string, max int) string {
	if lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// PadLeft pads s on the left to width display cells.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	return strings.Repeat(" ", width-lipgloss.Width(s)) + s
}

// formatInt renders a scraped number with thousands separators.
func formatInt(n kat.Int) string {
	if n.IsNaN() {
		return "?"
	}
	return humanize.Comma(n.Value)
}

// formatAge renders the publish date relative to now.
func formatAge(t kat.Torrent) string {
	published, ok := t.Published()
	if !ok {
		return "?"
	}
	return humanize.RelTime(published, time.Now(), "ago", "from now")
}
