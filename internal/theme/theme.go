// Package theme derives the TUI color scheme from the user's terminal
// configuration (Alacritty or Foot), with KAT_SEARCH_* environment overrides.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the color scheme for the TUI
type Palette struct {
	BG       string // background
	FG       string // foreground (primary text)
	Muted    string // secondary info, help text
	Accent   string // verified marks, good health
	AccentBg string // selection background
	Error    string
}

// DefaultPalette returns the fallback green-on-dark theme
func DefaultPalette() Palette {
	return Palette{
		BG:       "#0c0f0a",
		FG:       "#c5d86d",
		Muted:    "#5f6b47",
		Accent:   "#8bc34a",
		AccentBg: "#1b2114",
		Error:    "#ff6b6b",
	}
}

// Styles holds the lipgloss styles derived from a palette
type Styles struct {
	Header        lipgloss.Style
	StatusBar     lipgloss.Style
	SearchPrompt  lipgloss.Style
	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableSelected lipgloss.Style
	HealthGood    lipgloss.Style
	HealthMed     lipgloss.Style
	HealthBad     lipgloss.Style
	Verified      lipgloss.Style
	Muted         lipgloss.Style
	Error         lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	Panel         lipgloss.Style
	PanelTitle    lipgloss.Style
}

// NewStyles creates styles from a palette
func NewStyles(p Palette) Styles {
	fg, muted := lipgloss.Color(p.FG), lipgloss.Color(p.Muted)

	return Styles{
		Header:       lipgloss.NewStyle().Foreground(fg).Bold(true).Padding(0, 1),
		StatusBar:    lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		SearchPrompt: lipgloss.NewStyle().Foreground(muted),
		TableHeader: lipgloss.NewStyle().
			Foreground(muted).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(muted),
		TableRow: lipgloss.NewStyle().Foreground(fg),
		TableSelected: lipgloss.NewStyle().
			Foreground(fg).
			Background(lipgloss.Color(p.AccentBg)).
			Bold(true),
		HealthGood: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		HealthMed:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347")),
		HealthBad:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		Verified:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		HelpKey:    lipgloss.NewStyle().Foreground(muted),
		HelpDesc:   lipgloss.NewStyle().Foreground(fg),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Foreground(fg).Bold(true),
	}
}

var (
	mu      sync.RWMutex
	current = NewStyles(DefaultPalette())
)

// Current returns the active styles
func Current() Styles {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Refresh re-detects the palette and rebuilds the active styles
func Refresh() Palette {
	p := Detect()
	mu.Lock()
	current = NewStyles(p)
	mu.Unlock()
	return p
}
