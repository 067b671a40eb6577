package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

// Detect loads the palette from the user's terminal config
func Detect() Palette {
	home, err := os.UserHomeDir()
	if err != nil {
		return applyEnvOverrides(DefaultPalette())
	}
	return DetectIn(home)
}

// DetectIn looks for Alacritty, then Foot, configs under home and applies
// environment overrides on top.
func DetectIn(home string) Palette {
	for _, path := range alacrittyPaths(home) {
		if p, ok := parseAlacritty(path); ok {
			return applyEnvOverrides(p)
		}
	}
	if p, ok := parseFoot(filepath.Join(home, ".config", "foot", "foot.ini")); ok {
		return applyEnvOverrides(p)
	}
	return applyEnvOverrides(DefaultPalette())
}

func alacrittyPaths(home string) []string {
	return []string{
		filepath.Join(home, ".config", "alacritty", "alacritty.toml"),
		filepath.Join(home, ".alacritty.toml"),
	}
}

type alacrittyConfig struct {
	Colors struct {
		Primary struct {
			Background string `toml:"background"`
			Foreground string `toml:"foreground"`
		} `toml:"primary"`
		Selection struct {
			Background string `toml:"background"`
		} `toml:"selection"`
	} `toml:"colors"`
}

func parseAlacritty(path string) (Palette, bool) {
	var cfg alacrittyConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Palette{}, false
	}
	return fromTerminal(cfg.Colors.Primary.Background, cfg.Colors.Primary.Foreground, cfg.Colors.Selection.Background)
}

func parseFoot(path string) (Palette, bool) {
	cfg, err := ini.Load(path)
	if err != nil {
		return Palette{}, false
	}
	colors := cfg.Section("colors")
	return fromTerminal(
		colors.Key("background").String(),
		colors.Key("foreground").String(),
		colors.Key("selection-background").String(),
	)
}

// fromTerminal builds a palette from terminal colors; bg and fg are required.
func fromTerminal(bg, fg, selection string) (Palette, bool) {
	if bg == "" || fg == "" {
		return Palette{}, false
	}

	p := DefaultPalette()
	p.BG = normalizeHex(bg)
	p.FG = normalizeHex(fg)
	p.Muted = mix(p.BG, p.FG, 0.5)
	if selection != "" {
		p.AccentBg = normalizeHex(selection)
	} else {
		p.AccentBg = mix(p.BG, p.FG, 0.15)
	}
	return p, true
}

func applyEnvOverrides(p Palette) Palette {
	for env, field := range map[string]*string{
		"KAT_SEARCH_BG":     &p.BG,
		"KAT_SEARCH_FG":     &p.FG,
		"KAT_SEARCH_MUTED":  &p.Muted,
		"KAT_SEARCH_ACCENT": &p.Accent,
	} {
		if v := os.Getenv(env); v != "" {
			*field = normalizeHex(v)
		}
	}
	return p
}

// normalizeHex turns 0xRRGGBB, RRGGBB and #RGB into #rrggbb. Anything else
// is returned unchanged.
func normalizeHex(color string) string {
	c := strings.ToLower(strings.TrimSpace(color))
	c = strings.TrimPrefix(c, "0x")
	c = strings.TrimPrefix(c, "#")

	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	if len(c) != 6 {
		return color
	}
	if _, err := strconv.ParseUint(c, 16, 32); err != nil {
		return color
	}
	return "#" + c
}

func rgb(hex string) (r, g, b uint8, ok bool) {
	hex = normalizeHex(hex)
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// mix blends a toward b by t in [0,1].
func mix(a, b string, t float64) string {
	r1, g1, b1, ok1 := rgb(a)
	r2, g2, b2, ok2 := rgb(b)
	if !ok1 || !ok2 {
		return a
	}
	blend := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-t) + float64(y)*t)
	}
	return fmt.Sprintf("#%02x%02x%02x", blend(r1, r2), blend(g1, g2), blend(b1, b2))
}
