package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/litescript/kat-search/internal/kat"
	"github.com/litescript/kat-search/internal/theme"
	"github.com/litescript/kat-search/internal/version"
)

// Column widths of the results table, title takes the rest.
const (
	colCategory = 12
	colSize     = 6
	colFiles    = 6
	colAge      = 14
	colSeeds    = 8
	colLeechs   = 8
	colHealth   = 10
)

// View implements tea.Model
func (m Model) View() string {
	styles := theme.Current()
	var b strings.Builder

	b.WriteString(styles.Header.Render("kat-search v" + version.Version))
	b.WriteString("\n")

	switch m.mode {
	case viewSearch:
		b.WriteString(m.viewSearch())
	case viewResults:
		b.WriteString(m.viewResults())
	case viewDetails:
		b.WriteString(m.viewDetails())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	return b.String()
}

func (m Model) viewSearch() string {
	styles := theme.Current()
	return "\n" + styles.SearchPrompt.Render("Search: ") + m.input.View() + "\n"
}

func (m Model) titleWidth() int {
	fixed := colCategory + colSize + colFiles + colAge + colSeeds + colLeechs + colHealth + 10
	if w := m.width - fixed; w > 20 {
		return w
	}
	return 20
}

func (m Model) viewResults() string {
	styles := theme.Current()
	var b strings.Builder

	r := m.result
	summary := fmt.Sprintf("%q · page %d/%s · %d results · %dms",
		m.query.Query, m.currentPage(), r.TotalPages, r.TotalResults, r.ResponseTime)
	if sortFields[m.sortIdx] != "" {
		summary += " · sorted by " + sortFields[m.sortIdx]
	}
	b.WriteString(styles.Muted.Render(summary))
	b.WriteString("\n")

	header := strings.Join([]string{
		" ",
		PadRight("Name", m.titleWidth()),
		PadRight("Category", colCategory),
		PadLeft("Size", colSize),
		PadLeft("Files", colFiles),
		PadRight(" Age", colAge),
		PadLeft("Seeds", colSeeds),
		PadLeft("Leechs", colLeechs),
		" Health",
	}, " ")
	b.WriteString(styles.TableHeader.Render(header))
	b.WriteString("\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(styles.Muted.Render("  No results on this page."))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.visibleRows()
	if end > len(rows) {
		end = len(rows)
	}
	for i := m.offset; i < end; i++ {
		t := rows[i]
		mark := " "
		if t.Verified > 0 {
			mark = styles.Verified.Render("✓")
		}
		line := strings.Join([]string{
			PadRight(t.Title, m.titleWidth()),
			PadRight(t.Category, colCategory),
			PadLeft(formatInt(t.Size), colSize),
			PadLeft(formatInt(t.Files), colFiles),
			PadRight(" "+formatAge(t), colAge),
			PadLeft(formatInt(t.Seeds), colSeeds),
			PadLeft(formatInt(t.Leechs), colLeechs),
		}, " ")

		style := styles.TableRow
		if i == m.cursor {
			style = styles.TableSelected
		}
		b.WriteString(mark + " " + style.Render(line) + "  " + HealthBar(t.Health(), colHealth-2) + "\n")
	}
	return b.String()
}

func (m Model) viewDetails() string {
	styles := theme.Current()
	t := m.rows()[m.cursor]

	verified := "no"
	if t.Verified > 0 {
		verified = styles.Verified.Render("yes")
	}

	fields := []struct{ label, value string }{
		{"Category", t.Category},
		{"Link", t.Link},
		{"Verified", verified},
		{"Comments", formatInt(t.Comments)},
		{"Size", formatInt(t.Size)},
		{"Files", formatInt(t.Files)},
		{"Published", formatAge(t)},
		{"Seeds", formatInt(t.Seeds)},
		{"Leechs", formatInt(t.Leechs)},
		{"Peers", formatInt(t.Peers())},
		{"Magnet", orDash(t.Magnet)},
		{"Torrent", orDash(t.TorrentLink)},
	}

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render(t.Title))
	b.WriteString("\n\n")
	for _, f := range fields {
		b.WriteString(styles.Muted.Render(PadRight(f.label, 10)))
		b.WriteString(Truncate(f.value, m.width-16))
		b.WriteString("\n")
	}
	return styles.Panel.Render(b.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (m Model) viewStatus() string {
	styles := theme.Current()

	switch {
	case m.searching:
		return styles.StatusBar.Render(m.spinner.View() + " Searching...")
	case m.err != nil:
		return styles.Error.Render(" " + errorText(m.err))
	case m.status != "":
		return styles.StatusBar.Render(m.status)
	}

	var keys []string
	switch m.mode {
	case viewSearch:
		keys = []string{"enter", "search", "esc", "results", "ctrl+c", "quit"}
	case viewResults:
		keys = []string{"↑/↓", "move", "enter", "details", "n/p", "page", "s", "sort", "d", "download", "/", "search", "q", "quit"}
	case viewDetails:
		keys = []string{"d", "download", "esc", "back"}
	}

	var parts []string
	for i := 0; i+1 < len(keys); i += 2 {
		parts = append(parts, styles.HelpKey.Render(keys[i])+" "+styles.HelpDesc.Render(keys[i+1]))
	}
	return styles.StatusBar.Render(strings.Join(parts, "  "))
}

// errorText turns search failures into a status line
func errorText(err error) string {
	switch {
	case errors.Is(err, kat.ErrMissingTotal):
		return "No results page returned (the site layout may have changed)"
	case errors.Is(err, kat.ErrFetch):
		return err.Error()
	default:
		return "Error: " + err.Error()
	}
}
