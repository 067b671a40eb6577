package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/litescript/kat-search/internal/kat"
)

func render(w io.Writer, format string, result *kat.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "table", "":
		return renderTable(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(w io.Writer, result *kat.Result) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	number := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "Name", "Category", "Size", "Files", "Age", "Seeds", "Leechs", "Peers", "✓").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0 || (col >= 3 && col <= 4) || (col >= 6 && col <= 8):
				return number
			default:
				return cell
			}
		})

	now := time.Now()
	for i, r := range result.Results {
		verified := ""
		if r.Verified > 0 {
			verified = "✓"
		}
		t.Row(
			strconv.Itoa(i+1),
			truncate(r.Title, 60),
			r.Category,
			formatInt(r.Size),
			formatInt(r.Files),
			formatAge(r, now),
			formatInt(r.Seeds),
			formatInt(r.Leechs),
			formatInt(r.Peers()),
			verified,
		)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d of %s · %s results · %dms\n",
		result.Page, result.TotalPages, humanize.Comma(int64(result.TotalResults)), result.ResponseTime)
	return err
}

func formatInt(n kat.Int) string {
	if n.IsNaN() {
		return "NaN"
	}
	return humanize.Comma(n.Value)
}

func formatAge(t kat.Torrent, now time.Time) string {
	published, ok := t.Published()
	if !ok {
		return "-"
	}
	return humanize.RelTime(published, now, "ago", "from now")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
