// Package tui implements the interactive search browser using Bubble Tea.
// It drives kat searches page by page and can hand a selected result to
// qBittorrent.
package tui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/litescript/kat-search/internal/config"
	"github.com/litescript/kat-search/internal/kat"
	"github.com/litescript/kat-search/internal/qbit"
	"github.com/litescript/kat-search/internal/theme"
	log "github.com/sirupsen/logrus"
)

// View modes
type viewMode int

const (
	viewSearch viewMode = iota
	viewResults
	viewDetails
)

// sortFields are cycled with the sort key. "" keeps the site's relevance order.
var sortFields = []string{"", "seeders", "time_add", "size", "files_count"}

// Searcher runs one search. *kat.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, spec kat.Spec) (*kat.Result, error)
}

// Sender queues a result for download. *qbit.Client satisfies it.
type Sender interface {
	AddTorrent(ctx context.Context, t kat.Torrent, savePath string) error
}

// Messages
type searchDoneMsg struct {
	query  kat.Query
	result *kat.Result
	err    error
}

type sentMsg struct {
	title string
	err   error
}

// ThemeChangedMsg asks the model to redraw with the refreshed theme.
type ThemeChangedMsg struct{}

// Model is the application state
type Model struct {
	cfg      config.Config
	searcher Searcher
	sender   Sender

	input   textinput.Model
	spinner spinner.Model

	mode      viewMode
	query     kat.Query
	result    *kat.Result
	cursor    int
	offset    int
	sortIdx   int
	searching bool
	err       error
	status    string

	width, height int
}

// NewModel creates the TUI model from config
func NewModel(cfg config.Config) Model {
	client := kat.NewClient(cfg.Search.BaseURL, cfg.Timeout(), kat.WithUserAgent(cfg.Search.UserAgent))
	q := cfg.QBittorrent
	return newModel(cfg, client, qbit.NewClient(q.Host, q.Port, q.Username, q.Password))
}

func newModel(cfg config.Config, searcher Searcher, sender Sender) Model {
	ti := textinput.New()
	ti.Placeholder = "search KickassTorrents..."
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		cfg:      cfg,
		searcher: searcher,
		sender:   sender,
		input:    ti,
		spinner:  sp,
		mode:     viewSearch,
		width:    100,
		height:   30,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) search(q kat.Query) tea.Cmd {
	searcher := m.searcher
	return func() tea.Msg {
		result, err := searcher.Search(context.Background(), &q)
		return searchDoneMsg{query: q, result: result, err: err}
	}
}

func (m Model) send(t kat.Torrent) tea.Cmd {
	sender, savePath := m.sender, m.cfg.QBittorrent.SavePath
	return func() tea.Msg {
		return sentMsg{title: t.Title, err: sender.AddTorrent(context.Background(), t, savePath)}
	}
}

// startSearch issues the request for q and shows the spinner
func (m Model) startSearch(q kat.Query) (Model, tea.Cmd) {
	m.searching = true
	m.err = nil
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, m.search(q))
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchDoneMsg:
		m.searching = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.query = msg.query
		m.result = msg.result
		m.cursor, m.offset = 0, 0
		m.mode = viewResults
		m.input.Blur()
		return m, nil

	case sentMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("qBittorrent: %w", msg.err)
		} else {
			m.status = "Queued: " + msg.title
		}
		return m, nil

	case ThemeChangedMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case viewSearch:
			return m.updateSearch(msg)
		case viewResults:
			return m.updateResults(msg)
		case viewDetails:
			return m.updateDetails(msg)
		}
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.searching {
			return m, nil
		}
		return m.startSearch(kat.Query{Query: text, SortBy: sortFields[m.sortIdx], Order: m.order()})
	case "esc":
		if m.result != nil {
			m.mode = viewResults
			m.input.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.mode = viewSearch
		m.input.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "enter":
		if len(rows) > 0 {
			m.mode = viewDetails
		}
	case "n":
		if !m.searching && m.hasNextPage() {
			q := m.query
			q.Page = m.currentPage() + 1
			return m.startSearch(q)
		}
	case "p":
		if !m.searching && m.currentPage() > 1 {
			q := m.query
			q.Page = m.currentPage() - 1
			return m.startSearch(q)
		}
	case "s":
		if !m.searching {
			m.sortIdx = (m.sortIdx + 1) % len(sortFields)
			q := m.query
			q.Page, q.SortBy, q.Order = 0, sortFields[m.sortIdx], m.order()
			return m.startSearch(q)
		}
	case "d":
		if len(rows) > 0 {
			return m, m.send(rows[m.cursor])
		}
	}

	m.scroll()
	return m, nil
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.mode = viewResults
	case "d":
		if rows := m.rows(); len(rows) > 0 {
			return m, m.send(rows[m.cursor])
		}
	}
	return m, nil
}

func (m Model) order() string {
	if sortFields[m.sortIdx] == "" {
		return ""
	}
	return "desc"
}

func (m Model) rows() []kat.Torrent {
	if m.result == nil {
		return nil
	}
	return m.result.Results
}

func (m Model) currentPage() int {
	if m.result == nil || m.result.Page == 0 {
		return 1
	}
	return m.result.Page
}

func (m Model) hasNextPage() bool {
	return m.result != nil && m.result.TotalPages.Valid && int64(m.currentPage()) < m.result.TotalPages.Value
}

// visibleRows is how many result rows fit between header and footer.
func (m Model) visibleRows() int {
	if n := m.height - 8; n > 1 {
		return n
	}
	return 1
}

// scroll keeps the cursor inside the visible window
func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.visibleRows() {
		m.offset = m.cursor - m.visibleRows() + 1
	}
}

// Run starts the TUI and blocks until the user quits
func Run(cfg config.Config) error {
	// Logs would draw over the alt screen.
	log.SetOutput(io.Discard)

	theme.Refresh()
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())

	watcher, err := theme.NewWatcher(func(theme.Palette) {
		p.Send(ThemeChangedMsg{})
	}, filepath.Dir(config.ConfigPath()))
	if err == nil {
		defer watcher.Stop()
	}

	_, err = p.Run()
	return err
}
