package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stealth/internal/core"
	"github.com/vovakirdan/tui-stealth/internal/stage"
	"github.com/vovakirdan/tui-stealth/internal/storage"
)

// Records layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the track sidebar
	sidebarWidth       = 20  // Width of the track sidebar
	maxRecords         = 100 // Max records to load
)

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextTrack key.Binding
	PrevTrack key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTrack, k.PrevTrack, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTrack, k.PrevTrack},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTrack: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next track"),
		),
		PrevTrack: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev track"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// track is one selectable records list.
type track struct {
	ID    string
	Title string
}

// tracksFor lists the campaign followed by every stage.
func tracksFor(stages []stage.Stage) []track {
	tracks := []track{{ID: storage.TrackCampaign, Title: "Campaign"}}
	for _, st := range stages {
		tracks = append(tracks, track{
			ID:    storage.StageTrack(st.ID),
			Title: fmt.Sprintf("%d. %s", st.ID, st.Name),
		})
	}
	return tracks
}

// RecordsModel is the Bubble Tea model for the best-times screen.
type RecordsModel struct {
	tracks      []track
	cursor      int
	store       *storage.Store
	records     []storage.RecordEntry
	stats       map[string]storage.TrackStats
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRecordsModel creates a records screen over the given stages.
func NewRecordsModel(store *storage.Store, stages []stage.Stage, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		tracks:      tracksFor(stages),
		store:       store,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadStats()
	m.loadRecords()
	return m
}

func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Time", Width: 12},
		{Title: "Date", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RecordsModel) loadStats() {
	m.stats = make(map[string]storage.TrackStats)
	if m.store == nil {
		return
	}
	stats, err := m.store.Tracks()
	if err != nil {
		return
	}
	for _, ts := range stats {
		m.stats[ts.Track] = ts
	}
}

func (m *RecordsModel) loadRecords() {
	m.records = nil
	if m.store != nil && len(m.tracks) > 0 {
		if recs, err := m.store.TopTimes(m.tracks[m.cursor].ID, maxRecords); err == nil {
			m.records = recs
		}
	}

	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%.3fs", r.Time.Seconds()),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTrack):
			m.cursor = (m.cursor + 1) % len(m.tracks)
			m.loadRecords()
			return m, nil

		case key.Matches(msg, m.keys.PrevTrack):
			m.cursor = (m.cursor - 1 + len(m.tracks)) % len(m.tracks)
			m.loadRecords()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.loadRecords()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Track returns the id of the selected track.
func (m RecordsModel) Track() string {
	return m.tracks[m.cursor].ID
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := fmt.Sprintf("BEST TIMES - %s", m.tracks[m.cursor].Title)
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(m.tableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", content))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.tracks[m.cursor].Title), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RecordsModel) summary() string {
	ts, ok := m.stats[m.tracks[m.cursor].ID]
	if !ok {
		return ""
	}
	return fmt.Sprintf("runs %d   best %.3fs   average %.3fs   last %s",
		ts.Runs, ts.Best.Seconds(), ts.Average.Seconds(), ts.LastPlayed.Format("Jan 02 15:04"))
}

func (m RecordsModel) sidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Tracks\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, t := range m.tracks {
		cursor := "  "
		ls := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			ls = ls.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := []rune(t.Title)
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = append(name[:maxLen-1], '.')
		}
		sb.WriteString(ls.Render(cursor + string(name)))
		sb.WriteString("\n")
	}

	return style.Render(sb.String())
}

func (m RecordsModel) tableContent() string {
	if len(m.records) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No times recorded yet.\nClear a stage to set one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}
