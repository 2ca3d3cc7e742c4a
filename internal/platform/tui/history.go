package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/matrix-pong/internal/storage"
)

const historyLimit = 100 // Max rows loaded per view

// HistoryStore is the part of the point log the history screen reads.
type HistoryStore interface {
	RecentMatches(limit int) ([]storage.MatchSummary, error)
	RecentPoints(limit int) ([]storage.PointEntry, error)
	Totals() (storage.Totals, error)
}

// historyView selects the table shown.
type historyView int

const (
	viewMatches historyView = iota
	viewPoints
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "matches/points"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing the point log.
type HistoryModel struct {
	store    HistoryStore
	view     historyView
	matches  []storage.MatchSummary
	points   []storage.PointEntry
	totals   storage.Totals
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history screen and loads the log.
func NewHistoryModel(store HistoryStore, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *HistoryModel) load() {
	if m.store == nil {
		return
	}
	var err error
	if m.matches, err = m.store.RecentMatches(historyLimit); err != nil {
		m.err = err
	}
	if m.points, err = m.store.RecentPoints(historyLimit); err != nil {
		m.err = err
	}
	if m.totals, err = m.store.Totals(); err != nil {
		m.err = err
	}
}

// createTable creates a table with the columns of the current view.
func (m *HistoryModel) createTable() table.Model {
	var columns []table.Column
	switch m.view {
	case viewMatches:
		columns = []table.Column{
			{Title: "Match", Width: 6},
			{Title: "Source", Width: 7},
			{Title: "Started", Width: 14},
			{Title: "Score", Width: 8},
			{Title: "Points", Width: 7},
			{Title: "Rally", Width: 6},
		}
	default:
		columns = []table.Column{
			{Title: "Match", Width: 6},
			{Title: "Scorer", Width: 7},
			{Title: "Score", Width: 8},
			{Title: "Hits", Width: 5},
			{Title: "Mode", Width: 9},
			{Title: "Time", Width: 14},
		}
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// updateTableRows fills the table from the loaded log.
func (m *HistoryModel) updateTableRows() {
	var rows []table.Row
	switch m.view {
	case viewMatches:
		rows = make([]table.Row, len(m.matches))
		for i, mt := range m.matches {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", mt.ID),
				mt.Source,
				mt.StartedAt.Format("Jan 02 15:04"),
				fmt.Sprintf("%d-%d", mt.LeftScore, mt.RightScore),
				fmt.Sprintf("%d", mt.Points),
				fmt.Sprintf("%d", mt.LongestHit),
			}
		}
	default:
		rows = make([]table.Row, len(m.points))
		for i, p := range m.points {
			mode := "versus"
			if p.Practice {
				mode = "practice"
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", p.MatchID),
				p.Scorer,
				fmt.Sprintf("%d-%d", p.LeftScore, p.RightScore),
				fmt.Sprintf("%d", p.Hits),
				mode,
				p.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == viewMatches {
				m.view = viewPoints
			} else {
				m.view = viewMatches
			}
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "MATCHES"
	if m.view == viewPoints {
		title = "POINTS"
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("MATRIX PONG - "+title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(TotalsLine(m.totals)))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) renderTableContent() string {
	empty := len(m.matches) == 0
	if m.view == viewPoints {
		empty = len(m.points) == 0
	}
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No points logged yet.\nPlay a round to fill the log!")
	}
	return m.table.View()
}

// TotalsLine summarises the whole log.
func TotalsLine(t storage.Totals) string {
	return fmt.Sprintf("%d matches  %d points  left %d  right %d  longest rally %d",
		t.Matches, t.Points, t.LeftWins, t.RightWins, t.MostHits)
}

// centerText pads text so it is centred in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history screen.
func RunHistory(store HistoryStore, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
