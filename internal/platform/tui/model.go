package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/matrix-pong/internal/core"
	"github.com/vovakirdan/matrix-pong/internal/input"
	"github.com/vovakirdan/matrix-pong/internal/pong"
)

// EdgeSender accepts button edges. pong.Simulation implements it.
type EdgeSender interface {
	Send(e core.Edge) bool
}

// FrameSource provides the latest complete panel frame.
// scanout.VirtualSink implements it.
type FrameSource interface {
	Latest() *core.Frame
}

// StateSource provides the shared game state. pong.Table implements it.
type StateSource interface {
	Snapshot() pong.Snapshot
}

// PlayConfig wires a play screen to a running game.
type PlayConfig struct {
	Edges   EdgeSender
	Sliders *input.VirtualSliders
	Frames  FrameSource
	State   StateSource
	Step    float64 // Slider travel per key press
	FPS     int     // Redraw rate
	ShotDir string  // Screenshot directory, defaults to ~/.matrixpong/screenshots

	// Spectate disables the controls. Only quit and help remain.
	Spectate bool
}

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// Model is the Bubble Tea model of the play screen.
type Model struct {
	cfg      PlayConfig
	keys     KeyMap
	helpKeys help.KeyMap
	help     help.Model
	frame    *core.Frame
	snap     pong.Snapshot
	notice   string
	quitting bool
}

// NewModel creates a play screen for cfg.
func NewModel(cfg PlayConfig) Model {
	if cfg.Step <= 0 {
		cfg.Step = 0.05
	}
	if cfg.ShotDir == "" {
		cfg.ShotDir = filepath.Join(os.Getenv("HOME"), ".matrixpong", "screenshots")
	}
	m := Model{
		cfg:  cfg,
		keys: DefaultKeyMap(),
		help: help.New(),
	}
	m.helpKeys = m.keys
	if cfg.Spectate {
		m.helpKeys = spectatorKeys{m.keys}
	}
	m.refresh()
	return m
}

// Init starts the redraw loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.refresh()
		return m, tickCmd(m.cfg.FPS)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.cfg.Spectate {
		return m, nil
	}

	if e := m.keys.Edge(msg); e != core.EdgeNone {
		if m.cfg.Edges != nil && !m.cfg.Edges.Send(e) {
			m.notice = "button queue full, press dropped"
		}
		return m, nil
	}

	if left, dir, ok := m.keys.SliderDelta(msg); ok && m.cfg.Sliders != nil {
		m.cfg.Sliders.Side(left).Nudge(dir * m.cfg.Step)
	}
	return m, nil
}

func (m *Model) refresh() {
	if m.cfg.Frames != nil {
		m.frame = m.cfg.Frames.Latest()
	}
	if m.cfg.State != nil {
		m.snap = m.cfg.State.Snapshot()
	}
}

// saveScreenshot writes the current frame as text.
func (m *Model) saveScreenshot() {
	if m.frame == nil {
		return
	}
	if err := os.MkdirAll(m.cfg.ShotDir, 0o755); err != nil {
		m.notice = fmt.Sprintf("screenshot failed: %v", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.cfg.ShotDir, fmt.Sprintf("matrixpong_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.frame.String()+"\n"), 0o600); err != nil {
		m.notice = fmt.Sprintf("screenshot failed: %v", err)
		return
	}
	m.notice = "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(statusStyle.Render(StatusLine(m.snap)))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(RenderFrame(m.frame)))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(dimStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.helpKeys)))
	return b.String()
}

// StatusLine summarises the score and round state.
func StatusLine(s pong.Snapshot) string {
	mode := s.Mode.String()
	if s.Overlay == pong.OverlayScoreFlash {
		mode = "point"
	}
	practice := "off"
	if s.Practice {
		practice = "on"
	}
	return fmt.Sprintf("LEFT %d : %d RIGHT   %s   practice %s",
		s.Score.Left, s.Score.Right, mode, practice)
}

// RunPlay runs the play screen until the user quits.
func RunPlay(cfg PlayConfig) error {
	p := tea.NewProgram(
		NewModel(cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// spectatorKeys limits the help view to the keys a spectator can use.
type spectatorKeys struct {
	KeyMap
}

func (k spectatorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k spectatorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.Quit}}
}
