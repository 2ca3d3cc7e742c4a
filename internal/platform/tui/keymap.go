package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// KeyMap defines the key bindings of the play screen. The slider keys
// stand in for the two potentiometers and the button keys for the three
// push buttons.
type KeyMap struct {
	LeftUp       key.Binding
	LeftDown     key.Binding
	RightUp      key.Binding
	RightDown    key.Binding
	Reset        key.Binding
	Pause        key.Binding
	PlayerChange key.Binding
	Screenshot   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reset, k.PlayerChange, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftUp, k.LeftDown, k.RightUp, k.RightDown},
		{k.Pause, k.Reset, k.PlayerChange},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LeftUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "left up"),
		),
		LeftDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "left down"),
		),
		RightUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "right up"),
		),
		RightDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "right down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "start/pause"),
		),
		PlayerChange: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "practice on/off"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Edge maps a key message onto the button it emulates.
func (k KeyMap) Edge(msg tea.KeyMsg) core.Edge {
	switch {
	case key.Matches(msg, k.Reset):
		return core.EdgeReset
	case key.Matches(msg, k.Pause):
		return core.EdgePause
	case key.Matches(msg, k.PlayerChange):
		return core.EdgePlayerChange
	}
	return core.EdgeNone
}

// SliderDelta maps a key message onto a slider move. It returns whether the
// key moves the left slider, the direction (+1 up, -1 down) and ok=false for
// keys that move nothing.
func (k KeyMap) SliderDelta(msg tea.KeyMsg) (left bool, dir float64, ok bool) {
	switch {
	case key.Matches(msg, k.LeftUp):
		return true, 1, true
	case key.Matches(msg, k.LeftDown):
		return true, -1, true
	case key.Matches(msg, k.RightUp):
		return false, 1, true
	case key.Matches(msg, k.RightDown):
		return false, -1, true
	}
	return false, 0, false
}
