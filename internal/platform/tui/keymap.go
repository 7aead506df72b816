package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-doom/internal/core"
)

// GameKeyMap holds the in-game key bindings. It also feeds the help footer.
type GameKeyMap struct {
	Forward     key.Binding
	Backward    key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	TurnLeft    key.Binding
	TurnRight   key.Binding
	Fire        key.Binding
	Start       key.Binding
	Capture     key.Binding
	Release     key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// DefaultGameKeyMap returns the default bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Forward: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "back"),
		),
		StrafeLeft: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "strafe left"),
		),
		StrafeRight: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "strafe right"),
		),
		TurnLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "turn left"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "turn right"),
		),
		Fire: key.NewBinding(
			key.WithKeys("f", "enter"),
			key.WithHelp("f/click", "fire"),
		),
		Start: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start"),
		),
		Capture: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mouse look"),
		),
		Release: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "release/back"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.StrafeLeft, k.StrafeRight, k.Fire, k.Capture, k.Start, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.StrafeLeft, k.StrafeRight},
		{k.TurnLeft, k.TurnRight, k.Fire, k.Start},
		{k.Capture, k.Release, k.Screenshot, k.Quit},
	}
}

// MapKey translates a key message to a game action.
// Returns ActionNone for keys without a binding.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Forward):
		return core.ActionForward
	case key.Matches(msg, k.Backward):
		return core.ActionBackward
	case key.Matches(msg, k.StrafeLeft):
		return core.ActionStrafeLeft
	case key.Matches(msg, k.StrafeRight):
		return core.ActionStrafeRight
	case key.Matches(msg, k.TurnLeft):
		return core.ActionTurnLeft
	case key.Matches(msg, k.TurnRight):
		return core.ActionTurnRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Capture):
		return core.ActionCapture
	}
	return core.ActionNone
}

// held reports whether an action is a movement key that the host keeps
// pressed between key repeats.
func held(a core.Action) bool {
	switch a {
	case core.ActionForward, core.ActionBackward,
		core.ActionStrafeLeft, core.ActionStrafeRight,
		core.ActionTurnLeft, core.ActionTurnRight:
		return true
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
