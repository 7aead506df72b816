package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-doom/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"w", runes("w"), core.ActionForward},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionForward},
		{"s", runes("s"), core.ActionBackward},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionBackward},
		{"a", runes("a"), core.ActionStrafeLeft},
		{"d", runes("d"), core.ActionStrafeRight},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionTurnLeft},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionTurnRight},
		{"f", runes("f"), core.ActionFire},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionFire},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStart},
		{"m", runes("m"), core.ActionCapture},
		{"q", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("z"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestHeldActions(t *testing.T) {
	for a := core.ActionNone; a <= core.ActionQuit; a++ {
		_, hasOpposite := opposite[a]
		if held(a) != hasOpposite {
			t.Errorf("%v: held = %v but opposite defined = %v", a, held(a), hasOpposite)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("k"), MenuActionUp},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", tt.msg.String(), got, tt.want)
		}
	}
}
