package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// The menu and session list whatever is registered; this package registers
// nothing of its own.
func init() {
	registry.Register("recording", func() registry.Game { return &recordingGame{} })
}

func sessionStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestMenuListsBestScore(t *testing.T) {
	store := sessionStore(t)
	if _, err := store.SaveResult("recording", 700, true); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	if len(m.items) == 0 {
		t.Fatal("menu is empty")
	}
	if !strings.Contains(m.View(), "Recording  (best 700)") {
		t.Errorf("view = %q", m.View())
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || cmd == nil {
		t.Fatal("enter should select and end the menu")
	}
}

func TestSessionGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 60}, "tester", log.New(io.Discard))

	// Move the cursor onto the recording game before selecting it.
	for i, item := range m.menu.items {
		if item.GameID == "recording" {
			m.menu.cursor = i
		}
	}

	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gameModel == nil {
		t.Fatal("selecting a game did not start it")
	}
	if cmd == nil {
		t.Error("game start should schedule its first tick")
	}
	if !m.gameModel.embedded {
		t.Error("session games must be embedded")
	}

	// Waiting game: esc leaves for the menu instead of closing the session.
	m.gameModel.game.(*recordingGame).state.Paused = true
	m, _ = sendSession(t, m, TickMsg{})
	m, cmd = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.gameModel != nil || m.quitting {
		t.Fatal("esc should return to the menu")
	}
	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("leaving a game ended the session")
		}
	}
	if !strings.Contains(m.View(), "D O O M") {
		t.Error("menu not shown after leaving the game")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(sessionStore(t), core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "tester", nil)

	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if cmd != nil {
		t.Error("opening the scoreboard must not quit the session")
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.scoreboard != nil || m.quitting {
		t.Error("esc should go back to the menu")
	}

	m, cmd = sendSession(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
	if m.View() != "" {
		t.Error("view drawn after quitting")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20}, "tester", log.New(io.Discard))
	for i, item := range m.menu.items {
		if item.GameID == "recording" {
			m.menu.cursor = i
		}
	}
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = sendSession(t, m, tea.WindowSizeMsg{Width: 90, Height: 33})

	if m.config.ScreenW != 90 || m.gameModel.screen.Height() != 32 {
		t.Errorf("config = %+v, game screen height = %d", m.config, m.gameModel.screen.Height())
	}
}

func TestMenuDescribesHighlighted(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 20})
	for i, item := range m.items {
		if item.GameID == "recording" {
			m.cursor = i
		}
	}
	if !strings.Contains(m.View(), "replays nothing, remembers everything") {
		t.Errorf("view = %q", m.View())
	}
}

func TestSessionSeeds(t *testing.T) {
	fixed := NewSessionModel(nil, core.RuntimeConfig{Seed: 40}, "tester", log.New(io.Discard))
	if got := fixed.nextSeed(); got != 40 {
		t.Errorf("first seed = %d, expected 40", got)
	}
	fixed.started = 2
	if got := fixed.nextSeed(); got != 42 {
		t.Errorf("third seed = %d, expected 42", got)
	}

	fresh := NewSessionModel(nil, core.RuntimeConfig{}, "tester", log.New(io.Discard))
	if fresh.nextSeed() == 0 {
		t.Error("unseeded session produced a zero seed")
	}
}
