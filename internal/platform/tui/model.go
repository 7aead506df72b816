package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// LookCellPixels converts mouse motion in terminal cells into pointer
// pixels, the unit the look sensitivity is tuned for.
const LookCellPixels = 8.0

// opposite keys release each other so a quick direction change does not
// leave both held until the older one expires.
var opposite = map[core.Action]core.Action{
	core.ActionForward:     core.ActionBackward,
	core.ActionBackward:    core.ActionForward,
	core.ActionStrafeLeft:  core.ActionStrafeRight,
	core.ActionStrafeRight: core.ActionStrafeLeft,
	core.ActionTurnLeft:    core.ActionTurnRight,
	core.ActionTurnRight:   core.ActionTurnLeft,
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	renderer *ScreenRenderer
	keys     GameKeyMap
	help     help.Model
	config   core.RuntimeConfig
	now      func() time.Time

	holds    *holdTracker
	pending  core.InputFrame // one-shot actions and look delta since the last tick
	captured bool
	mouseX   int
	hasMouse bool

	gameState  core.GameState
	scoreSaved bool // Whether the score has been saved for the current game over
	quitting   bool
	backToMenu bool
	embedded   bool // Running inside a session menu; esc goes back instead of quitting
}

// NewModel creates a new Bubble Tea model for the given game. store and
// logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, viewHeight(cfg.ScreenH)),
		store:    store,
		logger:   logger,
		renderer: NewScreenRenderer(nil),
		keys:     DefaultGameKeyMap(),
		help:     h,
		config:   cfg,
		now:      time.Now,
		holds:    newHoldTracker(),
		pending:  core.NewInputFrame(),
	}
}

// viewHeight leaves the bottom terminal row to the help footer.
func viewHeight(h int) int {
	return max(h-1, 0)
}

// withRenderer sets the lipgloss renderer used for output.
func (m Model) withRenderer(r *lipgloss.Renderer) Model {
	m.renderer = NewScreenRenderer(r)
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.resetGame()
	return tickCmd(m.config.TickRate)
}

func (m *Model) resetGame() {
	cfg := m.config
	cfg.ScreenH = viewHeight(cfg.ScreenH)
	m.game.Reset(cfg)

	if e, ok := m.game.(interface{ Err() error }); ok {
		if err := e.Err(); err != nil {
			m.logger.Warn("game config rejected, running on defaults", "game", m.game.ID(), "error", err)
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "esc":
		if m.captured {
			m.setCaptured(false)
			return m, nil
		}
		if m.gameState.Paused || m.gameState.GameOver {
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionCapture:
		m.setCaptured(!m.captured)
	case action == core.ActionStart:
		// Starting a session takes the mouse, the way clicking into the
		// view does.
		m.setCaptured(true)
		m.pending.Set(core.ActionStart)
	case action == core.ActionFire:
		m.pending.Set(core.ActionFire)
	case held(action):
		m.holds.Release(opposite[action])
		m.holds.Press(action, m.now())
	}
	return m, nil
}

// handleMouse turns pointer motion into look deltas and clicks into fire.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.captured && m.hasMouse {
			m.pending.Look += float64(msg.X-m.mouseX) * LookCellPixels
		}
	case tea.MouseActionPress:
		view := core.NewRect(0, 0, m.screen.Width(), m.screen.Height())
		if msg.Button != tea.MouseButtonLeft || !view.Contains(msg.X, msg.Y) {
			break
		}
		if m.captured {
			m.pending.Set(core.ActionFire)
		} else {
			m.setCaptured(true)
		}
	}
	m.mouseX = msg.X
	m.hasMouse = true
	return m, nil
}

func (m *Model) setCaptured(on bool) {
	m.captured = on
	m.pending.Look = 0
}

// handleResize processes window resize events. The game fits its view to
// the screen on every render, so no reset is needed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, viewHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	frame := m.pending.Clone()
	m.holds.Apply(&frame, m.now())
	frame.Captured = m.captured

	result := m.game.Step(frame)
	m.gameState = result.State
	m.saveScore()

	m.pending.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore stores the result once per finished session.
func (m *Model) saveScore() {
	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveResult(m.game.ID(), m.gameState.Score, m.gameState.Won); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the game for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Captured reports whether mouse look is on.
func (m Model) Captured() bool {
	return m.captured
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
