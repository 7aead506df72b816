package tui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// SessionModel is the whole program of one SSH connection. It shows the
// menu and swaps in a game or the scoreboard; leaving either returns to a
// fresh menu. At most one of gameModel and scoreboard is set.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	logger   *log.Logger
	renderer *lipgloss.Renderer

	menu       MenuModel
	gameModel  *Model
	scoreboard *ScoreboardModel

	started  int // games started in this session
	quitting bool
}

// NewSessionModel starts a session on the menu. A nil logger logs to stderr.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		logger:   logger.With("user", username),
		menu:     NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes msg to the active screen. The menu and the scoreboard end
// themselves with tea.Quit; the session only quits when the user does.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	if m.gameModel != nil {
		next, cmd := m.gameModel.Update(msg)
		gm := next.(Model)
		m.gameModel = &gm
		switch {
		case gm.IsQuitting():
			return m.end()
		case gm.BackToMenu():
			m.logger.Info("game left", "game", gm.game.ID(), "score", gm.gameState.Score, "won", gm.gameState.Won)
			return m.backToMenu()
		}
		return m, cmd
	}

	if m.scoreboard != nil {
		next, cmd := m.scoreboard.Update(msg)
		sb := next.(ScoreboardModel)
		m.scoreboard = &sb
		switch {
		case sb.IsQuitting():
			return m.end()
		case sb.IsGoingBack():
			return m.backToMenu()
		}
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	switch m.menu.Choice() {
	case MenuQuit:
		return m.end()
	case MenuScores:
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, nil
	case MenuPlay:
		return m.startGame(m.menu.Selected().GameID)
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.logger.Error("cannot create game", "game", id, "error", err)
		return m.backToMenu()
	}

	cfg := m.config
	cfg.Seed = m.nextSeed()
	m.started++

	gm := NewModel(game, m.store, cfg, m.logger).withRenderer(m.renderer)
	gm.embedded = true
	m.gameModel = &gm
	m.logger.Info("game started", "game", id, "seed", cfg.Seed)
	return m, gm.Init()
}

// nextSeed picks the seed of the next game. A fixed session seed makes every
// game of the session reproducible; zero means a fresh seed per game.
func (m SessionModel) nextSeed() int64 {
	if m.config.Seed == 0 {
		return time.Now().UnixNano()
	}
	return m.config.Seed + int64(m.started)
}

// backToMenu rebuilds the menu so best scores include the last game.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.gameModel = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) end() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
