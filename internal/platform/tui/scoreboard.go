package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

const maxScoreRows = 100

// resultFilter narrows the table to one kind of finished session.
type resultFilter int

const (
	filterAll resultFilter = iota
	filterCleared
	filterDied
)

func (f resultFilter) String() string {
	switch f {
	case filterCleared:
		return "cleared"
	case filterDied:
		return "died"
	default:
		return "all"
	}
}

func (f resultFilter) match(e storage.ScoreEntry) bool {
	switch f {
	case filterCleared:
		return e.Won
	case filterDied:
		return !e.Won
	}
	return true
}

func resultLabel(won bool) string {
	if won {
		return "cleared"
	}
	return "died"
}

// scoreStats summarizes every stored session of one game.
type scoreStats struct {
	Sessions int
	Clears   int
	Best     int
	Average  int
}

func summarize(entries []storage.ScoreEntry) scoreStats {
	var st scoreStats
	total := 0
	for _, e := range entries {
		st.Sessions++
		total += e.Score
		st.Best = max(st.Best, e.Score)
		if e.Won {
			st.Clears++
		}
	}
	if st.Sessions > 0 {
		st.Average = total / st.Sessions
	}
	return st
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Filter   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Filter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Filter, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next renderer"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev renderer"),
		),
		Filter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cleared/died"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("88"))
	boardStatStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	entries    []storage.ScoreEntry // every session of the current game, best first
	rows       []storage.ScoreEntry // entries passing the filter
	stats      scoreStats
	filter     resultFilter
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard opened on the first registered
// game. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	if len(m.games) > 0 {
		m.loadScores(m.games[0].ID)
	}
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	dateW := 18
	if m.width > 0 {
		dateW = max(12, min(m.width-40, 18))
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Result", Width: 8},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("88")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// SelectGame moves the cursor to the game with the given ID and loads its
// scores. Unknown IDs are ignored.
func (m *ScoreboardModel) SelectGame(id string) {
	for i, g := range m.games {
		if g.ID == id {
			m.gameCursor = i
			m.loadScores(id)
			return
		}
	}
}

func (m *ScoreboardModel) loadScores(gameID string) {
	m.entries = nil
	if m.store != nil {
		if entries, err := m.store.AllScores(gameID); err == nil {
			m.entries = entries
		}
	}
	m.stats = summarize(m.entries)
	m.applyFilter()
}

func (m *ScoreboardModel) applyFilter() {
	m.rows = nil
	for _, e := range m.entries {
		if len(m.rows) == maxScoreRows {
			break
		}
		if m.filter.match(e) {
			m.rows = append(m.rows, e)
		}
	}

	rows := make([]table.Row, len(m.rows))
	for i, e := range m.rows {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(e.Score),
			resultLabel(e.Won),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchGame(step int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + step + len(m.games)) % len(m.games)
	m.loadScores(m.games[m.gameCursor].ID)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.switchGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % 3
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	if len(m.games) > 0 {
		tabs := make([]string, len(m.games))
		for i, g := range m.games {
			style := boardTabStyle
			if i == m.gameCursor {
				style = boardActiveTab
			}
			tabs[i] = style.Render(g.Title)
		}
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
			lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
		b.WriteString("\n")
	}

	stats := fmt.Sprintf("sessions %d  clears %d  best %d  average %d  showing %s",
		m.stats.Sessions, m.stats.Clears, m.stats.Best, m.stats.Average, m.filter)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardStatStyle.Render(stats)))
	b.WriteString("\n")

	var content string
	switch {
	case len(m.entries) == 0:
		content = boardEmptyStyle.Render("No scores recorded yet.\nClear the arena to set a high score!")
	case len(m.rows) == 0:
		content = boardEmptyStyle.Render(fmt.Sprintf("No %s sessions.", m.filter))
	default:
		content = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(content)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen, opened on gameID when set.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int, gameID string) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	if gameID != "" {
		model.SelectGame(gameID)
	}

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
