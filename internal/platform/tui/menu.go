package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// MenuChoice is how the renderer picker was left.
type MenuChoice int

const (
	MenuOpen MenuChoice = iota
	MenuPlay
	MenuScores
	MenuQuit
)

// MenuItem is one renderer in the picker with its best stored score.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int
}

var (
	menuLogoStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("88"))
	menuDescStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("243"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel picks a renderer or opens the scoreboard. It ends its program
// with tea.Quit once a choice is made.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	choice MenuChoice
}

// NewMenuModel lists every registered renderer. Best scores come from store
// when it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{config: cfg}
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description}
		if store != nil {
			item.Best, _ = store.HighScore(g.ID)
		}
		m.items = append(m.items, item)
	}
	return m
}

func (m MenuModel) Init() tea.Cmd { return nil }

// Update moves the cursor (wrapping at both ends) and records the choice.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		n := len(m.items)
		switch MapKeyToMenuAction(msg) {
		case MenuActionUp:
			if n > 0 {
				m.cursor = (m.cursor + n - 1) % n
			}
		case MenuActionDown:
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case MenuActionSelect:
			if n > 0 {
				return m.choose(MenuPlay)
			}
		case MenuActionScoreboard:
			return m.choose(MenuScores)
		case MenuActionQuit:
			return m.choose(MenuQuit)
		}
	}
	return m, nil
}

func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	return m, tea.Quit
}

// View renders the logo, the renderer list and the description of the
// highlighted entry.
func (m MenuModel) View() string {
	if m.choice == MenuQuit {
		return ""
	}

	lines := []string{"", menuLogoStyle.Render("D O O M"), menuHintStyle.Render("choose a renderer"), ""}
	for i, item := range m.items {
		line := item.Title
		if item.Best > 0 {
			line = fmt.Sprintf("%s  (best %d)", item.Title, item.Best)
		}
		if i == m.cursor {
			lines = append(lines, menuCursorStyle.Render("> "+line+" "))
		} else {
			lines = append(lines, menuItemStyle.Render("  "+line+" "))
		}
	}

	lines = append(lines, "")
	if m.cursor < len(m.items) && m.items[m.cursor].Description != "" {
		lines = append(lines, menuDescStyle.Render(m.items[m.cursor].Description), "")
	}
	lines = append(lines, menuHintStyle.Render("↑/↓ move  enter play  tab scores  q quit"))

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = centerText(l, m.config.ScreenW)
	}
	return strings.Join(out, "\n") + "\n"
}

// Choice reports how the menu was left; MenuOpen while it is still running.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Selected returns the item under the cursor once MenuPlay was chosen.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != MenuPlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// Config is the runtime config with the latest terminal size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText left-pads text to center it in width cells. Styled text is
// measured without its escape sequences.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult is what RunMenu hands back to the command loop.
type MenuResult struct {
	Choice MenuChoice
	GameID string
	Config core.RuntimeConfig
}

// RunMenu shows the picker full screen until a choice is made. A program
// that ends without one counts as MenuQuit.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Choice: MenuQuit, Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Choice: MenuQuit, Config: cfg}, nil
	}
	res := MenuResult{Choice: m.Choice(), Config: m.Config()}
	if sel := m.Selected(); sel != nil {
		res.GameID = sel.GameID
	}
	if res.Choice == MenuOpen {
		res.Choice = MenuQuit
	}
	return res, nil
}
