package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-doom/internal/core"
)

type cellStyle struct {
	fg, bg core.Color
}

// ScreenRenderer turns a Screen buffer into styled terminal text. Styles are
// cached per color pair; a renderer is not safe for concurrent use.
type ScreenRenderer struct {
	lg     *lipgloss.Renderer
	styles map[cellStyle]lipgloss.Style
}

// NewScreenRenderer creates a renderer for the given lipgloss renderer, or
// the default one when r is nil. SSH sessions pass a per-session renderer so
// color support is detected on the client's terminal.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{lg: r, styles: make(map[cellStyle]lipgloss.Style)}
}

func (r *ScreenRenderer) style(key cellStyle) lipgloss.Style {
	if s, ok := r.styles[key]; ok {
		return s
	}
	s := r.lg.NewStyle()
	if !key.fg.IsDefault() {
		s = s.Foreground(lipgloss.Color(key.fg.Hex()))
	}
	if !key.bg.IsDefault() {
		s = s.Background(lipgloss.Color(key.bg.Hex()))
	}
	r.styles[key] = s
	return s
}

// Render groups adjacent cells with the same colors to minimize ANSI escape
// sequences.
func (r *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*8 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			key := cellStyle{fg: cell.Fg, bg: cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Fg != key.fg || cell.Bg != key.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if key.fg.IsDefault() && key.bg.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.style(key).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s with the default lipgloss renderer.
func RenderScreen(s *core.Screen) string {
	return NewScreenRenderer(nil).Render(s)
}
