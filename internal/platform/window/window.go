// Package window hosts the simulation in a desktop window through ebiten:
// real key up/down events, a captured pointer for mouse look and the frame
// drawn at full pixel resolution.
package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-doom/internal/audio"
	"github.com/vovakirdan/tui-doom/internal/raster"
	"github.com/vovakirdan/tui-doom/internal/raycast"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// Window and surface size in pixels.
const (
	Width  = 800
	Height = 600
)

const minimapScale = 6

// Config holds what the host needs besides the simulation options.
type Config struct {
	Title  string
	GameID string // score key
	TPS    int
	Store  *storage.Store // nil disables score saving
	Logger *log.Logger
}

var keyBindings = []struct {
	key  raycast.Key
	keys []ebiten.Key
}{
	{raycast.KeyForward, []ebiten.Key{ebiten.KeyW, ebiten.KeyUp}},
	{raycast.KeyBackward, []ebiten.Key{ebiten.KeyS, ebiten.KeyDown}},
	{raycast.KeyStrafeLeft, []ebiten.Key{ebiten.KeyA}},
	{raycast.KeyStrafeRight, []ebiten.Key{ebiten.KeyD}},
	{raycast.KeyTurnLeft, []ebiten.Key{ebiten.KeyLeft}},
	{raycast.KeyTurnRight, []ebiten.Key{ebiten.KeyRight}},
}

// Game implements ebiten.Game around a simulation.
type Game struct {
	cfg      Config
	sim      *raycast.Simulation
	controls raycast.Controls

	view   *ebiten.Image
	pixels []byte

	tick    uint64
	tickDur time.Duration

	mouseX    int
	hasMouse  bool
	clickHeld bool // the click that captured the pointer is still down
	minimap   bool
	saved     bool
}

// New creates the window game. sink may be nil.
func New(opt raycast.Options, sink audio.Sink, cfg Config) (*Game, error) {
	sim, err := raycast.New(opt, sink)
	if err != nil {
		return nil, err
	}
	sim.Resize(Width, Height)

	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	return &Game{
		cfg:     cfg,
		sim:     sim,
		view:    ebiten.NewImage(Width, Height),
		tickDur: time.Second / time.Duration(cfg.TPS),
	}, nil
}

func (g *Game) now() time.Duration {
	return time.Duration(g.tick) * g.tickDur
}

// Update advances one tick.
func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	g.tick++
	g.sim.Advance(g.controls.Snapshot(), g.now())
	g.saveScore()
	return nil
}

func (g *Game) handleInput() error {
	captured := ebiten.CursorMode() == ebiten.CursorModeCaptured

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !captured {
			return ebiten.Termination
		}
		g.release()
		captured = false
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !captured {
		g.capture()
		captured = true
		g.clickHeld = true
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.clickHeld = false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if !captured {
			g.capture()
			captured = true
		}
		g.controls.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.minimap = !g.minimap
	}

	g.controls.SetCaptured(captured)

	for _, b := range keyBindings {
		if anyPressed(b.keys) {
			g.controls.KeyDown(b.key)
		} else {
			g.controls.KeyUp(b.key)
		}
	}

	fire := ebiten.IsKeyPressed(ebiten.KeyF) ||
		(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.clickHeld)
	if fire {
		g.controls.FireDown()
	} else {
		g.controls.FireUp()
	}

	x, _ := ebiten.CursorPosition()
	if captured && g.hasMouse && x != g.mouseX {
		g.controls.PointerMove(float64(x - g.mouseX))
	}
	g.mouseX = x
	g.hasMouse = true
	return nil
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (g *Game) capture() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	// The first position after capture only anchors the delta.
	g.hasMouse = false
}

func (g *Game) release() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

// saveScore stores the result once per finished session.
func (g *Game) saveScore() {
	hud := g.sim.HUD()
	if !hud.Phase.Terminal() {
		g.saved = false
		return
	}
	if g.saved {
		return
	}
	g.saved = true

	if g.cfg.Store == nil || hud.Score <= 0 {
		return
	}
	won := hud.Phase == raycast.PhaseVictory
	if _, err := g.cfg.Store.SaveResult(g.cfg.GameID, hud.Score, won); err != nil {
		g.cfg.Logger.Warn("could not save score", "game", g.cfg.GameID, "error", err)
	}
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.sim.Render(g.now())
	g.pixels = raster.Rasterize(frame).RGBA(g.pixels)
	g.view.WritePixels(g.pixels)
	screen.DrawImage(g.view, nil)

	hud := frame.HUD
	if hud.Phase == raycast.PhasePlaying {
		g.drawCrosshair(screen)
	}
	if g.minimap {
		g.drawMinimap(screen)
	}
	g.drawHUD(screen, hud)
	g.drawOverlay(screen, hud)
}

func (g *Game) drawCrosshair(screen *ebiten.Image) {
	cx, cy := float32(Width/2), float32(Height/2)
	white := color.RGBA{255, 255, 255, 200}
	vector.DrawFilledRect(screen, cx-8, cy-1, 16, 2, white, false)
	vector.DrawFilledRect(screen, cx-1, cy-8, 2, 16, white, false)
}

func (g *Game) drawHUD(screen *ebiten.Image, hud raycast.HUD) {
	line := fmt.Sprintf("HEALTH %d   AMMO %d   SCORE %d   ENEMIES %d", hud.Health, hud.Ammo, hud.Score, hud.Enemies)
	vector.DrawFilledRect(screen, 0, Height-24, Width, 24, color.RGBA{0, 0, 0, 180}, false)
	ebitenutil.DebugPrintAt(screen, line, 10, Height-20)

	if hud.Phase == raycast.PhasePlaying && !g.controls.Captured() {
		ebitenutil.DebugPrintAt(screen, "click to capture the mouse", Width-170, Height-20)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %0.0f", ebiten.ActualFPS()), Width-60, 4)
}

func (g *Game) drawOverlay(screen *ebiten.Image, hud raycast.HUD) {
	var lines []string
	switch hud.Phase {
	case raycast.PhaseWaiting:
		lines = []string{g.cfg.Title, "", "WASD move  mouse/arrows look  click/F fire", "TAB map  ESC release/quit", "", "press SPACE to start"}
	case raycast.PhaseGameOver:
		lines = []string{"GAME OVER", "", fmt.Sprintf("score %d", hud.Score), "", "press SPACE to restart"}
	case raycast.PhaseVictory:
		lines = []string{"VICTORY", "", fmt.Sprintf("score %d", hud.Score), "all enemies down", "", "press SPACE to play again"}
	default:
		return
	}

	// The debug font is 6×16 pixels per glyph.
	const glyphW, lineH = 6, 16
	boxH := len(lines)*lineH + 24
	y0 := (Height - boxH) / 2
	vector.DrawFilledRect(screen, 200, float32(y0), Width-400, float32(boxH), color.RGBA{0, 0, 0, 200}, false)
	for i, l := range lines {
		x := (Width - len(l)*glyphW) / 2
		ebitenutil.DebugPrintAt(screen, l, x, y0+12+i*lineH)
	}
}

func (g *Game) drawMinimap(screen *ebiten.Image) {
	m := g.sim.Map()
	const ox, oy = 8, 8
	s := float32(minimapScale)

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := color.RGBA{20, 20, 20, 200}
			if hit := m.At(x, y); hit != 0 {
				wc := raycast.WallColor(hit, 8)
				c = color.RGBA{wc.R, wc.G, wc.B, 220}
			}
			vector.DrawFilledRect(screen, ox+float32(x)*s, oy+float32(y)*s, s, s, c, false)
		}
	}

	st := g.sim.State()
	for _, e := range st.Enemies {
		if !e.Alive() {
			continue
		}
		ex, ey := ox+float32(e.Pos.X)*s, oy+float32(e.Pos.Y)*s
		vector.DrawFilledCircle(screen, ex, ey, s/2, color.RGBA{255, 0, 0, 255}, false)
	}

	px, py := ox+float32(st.Player.Pos.X)*s, oy+float32(st.Player.Pos.Y)*s
	dx, dy := g.sim.Heading()
	vector.StrokeLine(screen, px, py, px+float32(dx)*s*2, py+float32(dy)*s*2, 1, color.RGBA{255, 255, 0, 255}, false)
	vector.DrawFilledCircle(screen, px, py, s/2, color.RGBA{0, 255, 0, 255}, false)
}

// Layout fixes the logical screen to the surface size.
func (g *Game) Layout(_, _ int) (int, int) {
	return Width, Height
}

// Run opens the window and blocks until it is closed or ESC is pressed
// with the pointer released.
func Run(g *Game) error {
	ebiten.SetWindowSize(Width, Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetTPS(g.cfg.TPS)
	return ebiten.RunGame(g)
}
