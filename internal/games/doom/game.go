// Package doom adapts the raycasting simulation to the arcade's Game
// interface and draws its frames into the terminal screen buffer.
package doom

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-doom/internal/audio"
	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/raster"
	"github.com/vovakirdan/tui-doom/internal/raycast"
	"github.com/vovakirdan/tui-doom/internal/registry"
)

// Minimum terminal size for a playable view.
const (
	MinWidth  = 20
	MinHeight = 6
)

// Game implements the raycasting shooter.
type Game struct {
	id     string
	title  string
	desc   string
	caster string
	style  raster.Style

	sim      *raycast.Simulation
	controls raycast.Controls
	cfg      config.DoomConfig
	err      error

	tick     uint64
	tickDur  time.Duration
	startWas bool
}

// Package-level variables for config/difficulty/audio, set by the CLI.
var (
	configPath       string
	difficultyPreset string
	audioSink        audio.Sink
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetAudioSink routes sound cues of games created afterwards. Nil is silent.
func SetAudioSink(s audio.Sink) {
	audioSink = s
}

// LoadConfig loads the config the way Reset does, reporting errors instead
// of falling back to defaults.
func LoadConfig() (config.DoomConfig, error) {
	cfg, err := config.LoadDoom(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		preset, err := config.ParsePreset(difficultyPreset)
		if err != nil {
			return cfg, err
		}
		config.ApplyDoomPreset(&cfg, preset)
	}
	return cfg, nil
}

// New creates the shooter with the exact grid caster and half-block output.
func New() *Game {
	return &Game{id: "doom", title: "Doom", desc: "exact grid traversal, half-block color", caster: raycast.CasterDDA, style: raster.StyleBlocks}
}

// NewClassic creates the shooter with the fixed-step ray march and the
// glyph-shaded output.
func NewClassic() *Game {
	return &Game{id: "doom_classic", title: "Doom (Classic)", desc: "fixed-step ray march, shaded glyphs", caster: raycast.CasterMarch, style: raster.StyleASCII}
}

func init() {
	registry.Register("doom", func() registry.Game {
		return New()
	})
	registry.Register("doom_classic", func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Description summarizes how this variant casts and draws.
func (g *Game) Description() string {
	return g.desc
}

// Err reports a config problem from the last Reset. The game still runs on
// defaults when it is set.
func (g *Game) Err() error {
	return g.err
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.err = nil
	cfg, err := LoadConfig()
	if err != nil {
		g.err = err
		cfg = fallbackConfig()
	}
	g.cfg = cfg

	sim, err := g.build(cfg, rc.Seed)
	if err != nil {
		g.err = err
		if sim, err = g.build(fallbackConfig(), rc.Seed); err != nil {
			panic(fmt.Errorf("doom: built-in config is unusable: %w", err))
		}
	}
	g.sim = sim
	g.resize(rc.ScreenW, rc.ScreenH)

	g.tick = 0
	g.tickDur = rc.TickDuration()
	g.controls.Reset()
	g.controls.SetCaptured(false)
	g.startWas = false
}

// fallbackConfig is what Reset runs on when the loaded config is rejected.
var fallbackConfig = config.DefaultDoomConfig

// build creates a simulation for cfg.
func (g *Game) build(cfg config.DoomConfig, seed int64) (*raycast.Simulation, error) {
	opt, err := Options(cfg, g.caster, seed)
	if err != nil {
		return nil, err
	}
	sim, err := raycast.New(opt, audioSink)
	if err != nil {
		return nil, fmt.Errorf("doom: %w", err)
	}
	return sim, nil
}

// resize fits the simulation surface to a screen of w×h cells. The bottom
// row is kept for the HUD.
func (g *Game) resize(w, h int) {
	g.sim.Resize(w, g.style.PixelRows(h-1))
}

// now is the simulated time at the current tick.
func (g *Game) now() time.Duration {
	return time.Duration(g.tick) * g.tickDur
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.applyInput(in)
	g.sim.Advance(g.controls.Snapshot(), g.now())
	return core.StepResult{State: g.State()}
}

// applyInput feeds one host frame into the controls. Movement actions are
// held state; fire and start are edges.
func (g *Game) applyInput(in core.InputFrame) {
	g.controls.SetCaptured(in.Captured)

	keys := []struct {
		action core.Action
		key    raycast.Key
	}{
		{core.ActionForward, raycast.KeyForward},
		{core.ActionBackward, raycast.KeyBackward},
		{core.ActionStrafeLeft, raycast.KeyStrafeLeft},
		{core.ActionStrafeRight, raycast.KeyStrafeRight},
		{core.ActionTurnLeft, raycast.KeyTurnLeft},
		{core.ActionTurnRight, raycast.KeyTurnRight},
	}
	for _, k := range keys {
		if in.Has(k.action) {
			g.controls.KeyDown(k.key)
		} else {
			g.controls.KeyUp(k.key)
		}
	}

	if in.Look != 0 {
		g.controls.PointerMove(in.Look)
	}

	if in.Has(core.ActionFire) {
		g.controls.FireDown()
	} else {
		g.controls.FireUp()
	}

	start := in.Has(core.ActionStart)
	if start && !g.startWas {
		g.controls.Start()
	}
	g.startWas = start
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	hud := g.sim.HUD()
	return core.GameState{
		Score:    hud.Score,
		GameOver: hud.Phase.Terminal(),
		Won:      hud.Phase == raycast.PhaseVictory,
		Paused:   hud.Phase == raycast.PhaseWaiting,
	}
}

// HUD returns the status values shown under the view.
func (g *Game) HUD() raycast.HUD {
	return g.sim.HUD()
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	dst.Clear()
	if w < MinWidth || h < MinHeight {
		dst.DrawTextCentered(h/2, "Terminal too small")
		return
	}

	g.resize(w, h)
	frame := g.sim.Render(g.now())
	raster.Rasterize(frame).Blit(dst, 0, g.style)

	viewRows := h - 1
	g.drawCrosshair(dst, w/2, viewRows/2)
	g.drawHUD(dst, h-1)
	g.drawOverlay(dst, viewRows)
}

func (g *Game) drawCrosshair(dst *core.Screen, x, y int) {
	if g.sim.HUD().Phase != raycast.PhasePlaying {
		return
	}
	dst.SetColored(x, y, '+', core.ColorBrightWhite)
}

func (g *Game) drawHUD(dst *core.Screen, y int) {
	hud := g.sim.HUD()
	dst.DrawHLine(0, y, dst.Width(), core.Cell{Rune: ' ', Bg: core.ColorBlack})

	healthColor := core.ColorGreen
	switch {
	case hud.Health <= 25:
		healthColor = core.ColorRed
	case hud.Health <= 50:
		healthColor = core.ColorOrange
	}

	x := 1
	put := func(label, value string, fg core.Color) {
		dst.DrawTextColored(x, y, label, core.ColorGray, core.ColorBlack)
		x += len(label)
		dst.DrawTextColored(x, y, value, fg, core.ColorBlack)
		x += len(value) + 2
	}
	put("HEALTH ", fmt.Sprint(hud.Health), healthColor)
	put("AMMO ", fmt.Sprint(hud.Ammo), core.ColorYellow)
	put("SCORE ", fmt.Sprint(hud.Score), core.ColorBrightWhite)
	put("ENEMIES ", fmt.Sprint(hud.Enemies), core.ColorRed)

	if hud.Phase == raycast.PhasePlaying && g.cfg.Controls.RequireCapture && !g.controls.Captured() {
		msg := "[m] capture mouse"
		dst.DrawTextColored(dst.Width()-len(msg)-1, y, msg, core.ColorOrange, core.ColorBlack)
	}
}

func (g *Game) drawOverlay(dst *core.Screen, viewRows int) {
	hud := g.sim.HUD()

	var lines []string
	var accent core.Color
	switch hud.Phase {
	case raycast.PhaseWaiting:
		lines = []string{g.title, "", "WASD move  mouse/arrows look", "click or F fire  M capture", "", "press SPACE to start"}
		accent = core.ColorRed
	case raycast.PhaseGameOver:
		lines = []string{"GAME OVER", "", fmt.Sprintf("score %d", hud.Score), "", "press SPACE to restart"}
		accent = core.ColorRed
	case raycast.PhaseVictory:
		lines = []string{"VICTORY", "", fmt.Sprintf("score %d", hud.Score), "all enemies down", "", "press SPACE to play again"}
		accent = core.ColorGreen
	default:
		return
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 6
	boxH := len(lines) + 2
	box := core.CenteredRect(min(boxW, dst.Width()), min(boxH, viewRows), dst.Width(), viewRows)

	dst.DrawRect(box, core.Cell{Rune: ' ', Bg: core.ColorBlack})
	dst.DrawBox(box, accent)
	inner := box.Inset(1)
	for i, l := range lines[:min(len(lines), inner.H)] {
		fg := core.ColorWhite
		if i == 0 {
			fg = accent
		}
		dst.DrawTextCenteredColored(inner.Y+i, l, fg, core.ColorBlack)
	}
}
