package raycast

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/jinzhu/copier"

	"github.com/vovakirdan/tui-doom/internal/audio"
)

// Default surface, matching the 800x600 canvas the game was designed for.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

var ErrSpawnOutside = errors.New("raycast: spawn point is outside the map")

// Options configure a Simulation.
type Options struct {
	Map    *Map
	Caster Caster

	Spawn         Player
	Roster        []Enemy
	InitialHealth int
	InitialAmmo   int

	MoveSpeed   float64 // world units per tick
	Sensitivity float64 // radians per pointer unit
	TurnSpeed   float64 // radians per tick of keyboard look
	Slide       bool    // axis-separated collision instead of whole-step rejection

	// RequireCapture gates every gameplay control (look, move, fire) on
	// pointer capture. When false no control is gated.
	RequireCapture bool

	FootstepChance float64

	Combat  CombatOptions
	Sprites SpriteOptions
	Enemies EnemyOptions

	// Pace scales enemy speed from the running score and tick count.
	// Nil means a constant 1.
	Pace func(score int, tick uint64) float64

	Seed int64
}

// DefaultOptions returns the shipped game: default arena, DDA caster,
// spawn at (2,2) facing east, three enemies.
func DefaultOptions() Options {
	enemies := DefaultEnemyOptions()
	return Options{
		Map:            DefaultMap(),
		Caster:         DDACaster{MaxDepth: DefaultMaxDepth},
		Spawn:          Player{Pos: geom.Vector2{X: 2, Y: 2}},
		Roster:         DefaultRoster(enemies.Health),
		InitialHealth:  100,
		InitialAmmo:    30,
		MoveSpeed:      0.05,
		Sensitivity:    0.003,
		TurnSpeed:      0.04,
		RequireCapture: true,
		FootstepChance: 0.1,
		Combat:         DefaultCombatOptions(),
		Sprites:        DefaultSpriteOptions(),
		Enemies:        enemies,
	}
}

// HUD is the read-only status exported to the surrounding UI.
type HUD struct {
	Phase   Phase
	Health  int
	Ammo    int
	Score   int
	Enemies int
}

// Frame is everything a host needs to draw one tick.
type Frame struct {
	Width   int
	Height  int
	Rays    []Ray
	Walls   []WallSlice
	Floor   []Band
	Sprites []SpriteCommand
	HUD     HUD
}

// Simulation owns the session state and advances it one tick at a time.
// It is not safe for concurrent use; hosts drive it from a single loop.
type Simulation struct {
	opt    Options
	state  State
	sink   audio.Sink
	rng    *rand.Rand
	width  int
	height int
}

// New validates opt and returns a simulation in the waiting phase.
// A nil sink plays nothing.
func New(opt Options, sink audio.Sink) (*Simulation, error) {
	if opt.Map == nil {
		opt.Map = DefaultMap()
	}
	if err := opt.Map.Validate(); err != nil {
		return nil, err
	}
	if opt.Caster == nil {
		opt.Caster = DDACaster{MaxDepth: DefaultMaxDepth}
	}
	// The player may start on a wall cell (the shipped spawn does) and step
	// out of it; enemies cannot.
	if !inside(opt.Map, opt.Spawn.Pos) {
		return nil, fmt.Errorf("%w: (%.2f, %.2f)", ErrSpawnOutside, opt.Spawn.Pos.X, opt.Spawn.Pos.Y)
	}
	for i, e := range opt.Roster {
		if opt.Map.IsWall(e.Pos.X, e.Pos.Y) {
			return nil, fmt.Errorf("raycast: enemy %d spawns inside a wall at (%.2f, %.2f)", i, e.Pos.X, e.Pos.Y)
		}
	}

	// The simulation keeps its own roster; later edits by the caller do not
	// reach restarts.
	if len(opt.Roster) > 0 {
		var roster []Enemy
		if err := copier.CopyWithOption(&roster, opt.Roster, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("raycast: copy roster: %w", err)
		}
		opt.Roster = roster
	}

	s := &Simulation{
		opt:    opt,
		sink:   audio.OrNop(sink),
		rng:    rand.New(rand.NewSource(opt.Seed)),
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	s.reset()
	s.state.Phase = PhaseWaiting
	return s, nil
}

// Resize sets the render surface. Non-positive sizes are ignored.
func (s *Simulation) Resize(width, height int) {
	if width > 0 {
		s.width = width
	}
	if height > 0 {
		s.height = height
	}
}

// Size returns the render surface size.
func (s *Simulation) Size() (width, height int) {
	return s.width, s.height
}

// SetSink replaces the audio sink. Nil plays nothing.
func (s *Simulation) SetSink(sink audio.Sink) {
	s.sink = audio.OrNop(sink)
}

// State returns a copy of the session state.
func (s *Simulation) State() State {
	return s.state.Clone()
}

// Map returns the world grid.
func (s *Simulation) Map() *Map {
	return s.opt.Map
}

// Restart re-initializes player, roster and counters and enters playing.
func (s *Simulation) Restart() {
	s.reset()
	s.state.Phase = PhasePlaying
}

// reset restores every mutable value to its initial setting.
func (s *Simulation) reset() {
	s.state = State{
		Player:  s.opt.Spawn,
		Enemies: slices.Clone(s.opt.Roster), // Enemy holds no references
		Health:  s.opt.InitialHealth,
		Ammo:    s.opt.InitialAmmo,
		Score:   0,
		Tick:    s.state.Tick,
	}
}

// Tick advances the session by one step at simulation time now and returns
// the frame to draw.
func (s *Simulation) Tick(in Input, now time.Duration) Frame {
	s.Advance(in, now)
	return s.Render(now)
}

// Advance is Tick without building a frame, for hosts that render on their
// own schedule.
func (s *Simulation) Advance(in Input, now time.Duration) {
	s.state.Tick++

	switch s.state.Phase {
	case PhaseWaiting, PhaseGameOver, PhaseVictory:
		if in.Start {
			s.Restart()
		}
	case PhasePlaying:
		s.play(in, now)
	}
}

func (s *Simulation) play(in Input, now time.Duration) {
	st := &s.state

	if !s.opt.RequireCapture || in.Captured {
		look := in.LookDX*s.opt.Sensitivity + float64(in.Turn)*s.opt.TurnSpeed
		if look != 0 {
			st.Player.Angle = NormalizeAngle(st.Player.Angle + look)
		}

		integrate := Integrate
		if s.opt.Slide {
			integrate = SlideIntegrate
		}
		var moved bool
		st.Player, moved = integrate(st.Player, in, s.opt.Map, s.opt.MoveSpeed)
		if moved && s.rng.Float64() < s.opt.FootstepChance {
			s.sink.Play(audio.SoundFootstep)
		}

		if in.Fire {
			Fire(st, now, s.opt.Combat, s.sink)
		}
	}

	pace := 1.0
	if s.opt.Pace != nil {
		pace = s.opt.Pace(st.Score, st.Tick)
	}
	advanceEnemies(st, s.opt.Map, now, s.opt.Enemies, pace, s.sink)

	s.checkTransitions()
}

// checkTransitions applies the end-of-tick phase rules. Death wins over a
// simultaneous clear.
func (s *Simulation) checkTransitions() {
	st := &s.state
	if st.Phase != PhasePlaying {
		return
	}
	switch {
	case st.Health <= 0:
		st.Health = max(st.Health, 0)
		st.Phase = PhaseGameOver
	case st.LiveEnemies() == 0:
		st.Phase = PhaseVictory
	}
}

// Render builds the frame for the current state without advancing it.
func (s *Simulation) Render(now time.Duration) Frame {
	st := &s.state
	rays := s.opt.Caster.Cast(s.opt.Map, st.Player, s.width)
	return Frame{
		Width:   s.width,
		Height:  s.height,
		Rays:    rays,
		Walls:   ProjectWalls(rays, s.height),
		Floor:   ProjectFloor(s.height),
		Sprites: ProjectSprites(st.Player, st.Enemies, s.width, s.height, now, s.opt.Sprites),
		HUD:     s.HUD(),
	}
}

// HUD returns the current status values.
func (s *Simulation) HUD() HUD {
	return HUD{
		Phase:   s.state.Phase,
		Health:  s.state.Health,
		Ammo:    s.state.Ammo,
		Score:   s.state.Score,
		Enemies: s.state.LiveEnemies(),
	}
}

// Heading returns the player's heading as a unit vector.
func (s *Simulation) Heading() (dx, dy float64) {
	return math.Cos(s.state.Player.Angle), math.Sin(s.state.Player.Angle)
}

func inside(m *Map, p geom.Vector2) bool {
	return m.InBounds(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}
