package raycast

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/harbdog/raycaster-go/geom"

	"github.com/vovakirdan/tui-doom/internal/audio"
)

const step = time.Second / 60

func newSim(t *testing.T, opt Options, sink audio.Sink) *Simulation {
	t.Helper()
	s, err := New(opt, sink)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// duelOptions puts one enemy 2.5 cells in front of the player in the open
// top corridor.
func duelOptions() Options {
	opt := DefaultOptions()
	opt.Spawn = Player{Pos: geom.Vector2{X: 1.5, Y: 1.5}}
	opt.Roster = []Enemy{{Pos: geom.Vector2{X: 4, Y: 1.5}, Health: 100}}
	opt.Enemies.Aggressive = false
	return opt
}

func started(t *testing.T, opt Options, sink audio.Sink) *Simulation {
	t.Helper()
	s := newSim(t, opt, sink)
	s.Tick(Input{Start: true}, 0)
	if got := s.State().Phase; got != PhasePlaying {
		t.Fatalf("phase after start = %v, expected playing", got)
	}
	return s
}

func TestNewInitialState(t *testing.T) {
	s := newSim(t, DefaultOptions(), nil)
	st := s.State()

	if st.Phase != PhaseWaiting {
		t.Errorf("Phase = %v, expected waiting", st.Phase)
	}
	if st.Player.Pos != (geom.Vector2{X: 2, Y: 2}) || st.Player.Angle != 0 {
		t.Errorf("Player = %+v, expected (2,2) angle 0", st.Player)
	}
	if st.Health != 100 || st.Ammo != 30 || st.Score != 0 {
		t.Errorf("health/ammo/score = %d/%d/%d", st.Health, st.Ammo, st.Score)
	}
	if len(st.Enemies) != 3 || st.LiveEnemies() != 3 {
		t.Fatalf("enemies = %+v", st.Enemies)
	}
	for i, e := range st.Enemies {
		if e.Health != 100 {
			t.Errorf("enemy %d health = %d", i, e.Health)
		}
	}
	if w, h := s.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size = %dx%d", w, h)
	}
}

func TestNewValidates(t *testing.T) {
	opt := DefaultOptions()
	opt.Spawn.Pos = geom.Vector2{X: -3, Y: 2}
	if _, err := New(opt, nil); !errors.Is(err, ErrSpawnOutside) {
		t.Errorf("spawn outside: err = %v", err)
	}

	opt = DefaultOptions()
	opt.Roster = []Enemy{{Pos: geom.Vector2{X: 7.5, Y: 3.5}, Health: 100}}
	if _, err := New(opt, nil); err == nil {
		t.Error("enemy inside a wall should be rejected")
	}

	opt = DefaultOptions()
	opt.Map = &Map{}
	if _, err := New(opt, nil); !errors.Is(err, ErrEmptyMap) {
		t.Errorf("empty map: err = %v", err)
	}
}

func TestWaitingIgnoresGameplay(t *testing.T) {
	s := newSim(t, duelOptions(), nil)
	before := s.State()

	s.Tick(Input{Forward: true, Fire: true, Captured: true, LookDX: 100}, step)

	after := s.State()
	if after.Phase != PhaseWaiting {
		t.Errorf("phase = %v, expected waiting", after.Phase)
	}
	if after.Player != before.Player || after.Ammo != before.Ammo {
		t.Error("waiting phase must not move the player or spend ammo")
	}
}

func TestVictory(t *testing.T) {
	s := started(t, duelOptions(), nil)

	s.Tick(Input{Fire: true, Captured: true}, step)
	if got := s.State().Phase; got != PhasePlaying {
		t.Fatalf("phase after one hit = %v", got)
	}
	s.Tick(Input{Fire: true, Captured: true}, 2*step)

	st := s.State()
	if st.Phase != PhaseVictory {
		t.Errorf("phase = %v, expected victory", st.Phase)
	}
	if st.Score != 100 {
		t.Errorf("score = %d, expected 100", st.Score)
	}
	if hud := s.HUD(); hud.Enemies != 0 || hud.Phase != PhaseVictory {
		t.Errorf("HUD = %+v", hud)
	}

	// Terminal: further input changes nothing.
	s.Tick(Input{Forward: true, Captured: true}, 3*step)
	if s.State().Player != st.Player {
		t.Error("player moved after victory")
	}
}

func TestGameOver(t *testing.T) {
	opt := duelOptions()
	opt.InitialHealth = 10
	opt.Roster[0].Pos = geom.Vector2{X: 2.1, Y: 1.5}
	opt.Enemies.Aggressive = true

	rec := &recorder{}
	s := started(t, opt, rec)
	s.Tick(Input{}, step)

	st := s.State()
	if st.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, expected gameOver", st.Phase)
	}
	if st.Health != 0 {
		t.Errorf("health = %d, expected 0", st.Health)
	}
	if rec.count(audio.SoundHit) != 1 {
		t.Errorf("sounds = %v, expected one hit", rec.played)
	}
}

func TestGameOverBeatsVictory(t *testing.T) {
	s := started(t, duelOptions(), nil)
	s.state.Health = 0
	s.state.Enemies[0].Health = 0

	s.checkTransitions()
	if s.state.Phase != PhaseGameOver {
		t.Errorf("phase = %v, expected gameOver", s.state.Phase)
	}
}

func TestEnemyAttackCooldown(t *testing.T) {
	opt := duelOptions()
	opt.Roster[0].Pos = geom.Vector2{X: 2.1, Y: 1.5}
	opt.Enemies.Aggressive = true
	s := started(t, opt, nil)

	for i := 1; i <= 30; i++ {
		s.Tick(Input{}, time.Duration(i)*step)
	}
	if got := s.State().Health; got != 90 {
		t.Errorf("health after half a second = %d, expected 90", got)
	}
	for i := 31; i <= 62; i++ {
		s.Tick(Input{}, time.Duration(i)*step)
	}
	if got := s.State().Health; got != 80 {
		t.Errorf("health after the cooldown = %d, expected 80", got)
	}
}

func TestEnemyChasesWithinRange(t *testing.T) {
	opt := duelOptions()
	opt.Enemies.Aggressive = true
	s := started(t, opt, nil)

	before := s.State().Enemies[0].Pos.X
	s.Tick(Input{}, step)
	after := s.State().Enemies[0].Pos.X
	if !(after < before) {
		t.Errorf("enemy X %f -> %f, expected to close in", before, after)
	}

	// Pace scales speed.
	opt.Pace = func(int, uint64) float64 { return 2 }
	fast := started(t, opt, nil)
	fast.Tick(Input{}, step)
	if d := before - fast.State().Enemies[0].Pos.X; math.Abs(d-2*(before-after)) > 1e-9 {
		t.Errorf("paced step = %f, expected %f", d, 2*(before-after))
	}
}

func TestPassiveEnemiesStayPut(t *testing.T) {
	opt := duelOptions()
	opt.Roster[0].Pos = geom.Vector2{X: 2.1, Y: 1.5}
	s := started(t, opt, nil)
	for i := 1; i <= 120; i++ {
		s.Tick(Input{}, time.Duration(i)*step)
	}
	st := s.State()
	if st.Health != 100 || st.Enemies[0].Pos.X != 2.1 {
		t.Errorf("passive enemy acted: health %d, pos %+v", st.Health, st.Enemies[0].Pos)
	}
}

func TestRequireCaptureGatesAllControls(t *testing.T) {
	s := started(t, duelOptions(), nil)
	before := s.State()

	s.Tick(Input{Forward: true, Fire: true, Turn: 1, LookDX: 40}, step)

	after := s.State()
	if after.Player != before.Player {
		t.Errorf("uncaptured input moved the player: %+v", after.Player)
	}
	if after.Ammo != before.Ammo {
		t.Error("uncaptured input fired")
	}

	s.Tick(Input{Forward: true, Fire: true, Turn: 1, Captured: true}, 2*step)
	after = s.State()
	if after.Player.Pos == before.Player.Pos || after.Player.Angle == before.Player.Angle {
		t.Error("captured input should move and turn the player")
	}
	if after.Ammo != before.Ammo-1 {
		t.Error("captured input should fire")
	}
}

func TestNoCaptureRequired(t *testing.T) {
	opt := duelOptions()
	opt.RequireCapture = false
	s := started(t, opt, nil)
	before := s.State()

	s.Tick(Input{Forward: true, Fire: true, LookDX: 10}, step)

	after := s.State()
	if after.Player.Pos == before.Player.Pos {
		t.Error("player should move without capture")
	}
	if want := NormalizeAngle(10 * opt.Sensitivity); !near(after.Player.Angle, want) {
		t.Errorf("angle = %f, expected %f", after.Player.Angle, want)
	}
	if after.Ammo != before.Ammo-1 {
		t.Error("player should fire without capture")
	}
}

func TestFootsteps(t *testing.T) {
	opt := duelOptions()
	opt.FootstepChance = 1
	rec := &recorder{}
	s := started(t, opt, rec)

	s.Tick(Input{Forward: true, Captured: true}, step)
	s.Tick(Input{Captured: true}, 2*step)
	if got := rec.count(audio.SoundFootstep); got != 1 {
		t.Errorf("footsteps = %d, expected 1", got)
	}

	opt.FootstepChance = 0
	rec = &recorder{}
	s = started(t, opt, rec)
	for i := 1; i <= 20; i++ {
		s.Tick(Input{Forward: true, Captured: true}, time.Duration(i)*step)
	}
	if got := rec.count(audio.SoundFootstep); got != 0 {
		t.Errorf("footsteps = %d, expected none", got)
	}
}

func TestRestartResetsSession(t *testing.T) {
	s := started(t, duelOptions(), nil)
	s.Tick(Input{Fire: true, Captured: true, Forward: true}, step)
	s.Tick(Input{Fire: true, Captured: true}, 2*step)
	if s.State().Phase != PhaseVictory {
		t.Fatal("setup: expected victory")
	}

	s.Tick(Input{Start: true}, 3*step)
	st := s.State()
	if st.Phase != PhasePlaying {
		t.Errorf("phase = %v, expected playing", st.Phase)
	}
	if st.Score != 0 || st.Ammo != 30 || st.Health != 100 {
		t.Errorf("counters not reset: %+v", st)
	}
	if st.Player.Pos != (geom.Vector2{X: 1.5, Y: 1.5}) {
		t.Errorf("player not back at spawn: %+v", st.Player.Pos)
	}
	if e := st.Enemies[0]; e.Health != 100 || e.WasHit {
		t.Errorf("roster not reset: %+v", e)
	}
}

func TestRosterNotShared(t *testing.T) {
	opt := duelOptions()
	s := started(t, opt, nil)
	s.Tick(Input{Fire: true, Captured: true}, step)

	if opt.Roster[0].Health != 100 {
		t.Error("playing mutated the configured roster")
	}

	st := s.State()
	st.Enemies[0].Health = -5
	if s.State().Enemies[0].Health != 50 {
		t.Error("State() must return a copy")
	}
}

func TestRosterCopiedAtNew(t *testing.T) {
	opt := duelOptions()
	s := started(t, opt, nil)

	opt.Roster[0].Health = 1
	opt.Roster[0].Pos = geom.Vector2{X: 3, Y: 1.5}
	s.Restart()

	e := s.State().Enemies[0]
	if e.Health != 100 || e.Pos == opt.Roster[0].Pos {
		t.Errorf("restart picked up a caller edit: %+v", e)
	}
}

func TestDeterminism(t *testing.T) {
	opt := DefaultOptions()
	opt.Spawn = Player{Pos: geom.Vector2{X: 5.5, Y: 5.5}}
	opt.Seed = 42

	script := func(i int) Input {
		return Input{
			Forward:  i%5 != 0,
			Turn:     []int{-1, 0, 1}[i%3],
			LookDX:   float64(i%7) - 3,
			Fire:     i%45 == 0,
			Start:    i == 0,
			Captured: true,
		}
	}

	run := func() (State, []audio.SoundID) {
		rec := &recorder{}
		s := newSim(t, opt, rec)
		for i := 0; i < 600; i++ {
			s.Tick(script(i), time.Duration(i)*step)
		}
		return s.State(), rec.played
	}

	a, sa := run()
	b, sb := run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
	if !reflect.DeepEqual(sa, sb) {
		t.Error("sound sequences diverged")
	}
}

func TestFrameShape(t *testing.T) {
	s := newSim(t, DefaultOptions(), nil)
	s.Resize(120, 40)
	s.Resize(0, -1)

	f := s.Tick(Input{Start: true}, 0)
	if f.Width != 120 || f.Height != 40 {
		t.Fatalf("frame size = %dx%d", f.Width, f.Height)
	}
	if len(f.Rays) != 120 || len(f.Walls) != 120 {
		t.Errorf("rays/walls = %d/%d, expected 120", len(f.Rays), len(f.Walls))
	}
	if len(f.Floor) != 40 {
		t.Errorf("floor bands = %d, expected 40", len(f.Floor))
	}
	if f.HUD.Phase != PhasePlaying || f.HUD.Ammo != 30 {
		t.Errorf("HUD = %+v", f.HUD)
	}
}

func TestHeading(t *testing.T) {
	s := newSim(t, DefaultOptions(), nil)
	dx, dy := s.Heading()
	if !near(dx, 1) || !near(dy, 0) {
		t.Errorf("Heading = (%f, %f), expected (1, 0)", dx, dy)
	}
}
