package raycast

import (
	"math"
	"time"

	"github.com/harbdog/raycaster-go/geom"
)

// Phase is the session state.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseGameOver
	PhaseVictory
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameOver"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase only leaves through a restart.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

// Player is the viewer: a fractional grid position and an absolute heading.
type Player struct {
	Pos   geom.Vector2
	Angle float64
}

// Enemy is a billboard actor. Dead enemies stay in the roster and are
// skipped by every system that reads it.
type Enemy struct {
	Pos    geom.Vector2
	Health int
	Sprite int

	// LastHit is the simulation time of the most recent hit; WasHit tells a
	// real hit at t=0 apart from "never hit".
	LastHit time.Duration
	WasHit  bool

	// NextAttack is the earliest time this enemy may strike again.
	NextAttack time.Duration
}

// Alive reports whether the enemy still takes part in the game.
func (e Enemy) Alive() bool {
	return e.Health > 0
}

// DistanceTo returns the straight-line distance from p to the enemy and the
// absolute angle from p towards it.
func (e Enemy) DistanceTo(p geom.Vector2) (dist, angle float64) {
	dx := e.Pos.X - p.X
	dy := e.Pos.Y - p.Y
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

// State is the complete mutable session state.
type State struct {
	Phase   Phase
	Player  Player
	Enemies []Enemy
	Health  int
	Ammo    int
	Score   int
	Tick    uint64
}

// LiveEnemies counts enemies with health above zero.
func (s *State) LiveEnemies() int {
	n := 0
	for i := range s.Enemies {
		if s.Enemies[i].Alive() {
			n++
		}
	}
	return n
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Enemies = append([]Enemy(nil), s.Enemies...)
	return s
}

// NormalizeAngle wraps an angle into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
