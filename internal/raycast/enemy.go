package raycast

import (
	"time"

	"github.com/harbdog/raycaster-go/geom"

	"github.com/vovakirdan/tui-doom/internal/audio"
)

// EnemyOptions tune enemy behavior. With Aggressive off enemies stand still
// and never hurt the player.
type EnemyOptions struct {
	Aggressive     bool
	Health         int
	AggroRange     float64
	AttackRange    float64
	Speed          float64 // world units per tick
	AttackDamage   int
	AttackCooldown time.Duration
}

// DefaultEnemyOptions returns the shipped enemy tuning.
func DefaultEnemyOptions() EnemyOptions {
	return EnemyOptions{
		Aggressive:     true,
		Health:         100,
		AggroRange:     6,
		AttackRange:    0.8,
		Speed:          0.02,
		AttackDamage:   10,
		AttackCooldown: time.Second,
	}
}

// DefaultRoster returns the three enemies the arena starts with.
func DefaultRoster(health int) []Enemy {
	return []Enemy{
		{Pos: geom.Vector2{X: 8, Y: 8}, Health: health, Sprite: 0},
		{Pos: geom.Vector2{X: 12, Y: 4}, Health: health, Sprite: 1},
		{Pos: geom.Vector2{X: 6, Y: 12}, Health: health, Sprite: 0},
	}
}

// advanceEnemies moves awake enemies towards the player and lets those in
// reach attack. pace scales Speed. It returns the damage dealt this tick.
func advanceEnemies(s *State, m *Map, now time.Duration, opt EnemyOptions, pace float64, sink audio.Sink) int {
	if !opt.Aggressive {
		return 0
	}

	dealt := 0
	target := s.Player.Pos
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive() {
			continue
		}
		dist, _ := e.DistanceTo(target)
		if dist > opt.AggroRange || !LineOfSight(m, e.Pos.X, e.Pos.Y, target.X, target.Y) {
			continue
		}

		if dist <= opt.AttackRange {
			if now >= e.NextAttack {
				s.Health -= opt.AttackDamage
				dealt += opt.AttackDamage
				e.NextAttack = now + opt.AttackCooldown
				sink.Play(audio.SoundHit)
			}
			continue
		}

		step := min(opt.Speed*pace, dist-opt.AttackRange)
		if step <= 0 {
			continue
		}
		dx := (target.X - e.Pos.X) / dist * step
		dy := (target.Y - e.Pos.Y) / dist * step
		e.Pos, _ = slide(m, e.Pos, dx, dy)
	}
	return dealt
}
