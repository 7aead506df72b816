package raycast

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-doom/internal/audio"
)

// CombatOptions tune the hitscan weapon.
type CombatOptions struct {
	HitRange  float64 // enemies must be closer than this
	HitAngle  float64 // max |aim - angle to enemy|, radians
	Damage    int
	KillScore int
}

// DefaultCombatOptions returns the shipped weapon: two hits kill.
func DefaultCombatOptions() CombatOptions {
	return CombatOptions{
		HitRange:  5,
		HitAngle:  0.3,
		Damage:    50,
		KillScore: 100,
	}
}

// FireResult reports what a trigger pull did.
type FireResult struct {
	Fired bool
	Hits  int
	Kills int
}

// Fire spends one round and damages every live enemy inside the hit cone.
// With no ammo left it does nothing at all.
func Fire(s *State, now time.Duration, opt CombatOptions, sink audio.Sink) FireResult {
	if s.Ammo <= 0 {
		return FireResult{}
	}
	s.Ammo--
	sink.Play(audio.SoundShoot)

	res := FireResult{Fired: true}
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive() {
			continue
		}
		dist, angle := e.DistanceTo(s.Player.Pos)
		if dist >= opt.HitRange || math.Abs(NormalizeAngle(s.Player.Angle-angle)) >= opt.HitAngle {
			continue
		}

		e.Health -= opt.Damage
		e.LastHit = now
		e.WasHit = true
		res.Hits++
		sink.Play(audio.SoundHit)

		if !e.Alive() {
			s.Score += opt.KillScore
			res.Kills++
		}
	}
	return res
}
