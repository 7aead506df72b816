package raycast

import (
	"math"
	"testing"
	"time"

	"github.com/harbdog/raycaster-go/geom"

	"github.com/vovakirdan/tui-doom/internal/audio"
)

type recorder struct {
	played []audio.SoundID
}

func (r *recorder) Play(id audio.SoundID) {
	r.played = append(r.played, id)
}

func (r *recorder) count(id audio.SoundID) int {
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}

func duelState() State {
	return State{
		Phase:  PhasePlaying,
		Player: Player{Pos: geom.Vector2{X: 1.5, Y: 1.5}, Angle: 0},
		Enemies: []Enemy{
			{Pos: geom.Vector2{X: 4, Y: 1.5}, Health: 100},
		},
		Health: 100,
		Ammo:   30,
	}
}

func TestFireTwoHitsKill(t *testing.T) {
	s := duelState()
	rec := &recorder{}
	opt := DefaultCombatOptions()

	res := Fire(&s, time.Second, opt, rec)
	if !res.Fired || res.Hits != 1 || res.Kills != 0 {
		t.Fatalf("first shot = %+v", res)
	}
	e := s.Enemies[0]
	if e.Health != 50 || !e.WasHit || e.LastHit != time.Second {
		t.Errorf("after first hit enemy = %+v", e)
	}
	if s.Score != 0 {
		t.Errorf("score = %d after a wound, expected 0", s.Score)
	}

	res = Fire(&s, 2*time.Second, opt, rec)
	if res.Kills != 1 || s.Score != 100 || s.Enemies[0].Alive() {
		t.Errorf("second shot = %+v, score %d, enemy %+v", res, s.Score, s.Enemies[0])
	}

	// Dead enemies can't be hit again and award nothing.
	res = Fire(&s, 3*time.Second, opt, rec)
	if res.Hits != 0 || s.Score != 100 {
		t.Errorf("third shot = %+v, score %d", res, s.Score)
	}
	if s.Ammo != 27 {
		t.Errorf("ammo = %d, expected 27", s.Ammo)
	}

	if rec.count(audio.SoundShoot) != 3 || rec.count(audio.SoundHit) != 2 {
		t.Errorf("sounds = %v", rec.played)
	}
}

func TestFireWithoutAmmo(t *testing.T) {
	s := duelState()
	s.Ammo = 0
	rec := &recorder{}

	res := Fire(&s, 0, DefaultCombatOptions(), rec)
	if res.Fired {
		t.Error("empty weapon fired")
	}
	if s.Ammo != 0 || s.Enemies[0].Health != 100 || len(rec.played) != 0 {
		t.Errorf("empty weapon changed state: ammo %d, enemy %+v, sounds %v", s.Ammo, s.Enemies[0], rec.played)
	}
}

func TestFireCone(t *testing.T) {
	opt := DefaultCombatOptions()

	tests := []struct {
		name  string
		pos   geom.Vector2
		angle float64
		hit   bool
	}{
		{"dead ahead", geom.Vector2{X: 4, Y: 1.5}, 0, true},
		{"just inside the cone", geom.Vector2{X: 4, Y: 1.5}, 0.29, true},
		{"outside the cone", geom.Vector2{X: 4, Y: 1.5}, 0.31, false},
		{"out of range", geom.Vector2{X: 6.6, Y: 1.5}, 0, false},
		{"behind", geom.Vector2{X: 1.5, Y: 1.5 + 1e-9}, math.Pi, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := duelState()
			s.Enemies[0].Pos = tt.pos
			s.Player.Angle = tt.angle
			res := Fire(&s, 0, opt, audio.Nop{})
			if (res.Hits == 1) != tt.hit {
				t.Errorf("hits = %d, expected hit=%v", res.Hits, tt.hit)
			}
		})
	}
}

func TestFireConeAcrossWrap(t *testing.T) {
	// Player aims just below +π, enemy sits just above -π: the angles are
	// 0.02 apart once normalized.
	s := duelState()
	s.Player.Pos = geom.Vector2{X: 10, Y: 5}
	s.Player.Angle = math.Pi - 0.01
	s.Enemies[0].Pos = geom.Vector2{X: 10 - 3*math.Cos(0.01), Y: 5 - 3*math.Sin(0.01)}

	if res := Fire(&s, 0, DefaultCombatOptions(), audio.Nop{}); res.Hits != 1 {
		t.Errorf("hits = %d, expected 1 across the ±π seam", res.Hits)
	}
}

func TestFireHitsEveryEnemyInCone(t *testing.T) {
	s := duelState()
	s.Enemies = append(s.Enemies, Enemy{Pos: geom.Vector2{X: 3, Y: 1.6}, Health: 100})

	res := Fire(&s, 0, DefaultCombatOptions(), audio.Nop{})
	if res.Hits != 2 {
		t.Errorf("hits = %d, expected 2", res.Hits)
	}
}
