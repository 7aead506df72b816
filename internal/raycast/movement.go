package raycast

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// displacement sums the active directions for one tick. Strafing uses the
// heading rotated by a quarter turn: left is angle-π/2, right angle+π/2.
func displacement(angle float64, in Input, speed float64) (dx, dy float64) {
	add := func(a, sign float64) {
		dx += math.Cos(a) * speed * sign
		dy += math.Sin(a) * speed * sign
	}
	if in.Forward {
		add(angle, 1)
	}
	if in.Backward {
		add(angle, -1)
	}
	if in.StrafeLeft {
		add(angle-math.Pi/2, 1)
	}
	if in.StrafeRight {
		add(angle+math.Pi/2, 1)
	}
	return dx, dy
}

// Integrate moves the player by one tick of input. The whole step is
// rejected when the destination cell is a wall; there is no sliding.
func Integrate(p Player, in Input, m *Map, speed float64) (Player, bool) {
	dx, dy := displacement(p.Angle, in, speed)
	if dx == 0 && dy == 0 {
		return p, false
	}

	nx, ny := p.Pos.X+dx, p.Pos.Y+dy
	if m.IsWall(nx, ny) {
		return p, false
	}
	p.Pos = geom.Vector2{X: nx, Y: ny}
	return p, true
}

// SlideIntegrate is Integrate with axis-separated collision: when the full
// step is blocked the X and Y components are tried on their own, letting the
// player slide along walls.
func SlideIntegrate(p Player, in Input, m *Map, speed float64) (Player, bool) {
	dx, dy := displacement(p.Angle, in, speed)
	if dx == 0 && dy == 0 {
		return p, false
	}
	pos, moved := slide(m, p.Pos, dx, dy)
	p.Pos = pos
	return p, moved
}

func slide(m *Map, from geom.Vector2, dx, dy float64) (geom.Vector2, bool) {
	switch {
	case !m.IsWall(from.X+dx, from.Y+dy):
		return geom.Vector2{X: from.X + dx, Y: from.Y + dy}, true
	case dx != 0 && !m.IsWall(from.X+dx, from.Y):
		return geom.Vector2{X: from.X + dx, Y: from.Y}, true
	case dy != 0 && !m.IsWall(from.X, from.Y+dy):
		return geom.Vector2{X: from.X, Y: from.Y + dy}, true
	}
	return from, false
}
