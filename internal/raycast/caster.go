package raycast

import (
	"errors"
	"fmt"
	"math"
)

// View cone and search limits.
const (
	FOV     = math.Pi / 3
	HalfFOV = FOV / 2

	DefaultMaxDepth  = 16.0
	DefaultMarchStep = 0.05
)

// Caster kinds accepted by NewCaster.
const (
	CasterDDA   = "dda"
	CasterMarch = "march"
)

var ErrUnknownCaster = errors.New("raycast: unknown caster")

// Ray is the result for one screen column.
type Ray struct {
	Angle    float64 // absolute angle of this ray
	Distance float64 // fisheye-corrected distance to the hit
	Hit      int     // wall category, BoundaryCell when the search gave up
	Side     int     // 0 when a vertical grid line was crossed, 1 for horizontal
}

// Caster produces exactly numRays rays, left to right across the view cone.
type Caster interface {
	Cast(m *Map, p Player, numRays int) []Ray
}

// NewCaster returns the caster registered under kind. An empty kind selects DDA.
func NewCaster(kind string, maxDepth float64) (Caster, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	switch kind {
	case "", CasterDDA:
		return DDACaster{MaxDepth: maxDepth}, nil
	case CasterMarch:
		return MarchCaster{Step: DefaultMarchStep, MaxDepth: maxDepth}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCaster, kind)
	}
}

// RayAngle returns the absolute angle of ray i out of numRays.
func RayAngle(playerAngle float64, i, numRays int) float64 {
	return playerAngle - HalfFOV + float64(i)*(FOV/float64(numRays))
}

// MarchCaster walks each ray outwards in fixed steps. Walls thinner than
// Step can be skipped; the shipped map has none.
type MarchCaster struct {
	Step     float64
	MaxDepth float64
}

// Cast implements Caster.
func (c MarchCaster) Cast(m *Map, p Player, numRays int) []Ray {
	if numRays <= 0 {
		return []Ray{}
	}
	step, depth := c.Step, c.MaxDepth
	if step <= 0 {
		step = DefaultMarchStep
	}
	if depth <= 0 {
		depth = DefaultMaxDepth
	}

	rays := make([]Ray, numRays)
	for i := range rays {
		angle := RayAngle(p.Angle, i, numRays)
		dirX, dirY := math.Cos(angle), math.Sin(angle)

		distance, hit := 0.0, 0
		for hit == 0 && distance < depth {
			distance += step
			mx := int(math.Floor(p.Pos.X + dirX*distance))
			my := int(math.Floor(p.Pos.Y + dirY*distance))
			if !m.InBounds(mx, my) {
				hit = BoundaryCell
			} else {
				hit = m.At(mx, my)
			}
		}
		if hit == 0 {
			hit = BoundaryCell
		}

		rays[i] = Ray{
			Angle:    angle,
			Distance: distance * math.Cos(angle-p.Angle),
			Hit:      hit,
		}
	}
	return rays
}

// DDACaster steps from grid line to grid line, so it finds the exact first
// wall crossed by each ray.
type DDACaster struct {
	MaxDepth float64
}

// Cast implements Caster.
func (c DDACaster) Cast(m *Map, p Player, numRays int) []Ray {
	if numRays <= 0 {
		return []Ray{}
	}
	depth := c.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}

	rays := make([]Ray, numRays)
	for i := range rays {
		angle := RayAngle(p.Angle, i, numRays)
		dist, hit, side := traverse(m, p.Pos.X, p.Pos.Y, angle, depth)
		rays[i] = Ray{
			Angle:    angle,
			Distance: dist * math.Cos(angle-p.Angle),
			Hit:      hit,
			Side:     side,
		}
	}
	return rays
}

// traverse runs a DDA walk from (ox, oy) along angle and returns the
// euclidean distance to the first wall boundary crossed.
func traverse(m *Map, ox, oy, angle, maxDepth float64) (dist float64, hit, side int) {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	mapX, mapY := int(math.Floor(ox)), int(math.Floor(oy))

	deltaX, deltaY := math.Inf(1), math.Inf(1)
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dirX < 0 {
		stepX = -1
		sideX = (ox - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - ox) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (oy - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - oy) * deltaY
	}

	for {
		if sideX < sideY {
			dist = sideX
			sideX += deltaX
			mapX += stepX
			side = 0
		} else {
			dist = sideY
			sideY += deltaY
			mapY += stepY
			side = 1
		}

		if dist >= maxDepth {
			return maxDepth, BoundaryCell, side
		}
		if !m.InBounds(mapX, mapY) {
			return dist, BoundaryCell, side
		}
		if c := m.At(mapX, mapY); c > 0 {
			return dist, c, side
		}
	}
}

// LineOfSight reports whether the straight segment between two points
// crosses no wall.
func LineOfSight(m *Map, fromX, fromY, toX, toY float64) bool {
	want := math.Hypot(toX-fromX, toY-fromY)
	if want == 0 {
		return true
	}
	dist, _, _ := traverse(m, fromX, fromY, math.Atan2(toY-fromY, toX-fromX), want)
	return dist >= want
}
