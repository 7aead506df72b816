package raycast

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// minDistance keeps projections finite when the viewer touches a wall.
const minDistance = 1e-3

// RGB is a draw color.
type RGB struct {
	R, G, B uint8
}

// Scale multiplies every channel by f, clamped to [0, 255] and floored.
func (c RGB) Scale(f float64) RGB {
	return RGB{R: scaleChannel(c.R, f), G: scaleChannel(c.G, f), B: scaleChannel(c.B, f)}
}

func scaleChannel(v uint8, f float64) uint8 {
	return uint8(geom.Clamp(math.Floor(float64(v)*f), 0, 255))
}

// Base wall colors by category. Unknown categories use category 1.
var wallBase = map[int]RGB{
	1: {100, 100, 100},
	2: {150, 50, 50},
	3: {50, 150, 50},
}

// WallColor returns the color of a wall of the given category seen at dist:
// each channel is floor(base / dist * 8), saturating at 255.
func WallColor(hit int, dist float64) RGB {
	base, ok := wallBase[hit]
	if !ok {
		base = wallBase[BoundaryCell]
	}
	return base.Scale(8 / math.Max(dist, minDistance))
}

// WallSlice is the vertical strip drawn for one ray.
type WallSlice struct {
	X        int
	Top      float64
	Height   float64
	Color    RGB
	Distance float64
	Hit      int
	Side     int
}

// Bottom returns the row just below the slice.
func (w WallSlice) Bottom() float64 {
	return w.Top + w.Height
}

// ProjectWalls turns rays into one slice per column, in ray order.
func ProjectWalls(rays []Ray, height int) []WallSlice {
	h := float64(height)
	slices := make([]WallSlice, len(rays))
	for i, r := range rays {
		dist := math.Max(r.Distance, minDistance)
		wallHeight := h / dist
		slices[i] = WallSlice{
			X:        i,
			Top:      (h - wallHeight) / 2,
			Height:   wallHeight,
			Color:    WallColor(r.Hit, dist),
			Distance: r.Distance,
			Hit:      r.Hit,
			Side:     r.Side,
		}
	}
	return slices
}

// Band is a full-width one-row strip of floor or ceiling.
type Band struct {
	Y       int
	Color   RGB
	Ceiling bool
}

var (
	floorBase   = RGB{40, 20, 10}
	ceilingBase = RGB{20, 20, 40}
)

// ProjectFloor returns the floor and ceiling gradient for a surface of the
// given height. Row y of the lower half sits at distance h/(2y-h) and is lit
// by max(0, 1-distance/8); the ceiling mirrors it at row h-y.
func ProjectFloor(height int) []Band {
	h := float64(height)
	bands := make([]Band, 0, height)
	for y := height / 2; y < height; y++ {
		intensity := 0.0
		if denom := 2*float64(y) - h; denom > 0 {
			intensity = math.Max(0, 1-(h/denom)/8)
		}
		bands = append(bands,
			Band{Y: y, Color: floorBase.Scale(intensity)},
			Band{Y: height - y, Color: ceilingBase.Scale(intensity), Ceiling: true},
		)
	}
	return bands
}
