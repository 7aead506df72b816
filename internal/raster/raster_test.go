package raster

import (
	"math"
	"testing"

	"github.com/harbdog/raycaster-go/geom"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/raycast"
)

// occludedFrame puts an enemy 2.5 units ahead of the player. The left half
// of the view has a wall at distance 1, the right half one at distance 8.
func occludedFrame() raycast.Frame {
	const w, h = 40, 20
	rays := make([]raycast.Ray, w)
	for i := range rays {
		rays[i] = raycast.Ray{Distance: 8, Hit: 1}
		if i < w/2 {
			rays[i].Distance = 1
		}
	}
	p := raycast.Player{Pos: geom.Vector2{X: 1.5, Y: 1.5}}
	enemies := []raycast.Enemy{{Pos: geom.Vector2{X: 4, Y: 1.5}, Health: 100}}

	return raycast.Frame{
		Width:   w,
		Height:  h,
		Rays:    rays,
		Walls:   raycast.ProjectWalls(rays, h),
		Floor:   raycast.ProjectFloor(h),
		Sprites: raycast.ProjectSprites(p, enemies, w, h, 0, raycast.DefaultSpriteOptions()),
	}
}

func TestRasterizeOcclusion(t *testing.T) {
	c := Rasterize(occludedFrame())

	tests := []struct {
		name string
		x, y int
		want Kind
	}{
		{"near wall hides sprite", 17, 12, KindWall},
		{"sprite in front of far wall", 22, 12, KindSprite},
		{"eye", 21, 7, KindEyes},
		{"far wall", 30, 10, KindWall},
		{"floor below far wall", 30, 12, KindFloor},
		{"ceiling above far wall", 30, 3, KindCeiling},
		{"top row is never painted", 30, 0, KindEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.At(tt.x, tt.y).Kind; got != tt.want {
				t.Errorf("kind at (%d,%d) = %d, expected %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// offCenterFrame puts an enemy 4 units away at 25 degrees right of the view
// axis, in front of a flat wall whose corrected distance is wall.
func offCenterFrame(wall float64) raycast.Frame {
	const w, h = 40, 20
	rays := make([]raycast.Ray, w)
	for i := range rays {
		rays[i] = raycast.Ray{Distance: wall, Hit: 1}
	}
	rel := 25 * math.Pi / 180
	p := raycast.Player{Pos: geom.Vector2{X: 1.5, Y: 1.5}}
	enemies := []raycast.Enemy{{
		Pos:    geom.Vector2{X: 1.5 + 4*math.Cos(rel), Y: 1.5 + 4*math.Sin(rel)},
		Health: 100,
	}}

	return raycast.Frame{
		Width:   w,
		Height:  h,
		Rays:    rays,
		Walls:   raycast.ProjectWalls(rays, h),
		Floor:   raycast.ProjectFloor(h),
		Sprites: raycast.ProjectSprites(p, enemies, w, h, 0, raycast.DefaultSpriteOptions()),
	}
}

func TestRasterizeOffCenterOcclusion(t *testing.T) {
	// The enemy sits 3.63 units along the view axis. A wall at corrected
	// distance 3.8 is 4.19 units away along the enemy's ray.
	tests := []struct {
		name string
		wall float64
		want Kind
	}{
		{"sprite in front of wall", 3.8, KindSprite},
		{"wall in front of sprite", 3.4, KindWall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := offCenterFrame(tt.wall)
			if len(f.Sprites) != 1 {
				t.Fatalf("projected %d sprites", len(f.Sprites))
			}
			c := Rasterize(f)
			if got := c.At(36, 11).Kind; got != tt.want {
				t.Errorf("kind at (36,11) = %d, expected %d", got, tt.want)
			}
		})
	}
}

func TestRasterizeEmptyFrame(t *testing.T) {
	c := Rasterize(raycast.Frame{Width: 4, Height: 3})
	for i, p := range c.px {
		if p.Kind != KindEmpty {
			t.Fatalf("pixel %d = %+v, expected empty", i, p)
		}
	}
}

func TestBlitBlocks(t *testing.T) {
	top := raycast.RGB{R: 200, G: 10, B: 10}
	bottom := raycast.RGB{R: 10, G: 10, B: 200}

	c := NewCanvas(2, 3)
	c.Set(0, 0, Pixel{Color: top, Kind: KindWall})
	c.Set(0, 1, Pixel{Color: bottom, Kind: KindFloor})
	c.Set(1, 2, Pixel{Color: top, Kind: KindWall})

	screen := core.NewScreen(2, 3)
	c.Blit(screen, 1, StyleBlocks)

	if got := screen.GetCell(0, 0); got.Rune != ' ' {
		t.Errorf("row above the offset was drawn: %+v", got)
	}
	cell := screen.GetCell(0, 1)
	if cell.Rune != '▀' || cell.Fg != toColor(top) || cell.Bg != toColor(bottom) {
		t.Errorf("cell = %+v, expected top over bottom", cell)
	}
	// An odd last pixel row fills both halves.
	last := screen.GetCell(1, 2)
	if last.Fg != toColor(top) || last.Bg != toColor(top) {
		t.Errorf("last cell = %+v", last)
	}
}

func TestBlitASCII(t *testing.T) {
	gray := raycast.RGB{R: 90, G: 90, B: 90}

	c := NewCanvas(5, 1)
	c.Set(0, 0, Pixel{Color: gray, Kind: KindWall, Dist: 0.5})
	c.Set(1, 0, Pixel{Color: gray, Kind: KindWall, Dist: 7})
	c.Set(2, 0, Pixel{Color: gray, Kind: KindFloor})
	c.Set(3, 0, Pixel{Color: gray, Kind: KindSprite})

	screen := core.NewScreen(5, 1)
	c.Blit(screen, 0, StyleASCII)

	if got, want := screen.Row(0), "█▒.█ "; got != want {
		t.Errorf("row = %q, expected %q", got, want)
	}
	if fg := screen.GetCell(0, 0).Fg; fg != toColor(gray) {
		t.Errorf("wall fg = %v", fg)
	}
}

func TestWallGlyph(t *testing.T) {
	tests := []struct {
		dist float64
		want rune
	}{
		{0, '█'},
		{2.9, '█'},
		{3, '▓'},
		{6.5, '▒'},
		{9, '░'},
		{12, '·'},
		{100, '·'},
		{-1, '█'},
	}
	for _, tt := range tests {
		if got := WallGlyph(tt.dist); got != tt.want {
			t.Errorf("WallGlyph(%v) = %q, expected %q", tt.dist, got, tt.want)
		}
	}
}

func TestPixelRows(t *testing.T) {
	if got := StyleBlocks.PixelRows(23); got != 46 {
		t.Errorf("blocks: %d", got)
	}
	if got := StyleASCII.PixelRows(23); got != 23 {
		t.Errorf("ascii: %d", got)
	}
}

func TestRGBA(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(1, 0, Pixel{Color: raycast.RGB{R: 1, G: 2, B: 3}, Kind: KindWall})

	buf := c.RGBA(nil)
	want := []byte{0, 0, 0, 0xff, 1, 2, 3, 0xff}
	if string(buf) != string(want) {
		t.Errorf("RGBA = %v, expected %v", buf, want)
	}

	// A large enough buffer is reused.
	big := make([]byte, 16)
	if out := c.RGBA(big); &out[0] != &big[0] || len(out) != 8 {
		t.Error("buffer was not reused")
	}
}

func TestSetOutside(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0, Pixel{Kind: KindWall})
	c.Set(0, 2, Pixel{Kind: KindWall})
	for i, p := range c.px {
		if p.Kind != KindEmpty {
			t.Fatalf("pixel %d written: %+v", i, p)
		}
	}
}
