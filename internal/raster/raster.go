// Package raster turns projected frames into pixels: a canvas painted back
// to front, which hosts copy into terminal cells or an RGBA image.
package raster

import (
	"math"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/raycast"
)

// Style selects how canvas pixels become terminal cells.
type Style int

const (
	// StyleBlocks packs two pixel rows into one cell with an upper half
	// block: foreground is the top pixel, background the bottom one.
	StyleBlocks Style = iota
	// StyleASCII draws one pixel per cell and shades walls with a glyph
	// ramp by distance.
	StyleASCII
)

// PixelRows returns how many pixel rows a style fits in n cell rows.
func (s Style) PixelRows(n int) int {
	if s == StyleBlocks {
		return n * 2
	}
	return n
}

// Kind tells what a pixel shows.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindCeiling
	KindFloor
	KindWall
	KindSprite
	KindEyes
)

// Pixel is one canvas sample. Dist is set for walls and sprites.
type Pixel struct {
	Color raycast.RGB
	Kind  Kind
	Dist  float64
}

// Canvas is a frame rasterized at surface resolution.
type Canvas struct {
	W, H int
	px   []Pixel
}

// NewCanvas returns an empty w×h canvas.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	return &Canvas{W: w, H: h, px: make([]Pixel, w*h)}
}

// At returns the pixel at (x, y). It panics outside the canvas.
func (c *Canvas) At(x, y int) Pixel {
	return c.px[y*c.W+x]
}

// Set writes a pixel; writes outside the canvas are dropped.
func (c *Canvas) Set(x, y int, p Pixel) {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return
	}
	c.px[y*c.W+x] = p
}

// Rasterize paints a frame back to front: floor and ceiling bands, wall
// slices, then sprites clipped against the per-column wall distance.
func Rasterize(f raycast.Frame) *Canvas {
	c := NewCanvas(f.Width, f.Height)

	for _, b := range f.Floor {
		k := KindFloor
		if b.Ceiling {
			k = KindCeiling
		}
		for x := 0; x < c.W; x++ {
			c.Set(x, b.Y, Pixel{Color: b.Color, Kind: k})
		}
	}

	for _, s := range f.Walls {
		top := max(int(math.Ceil(s.Top)), 0)
		bottom := min(int(math.Ceil(s.Bottom())), c.H)
		for y := top; y < bottom; y++ {
			c.Set(s.X, y, Pixel{Color: s.Color, Kind: KindWall, Dist: s.Distance})
		}
	}

	for _, sp := range f.Sprites {
		c.fillSprite(sp.BodyBox(), sp.Body, KindSprite, sp.Depth, f.Rays)
		for _, eye := range sp.EyeBoxes() {
			c.fillSprite(eye, sp.Eyes, KindEyes, sp.Depth, f.Rays)
		}
	}
	return c
}

// fillSprite fills a box in columns where the sprite is nearer than the wall.
// depth and the ray distances are both measured along the view axis.
func (c *Canvas) fillSprite(b raycast.Box, color raycast.RGB, k Kind, dist float64, rays []raycast.Ray) {
	x0 := max(int(math.Floor(b.X)), 0)
	x1 := min(int(math.Ceil(b.X+b.W)), c.W)
	y0 := max(int(math.Floor(b.Y)), 0)
	y1 := min(int(math.Ceil(b.Y+b.H)), c.H)

	for x := x0; x < x1; x++ {
		if x < len(rays) && rays[x].Distance <= dist {
			continue
		}
		for y := y0; y < y1; y++ {
			c.Set(x, y, Pixel{Color: color, Kind: k, Dist: dist})
		}
	}
}

// RGBA writes the canvas as 8-bit RGBA into dst, growing it if needed, and
// returns it. Empty pixels are opaque black.
func (c *Canvas) RGBA(dst []byte) []byte {
	n := len(c.px) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range c.px {
		dst[i*4] = p.Color.R
		dst[i*4+1] = p.Color.G
		dst[i*4+2] = p.Color.B
		dst[i*4+3] = 0xff
	}
	return dst
}

// wallRamp shades walls from near to far.
var wallRamp = []rune{'█', '▓', '▒', '░', '·'}

// WallGlyph returns the ramp glyph for a wall at dist.
func WallGlyph(dist float64) rune {
	return wallRamp[core.Clamp(int(dist/3), 0, len(wallRamp)-1)]
}

func toColor(c raycast.RGB) core.Color {
	return core.RGB(c.R, c.G, c.B)
}

// Blit copies the canvas into dst starting at row y0.
func (c *Canvas) Blit(dst *core.Screen, y0 int, style Style) {
	switch style {
	case StyleBlocks:
		for row := 0; row*2 < c.H; row++ {
			for x := 0; x < c.W; x++ {
				top := c.At(x, row*2)
				bottom := top
				if row*2+1 < c.H {
					bottom = c.At(x, row*2+1)
				}
				dst.SetCell(x, y0+row, core.Cell{Rune: '▀', Fg: toColor(top.Color), Bg: toColor(bottom.Color)})
			}
		}
	case StyleASCII:
		for y := 0; y < c.H; y++ {
			for x := 0; x < c.W; x++ {
				dst.SetCell(x, y0+y, asciiCell(c.At(x, y)))
			}
		}
	}
}

func asciiCell(p Pixel) core.Cell {
	fg := toColor(p.Color)
	switch p.Kind {
	case KindWall:
		return core.Cell{Rune: WallGlyph(p.Dist), Fg: fg, Bg: core.ColorBlack}
	case KindFloor:
		return core.Cell{Rune: '.', Fg: fg, Bg: core.ColorBlack}
	case KindCeiling:
		return core.Cell{Rune: ' ', Bg: fg}
	case KindSprite, KindEyes:
		return core.Cell{Rune: '█', Fg: fg, Bg: core.ColorBlack}
	default:
		return core.Cell{Rune: ' ', Bg: core.ColorBlack}
	}
}
