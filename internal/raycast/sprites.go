package raycast

import (
	"math"
	"sort"
	"time"
)

// SpriteOptions control billboard projection.
type SpriteOptions struct {
	RenderDepth   float64       // enemies at or beyond this distance are not drawn
	Aspect        float64       // width / height of a billboard
	FlashDuration time.Duration // how long a hit enemy stays highlighted
}

// DefaultSpriteOptions returns the shipped projection settings.
func DefaultSpriteOptions() SpriteOptions {
	return SpriteOptions{
		RenderDepth:   10,
		Aspect:        0.8,
		FlashDuration: 200 * time.Millisecond,
	}
}

// Sprite palette.
var (
	SpriteBody      = RGB{0xff, 0x00, 0x00}
	SpriteEyes      = RGB{0xff, 0xff, 0x00}
	SpriteFlashBody = RGB{0xff, 0x88, 0x88}
	SpriteFlashEyes = RGB{0xff, 0xff, 0xff}
)

// Box is a rectangle in surface pixels.
type Box struct {
	X, Y, W, H float64
}

// SpriteCommand is one billboard to draw.
type SpriteCommand struct {
	Index    int // roster index of the enemy
	Sprite   int
	ScreenX  float64
	Width    float64
	Height   float64
	Distance float64 // straight-line distance to the player
	Depth    float64 // distance along the view axis, comparable with Ray.Distance
	Flash    bool
	Body     RGB
	Eyes     RGB
	surfaceH float64
}

// BodyBox returns the billboard rectangle, vertically centered.
func (c SpriteCommand) BodyBox() Box {
	return Box{
		X: c.ScreenX - c.Width/2,
		Y: (c.surfaceH - c.Height) / 2,
		W: c.Width,
		H: c.Height,
	}
}

// EyeBoxes returns the two eye rectangles drawn over the body.
func (c SpriteCommand) EyeBoxes() [2]Box {
	top := (c.surfaceH-c.Height)/2 + c.Height*0.2
	return [2]Box{
		{X: c.ScreenX - c.Width/4, Y: top, W: c.Width / 8, H: c.Height * 0.1},
		{X: c.ScreenX + c.Width/8, Y: top, W: c.Width / 8, H: c.Height * 0.1},
	}
}

// Visible reports whether an enemy at relative angle rel and distance dist
// passes the view cone and depth cull.
func Visible(rel, dist float64, opt SpriteOptions) bool {
	return math.Abs(rel) < HalfFOV && dist < opt.RenderDepth
}

// ProjectSprites returns draw commands for every live, visible enemy,
// ordered far to near. It does not modify its inputs.
func ProjectSprites(p Player, enemies []Enemy, width, height int, now time.Duration, opt SpriteOptions) []SpriteCommand {
	w, h := float64(width), float64(height)
	cmds := make([]SpriteCommand, 0, len(enemies))

	for i, e := range enemies {
		if !e.Alive() {
			continue
		}
		dist, angle := e.DistanceTo(p.Pos)
		rel := NormalizeAngle(angle - p.Angle)
		if !Visible(rel, dist, opt) {
			continue
		}

		d := math.Max(dist, minDistance)
		spriteHeight := h / d
		cmd := SpriteCommand{
			Index:    i,
			Sprite:   e.Sprite,
			ScreenX:  rel/HalfFOV*(w/2) + w/2,
			Width:    spriteHeight * opt.Aspect,
			Height:   spriteHeight,
			Distance: dist,
			Depth:    dist * math.Cos(rel),
			Body:     SpriteBody,
			Eyes:     SpriteEyes,
			surfaceH: h,
		}
		if e.WasHit && now-e.LastHit < opt.FlashDuration {
			cmd.Flash = true
			cmd.Body = SpriteFlashBody
			cmd.Eyes = SpriteFlashEyes
		}
		cmds = append(cmds, cmd)
	}

	sort.SliceStable(cmds, func(a, b int) bool {
		return cmds[a].Distance > cmds[b].Distance
	})
	return cmds
}
