package core

import "fmt"

// Color is a 24-bit terminal color for a screen cell.
// The zero value means "terminal default"; any value built with RGB is an
// explicit color, so pure black stays distinguishable from the default.
type Color uint32

const colorSet Color = 1 << 24

// ColorDefault leaves the cell to the terminal's own foreground/background.
const ColorDefault Color = 0

// Palette used by HUD text and overlays.
var (
	ColorRed         = RGB(0xff, 0x00, 0x00)
	ColorGreen       = RGB(0x00, 0xc0, 0x00)
	ColorYellow      = RGB(0xff, 0xff, 0x00)
	ColorWhite       = RGB(0xe0, 0xe0, 0xe0)
	ColorBrightWhite = RGB(0xff, 0xff, 0xff)
	ColorOrange      = RGB(0xff, 0x87, 0x00)
	ColorGray        = RGB(0x8a, 0x8a, 0x8a)
	ColorBlack       = RGB(0x00, 0x00, 0x00)
)

// RGB builds an explicit color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// IsDefault reports whether the color defers to the terminal default.
func (c Color) IsDefault() bool {
	return c&colorSet == 0
}

// Channels returns the 8-bit red, green and blue components.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if c.IsDefault() {
		return ""
	}
	r, g, b := c.Channels()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
