package hud

import (
	"image/color"
	"math"
)

// Palette used by the window renderer.
var (
	Background   = color.RGBA{R: 0x1b, G: 0x1d, B: 0x24, A: 0xff}
	EventTint    = color.RGBA{R: 0x80, G: 0x10, B: 0x10, A: 0x30}
	PlayerColor  = color.RGBA{R: 0x4f, G: 0xa3, B: 0xff, A: 0xff}
	DropColor    = color.RGBA{R: 0xff, G: 0xd2, B: 0x4a, A: 0xff}
	TowerColor   = color.RGBA{R: 0x5a, G: 0x55, B: 0x50, A: 0xff}
	BannerColor  = color.RGBA{R: 0xb0, G: 0x24, B: 0x2c, A: 0xff}
	HPBarBack    = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	HPBarFill    = color.RGBA{R: 0x52, G: 0xd0, B: 0x5a, A: 0xff}
	XPBarFill    = color.RGBA{R: 0x6a, G: 0xc8, B: 0xe8, A: 0xff}
	TextColor    = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	EventColor   = color.RGBA{R: 0xff, G: 0x6b, B: 0x5a, A: 0xff}
	PeacefulText = color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
)

// HueColor converts a mob hue in degrees to an opaque colour at fixed
// saturation and value.
func HueColor(hue float64) color.RGBA {
	const s, v = 0.6, 0.9
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 0xff,
	}
}

// WithAlpha scales c's alpha by a in [0, 1].
func WithAlpha(c color.RGBA, a float64) color.RGBA {
	a = math.Min(1, math.Max(0, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
