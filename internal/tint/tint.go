// Package tint holds the packed RGB colour used for card and particle tints.
package tint

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Tint is a packed 0xRRGGBB colour multiplied onto a sprite. White is neutral.
type Tint uint32

// Neutral leaves the sprite colour untouched.
const Neutral Tint = 0xFFFFFF

// RGB unpacks the channels.
func (c Tint) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex formats the tint as #rrggbb, the form lipgloss.Color accepts.
func (c Tint) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

func (c Tint) String() string { return c.Hex() }

// Scale darkens the tint by v in [0,1]; used to fake alpha on a terminal.
func (c Tint) Scale(v float64) Tint {
	return Lerp(0x000000, c, v)
}

// Lerp blends a toward b by t in RGB space. t is clamped to [0,1] and the
// endpoints are returned exactly.
func Lerp(a, b Tint, t float64) Tint {
	if t <= 0 || math.IsNaN(t) {
		return a
	}
	if t >= 1 {
		return b
	}
	return fromColorful(toColorful(a).BlendRgb(toColorful(b), t))
}

// Parse reads #rrggbb.
func Parse(hex string) (Tint, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("parse tint %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

func toColorful(c Tint) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) Tint {
	r, g, b := c.Clamped().RGB255()
	return Tint(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}
