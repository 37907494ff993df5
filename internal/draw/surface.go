package draw

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface is a 2D drawing target addressed in logical coordinates.
// The game renders exclusively through this interface.
type Surface interface {
	// Clear fills the whole surface with c and removes all text.
	Clear(c Color)
	// FillRect fills the axis-aligned rectangle with top-left corner (x, y).
	FillRect(x, y, w, h float64, c Color)
	// FillCircle fills the circle centered at (cx, cy).
	FillCircle(cx, cy, r float64, c Color)
	// Line strokes a line. dash alternates on/off lengths; nil draws solid.
	Line(x1, y1, x2, y2 float64, c Color, dash []float64)
	// Text draws s anchored at (x, y) according to align.
	Text(s string, x, y float64, font Font, align Align, c Color)
}

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Hex parses a "#rrggbb" or "#rgb" color. Panics on malformed input,
// so it is meant for package-level color constants.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses a "#rrggbb" or "#rgb" color; the leading '#' is optional.
func ParseHex(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("draw: invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Font describes text styling. Terminal surfaces cannot scale glyphs,
// so Size is advisory and Bold maps to a bold attribute.
type Font struct {
	Size float64
	Bold bool
}

// Align selects which point of the text (x, y) refers to.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)
