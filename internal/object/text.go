package object

import "github.com/tomz197/pong/internal/draw"

// Text is a label drawn in logical coordinates. It has no update step.
type Text struct {
	X, Y  float64
	Value string
	Font  draw.Font
	Align draw.Align
	Color draw.Color
}

// Draw writes the text onto the surface.
func (t Text) Draw(ctx DrawContext) {
	if t.Value == "" {
		return
	}
	ctx.Surface.Text(t.Value, t.X, t.Y, t.Font, t.Align, t.Color)
}
