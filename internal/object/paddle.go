package object

import (
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/physics"
)

// Paddle is a player-controlled bat fixed to one side of the field.
type Paddle struct {
	X, Y          float64 // Top-left corner; X never changes
	Width, Height float64
	Speed         float64 // Units per tick
	Score         int

	UpKey, DownKey string // Input keys that move the paddle
	Color          draw.Color
}

// NewPaddle creates a paddle at column x, vertically centered on the field.
func NewPaddle(x float64, field Screen, upKey, downKey string, color draw.Color) *Paddle {
	p := &Paddle{
		X:       x,
		Width:   config.PaddleWidth,
		Height:  config.PaddleHeight,
		Speed:   config.PaddleSpeed,
		UpKey:   upKey,
		DownKey: downKey,
		Color:   color,
	}
	p.Reset(field)
	return p
}

// Update moves the paddle while its keys are held.
// Y always ends inside [0, field height - paddle height].
func (p *Paddle) Update(ctx UpdateContext) {
	maxY := float64(ctx.Field.Height) - p.Height

	if ctx.Input.Pressed(p.UpKey) && p.Y > 0 {
		p.Y -= p.Speed
	}
	if ctx.Input.Pressed(p.DownKey) && p.Y < maxY {
		p.Y += p.Speed
	}

	// Speed need not divide the travel evenly
	p.Y = physics.Clamp(p.Y, 0, maxY)
}

// Reset centers the paddle vertically.
func (p *Paddle) Reset(field Screen) {
	p.Y = float64(field.Height)/2 - p.Height/2
}

// Spans reports whether x lies within the paddle's horizontal extent
// and y within its vertical extent.
func (p *Paddle) Spans(x, y float64) bool {
	return physics.PointInRect(x, y, p.X, p.Y, p.Width, p.Height)
}

// HitOffset returns where y falls along the paddle, 0 at the top and 1 at the bottom.
func (p *Paddle) HitOffset(y float64) float64 {
	return physics.Normalize(y, p.Y, p.Height)
}

// Draw renders the paddle as a filled rectangle.
func (p *Paddle) Draw(ctx DrawContext) {
	ctx.Surface.FillRect(p.X, p.Y, p.Width, p.Height, p.Color)
}
