package object

import (
	"math/rand"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/physics"
)

// Ball is the puck bouncing between the paddles.
type Ball struct {
	X, Y   float64 // Center
	Radius float64
	DX, DY float64 // Velocity, units per tick
	Speed  float64 // Base speed per axis used on serve
	Color  draw.Color
}

// NewBall creates a ball at the field center moving down and to the right.
func NewBall(field Screen, color draw.Color) *Ball {
	return &Ball{
		X:      float64(field.Width) / 2,
		Y:      float64(field.Height) / 2,
		Radius: config.BallRadius,
		DX:     config.BallSpeed,
		DY:     config.BallSpeed,
		Speed:  config.BallSpeed,
		Color:  color,
	}
}

// Update advances the ball and bounces it off the top and bottom walls.
// The position is not corrected, so the ball may dip into a wall for a tick.
func (b *Ball) Update(ctx UpdateContext) {
	b.X += b.DX
	b.Y += b.DY

	if b.Y-b.Radius <= 0 || b.Y+b.Radius >= float64(ctx.Field.Height) {
		b.DY = -b.DY
	}
}

// Serve recenters the ball and sends it off at base speed in a random diagonal.
func (b *Ball) Serve(field Screen, rng *rand.Rand) {
	b.X = float64(field.Width) / 2
	b.Y = float64(field.Height) / 2
	b.DX = physics.WithSign(b.Speed, rng.Intn(2) == 0)
	b.DY = physics.WithSign(b.Speed, rng.Intn(2) == 0)
}

// LeftEdge returns the x coordinate of the ball's leftmost point.
func (b *Ball) LeftEdge() float64 {
	return b.X - b.Radius
}

// RightEdge returns the x coordinate of the ball's rightmost point.
func (b *Ball) RightEdge() float64 {
	return b.X + b.Radius
}

// Draw renders the ball as a filled circle.
func (b *Ball) Draw(ctx DrawContext) {
	ctx.Surface.FillCircle(b.X, b.Y, b.Radius, b.Color)
}
