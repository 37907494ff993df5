// Package object defines the entities on the field and how they move and draw.
package object

import (
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/input"
)

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Input *input.State
	Field Screen
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
}

// Screen represents the logical field dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a Screen with its center precomputed.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one tick.
	Update(ctx UpdateContext)

	// Draw paints the object. Must not change object state.
	Draw(ctx DrawContext)
}
