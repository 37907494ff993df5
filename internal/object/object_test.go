package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/input"
)

var testField = NewScreen(800, 500)

// recordingSurface captures draw calls.
type recordingSurface struct {
	rects   int
	circles int
	texts   []string
}

func (r *recordingSurface) Clear(c draw.Color)                                 {}
func (r *recordingSurface) FillRect(x, y, w, h float64, c draw.Color)          { r.rects++ }
func (r *recordingSurface) FillCircle(cx, cy, rad float64, c draw.Color)       { r.circles++ }
func (r *recordingSurface) Line(x1, y1, x2, y2 float64, c draw.Color, d []float64) {}
func (r *recordingSurface) Text(s string, x, y float64, f draw.Font, a draw.Align, c draw.Color) {
	r.texts = append(r.texts, s)
}

func TestNewPaddleCentered(t *testing.T) {
	p := NewPaddle(20, testField, "w", "s", draw.Color{})
	if p.Y != 200 {
		t.Errorf("Expected paddle Y 200, got %v", p.Y)
	}
	if p.Width != 10 || p.Height != 100 || p.Speed != 6 {
		t.Errorf("Unexpected paddle geometry %+v", p)
	}
}

func TestPaddleMovesWithKeys(t *testing.T) {
	in := input.NewState()
	p := NewPaddle(20, testField, "w", "s", draw.Color{})
	ctx := UpdateContext{Input: in, Field: testField}

	in.Press("w")
	p.Update(ctx)
	if p.Y != 194 {
		t.Errorf("Expected Y 194 after moving up, got %v", p.Y)
	}

	in.Release("w")
	in.Press("s")
	p.Update(ctx)
	p.Update(ctx)
	if p.Y != 206 {
		t.Errorf("Expected Y 206 after moving down twice, got %v", p.Y)
	}

	// Both keys cancel out
	in.Press("w")
	p.Update(ctx)
	if p.Y != 206 {
		t.Errorf("Expected Y unchanged with both keys held, got %v", p.Y)
	}
}

func TestPaddleClampedAtWalls(t *testing.T) {
	in := input.NewState()
	p := NewPaddle(20, testField, "w", "s", draw.Color{})
	ctx := UpdateContext{Input: in, Field: testField}

	in.Press("s")
	for i := 0; i < 200; i++ {
		p.Update(ctx)
		if p.Y < 0 || p.Y > 400 {
			t.Fatalf("Tick %d: paddle Y %v out of range", i, p.Y)
		}
	}
	// 400 is not a multiple of 6 from 200: the clamp must land exactly on the wall
	if p.Y != 400 {
		t.Errorf("Expected paddle resting at 400, got %v", p.Y)
	}

	in.Release("s")
	in.Press("w")
	for i := 0; i < 200; i++ {
		p.Update(ctx)
	}
	if p.Y != 0 {
		t.Errorf("Expected paddle resting at 0, got %v", p.Y)
	}
}

func TestPaddleHitOffset(t *testing.T) {
	p := NewPaddle(20, testField, "w", "s", draw.Color{})
	tests := []struct {
		y, want float64
	}{
		{200, 0},
		{250, 0.5},
		{300, 1},
		{225, 0.25},
	}
	for _, tt := range tests {
		if got := p.HitOffset(tt.y); got != tt.want {
			t.Errorf("HitOffset(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}
	if !p.Spans(25, 250) || p.Spans(35, 250) || p.Spans(25, 301) {
		t.Error("Unexpected Spans result")
	}
}

func TestBallMovesAndBounces(t *testing.T) {
	b := NewBall(testField, draw.Color{})
	ctx := UpdateContext{Input: input.NewState(), Field: testField}

	b.Update(ctx)
	if b.X != 404 || b.Y != 254 || b.DX != 4 || b.DY != 4 {
		t.Errorf("Expected (404,254) moving (4,4), got (%v,%v) moving (%v,%v)", b.X, b.Y, b.DX, b.DY)
	}

	b.Y = 488
	b.Update(ctx)
	if b.DY != -4 {
		t.Errorf("Expected bounce off bottom wall, DY = %v", b.DY)
	}

	b.Y = 12
	b.DY = -4
	b.Update(ctx)
	if b.DY != 4 {
		t.Errorf("Expected bounce off top wall, DY = %v", b.DY)
	}
	if b.Y != 8 {
		t.Errorf("Expected no positional correction, Y = %v", b.Y)
	}
}

func TestBallServe(t *testing.T) {
	b := NewBall(testField, draw.Color{})
	rng := rand.New(rand.NewSource(1))
	seen := map[[2]bool]bool{}

	for i := 0; i < 64; i++ {
		b.X, b.Y = 10, 10
		b.Serve(testField, rng)
		if b.X != 400 || b.Y != 250 {
			t.Fatalf("Expected serve from center, got (%v,%v)", b.X, b.Y)
		}
		if math.Abs(b.DX) != 4 || math.Abs(b.DY) != 4 {
			t.Fatalf("Expected base speed on both axes, got (%v,%v)", b.DX, b.DY)
		}
		seen[[2]bool{b.DX > 0, b.DY > 0}] = true
	}
	if len(seen) != 4 {
		t.Errorf("Expected all four diagonals over 64 serves, saw %d", len(seen))
	}
}

func TestDraw(t *testing.T) {
	surf := &recordingSurface{}
	ctx := DrawContext{Surface: surf}

	NewPaddle(20, testField, "w", "s", draw.Color{}).Draw(ctx)
	NewBall(testField, draw.Color{}).Draw(ctx)
	Text{Value: "PAUSED"}.Draw(ctx)
	Text{}.Draw(ctx)

	if surf.rects != 1 || surf.circles != 1 {
		t.Errorf("Expected 1 rect and 1 circle, got %d and %d", surf.rects, surf.circles)
	}
	if len(surf.texts) != 1 || surf.texts[0] != "PAUSED" {
		t.Errorf("Expected only non-empty text drawn, got %v", surf.texts)
	}
}
