package loop

import (
	"math/rand"

	"github.com/tomz197/pong/internal/draw"
)

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	clears  int
	rects   int
	circles int
	lines   int
	dashed  bool
	texts   []string
}

func (r *recordingSurface) Clear(c draw.Color) {
	r.clears++
	r.texts = nil
}

func (r *recordingSurface) FillRect(x, y, w, h float64, c draw.Color) { r.rects++ }

func (r *recordingSurface) FillCircle(cx, cy, rad float64, c draw.Color) { r.circles++ }

func (r *recordingSurface) Line(x1, y1, x2, y2 float64, c draw.Color, dash []float64) {
	r.lines++
	r.dashed = len(dash) > 0
}

func (r *recordingSurface) Text(s string, x, y float64, f draw.Font, a draw.Align, c draw.Color) {
	r.texts = append(r.texts, s)
}

func (r *recordingSurface) hasText(s string) bool {
	for _, t := range r.texts {
		if t == s {
			return true
		}
	}
	return false
}

// countingScheduler is a FrameScheduler that counts requests.
type countingScheduler struct {
	FrameScheduler
	requests int
}

func (c *countingScheduler) RequestFrame(fn func()) {
	c.requests++
	c.FrameScheduler.RequestFrame(fn)
}

// pending reports whether a frame is waiting to run.
func (c *countingScheduler) pending() bool {
	return c.next != nil
}

// recordingSink captures score updates and chrome changes.
type recordingSink struct {
	scores  [][2]int
	started int
}

func (r *recordingSink) ScoreChanged(left, right int) {
	r.scores = append(r.scores, [2]int{left, right})
}

func (r *recordingSink) Started() { r.started++ }

func newTestState() *State {
	return NewState(Options{Rand: rand.New(rand.NewSource(42))})
}
