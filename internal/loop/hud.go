package loop

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tomz197/pong/internal/draw"
)

// HUD is the status line under the field: score labels and control hints.
// It is the score sink and start/restart chrome of a terminal session.
type HUD struct {
	left, right int
	started     bool
	notice      string // Replaces the control hints while set
	dirty       bool
}

// Ensure HUD satisfies the chrome interfaces.
var (
	_ ScoreSink = (*HUD)(nil)
	_ Controls  = (*HUD)(nil)
)

// NewHUD creates a HUD showing the start control.
func NewHUD() *HUD {
	return &HUD{dirty: true}
}

// ScoreChanged updates the score labels.
func (h *HUD) ScoreChanged(left, right int) {
	if left != h.left || right != h.right {
		h.dirty = true
	}
	h.left = left
	h.right = right
}

// Started swaps the start hint for the restart hint.
func (h *HUD) Started() {
	if !h.started {
		h.dirty = true
	}
	h.started = true
}

// SetNotice shows a message in place of the control hints; "" clears it.
func (h *HUD) SetNotice(msg string) {
	if msg != h.notice {
		h.dirty = true
	}
	h.notice = msg
}

// Invalidate forces the next Draw to repaint.
func (h *HUD) Invalidate() {
	h.dirty = true
}

// Line lays out the status line to exactly width cells:
// hints on the left, scores centered, quit hint on the right.
func (h *HUD) Line(width int) string {
	hint := "[ENTER] Start"
	if h.started {
		hint = "[R] Restart  [SPACE] Pause"
	}
	if h.notice != "" {
		hint = h.notice
	}
	score := fmt.Sprintf("Player 1: %d   Player 2: %d", h.left, h.right)
	quit := "[Q] Quit"

	line := []rune(strings.Repeat(" ", width))
	place := func(s string, at int) {
		for i, r := range []rune(s) {
			if at+i >= 0 && at+i < width {
				line[at+i] = r
			}
		}
	}
	place(hint, 1)
	place(score, (width-utf8.RuneCountInString(score))/2)
	place(quit, width-utf8.RuneCountInString(quit)-1)
	return string(line)
}

// Draw writes the status line at canvas row `row` if it changed.
func (h *HUD) Draw(cw *draw.ChunkWriter, row, width int) {
	if !h.dirty {
		return
	}
	cw.ClearLineAt(row)
	cw.WriteAt(1, row, h.Line(width))
	h.dirty = false
}
