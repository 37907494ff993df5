// Package loop drives the game: state, physics step, rendering and the
// per-frame driver, plus the terminal session that hosts them.
package loop

import (
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/input"
)

// Scheduler runs a callback on the next display frame.
type Scheduler interface {
	RequestFrame(fn func())
}

// ScoreSink receives both scores whenever either changes.
type ScoreSink interface {
	ScoreChanged(left, right int)
}

// Controls is the start/restart chrome.
type Controls interface {
	// Started hides the start control and reveals the restart control.
	Started()
}

// LoopOptions wires the loop to its collaborators. Nil sinks are ignored.
type LoopOptions struct {
	Scheduler Scheduler
	Score     ScoreSink
	Controls  Controls
}

// Loop sequences Step and Render once per frame while the game runs.
// It re-requests a frame only while running and unpaused; pause, game over
// and "not started" all leave it dormant until a command kicks it again.
type Loop struct {
	state    *State
	input    *input.State
	surface  draw.Surface
	sched    Scheduler
	score    ScoreSink
	controls Controls

	pending bool // A frame is requested and has not run yet
}

// NewLoop creates a loop over state. It does not start it.
func NewLoop(state *State, in *input.State, surface draw.Surface, opts LoopOptions) *Loop {
	l := &Loop{
		state:    state,
		input:    in,
		surface:  surface,
		sched:    opts.Scheduler,
		score:    opts.Score,
		controls: opts.Controls,
	}
	if l.score == nil {
		l.score = nopSink{}
	}
	if l.controls == nil {
		l.controls = nopSink{}
	}
	return l
}

// State returns the game state driven by the loop.
func (l *Loop) State() *State {
	return l.state
}

// Tick is one frame. Not running: nothing. Running: step, render and request
// the next frame. Paused or over: render only and go dormant.
func (l *Loop) Tick() {
	s := l.state
	if !s.Running {
		return
	}

	if s.Paused || s.Over {
		Render(s, l.surface)
		return
	}

	Step(s, l.input, l.score)
	Render(s, l.surface)

	if !s.Over {
		l.requestFrame()
	}
}

// Render paints the current state without advancing it.
func (l *Loop) Render() {
	Render(l.state, l.surface)
}

// Start enters the running state and schedules the first frame.
// Calling Start while running does nothing.
func (l *Loop) Start() {
	if l.state.Running {
		return
	}
	l.state.Running = true
	l.controls.Started()
	l.requestFrame()
}

// Restart zeroes the scores, resets positions, unpauses and (re)starts the loop.
func (l *Loop) Restart() {
	l.state.ResetMatch()
	l.score.ScoreChanged(l.state.Player1.Score, l.state.Player2.Score)

	if !l.state.Running {
		l.Start()
		return
	}
	l.requestFrame()
}

// TogglePause flips the pause flag while running. Resuming re-kicks the loop;
// pausing schedules one more frame so the overlay gets drawn.
func (l *Loop) TogglePause() {
	if !l.state.Running || l.state.Over {
		return
	}
	l.state.Paused = !l.state.Paused
	l.requestFrame()
}

// requestFrame asks for the next frame unless one is already pending.
func (l *Loop) requestFrame() {
	if l.pending || l.sched == nil {
		return
	}
	l.pending = true
	l.sched.RequestFrame(l.frame)
}

func (l *Loop) frame() {
	l.pending = false
	l.Tick()
}

type nopSink struct{}

func (nopSink) ScoreChanged(int, int) {}
func (nopSink) Started()              {}
