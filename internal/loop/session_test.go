package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/pong/internal/input"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// newTestSession creates a session whose input never produces keys.
func newTestSession(t *testing.T, opts SessionOptions) (*Session, *bytes.Buffer) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(100, 30)
	}
	opts.Logger = log.New(io.Discard)

	var out bytes.Buffer
	return NewSession(bufio.NewReader(pr), &out, opts), &out
}

func TestSessionCommands(t *testing.T) {
	s, out := newTestSession(t, SessionOptions{})
	now := time.Now()
	s.lastInput = now

	if err := s.frame(now); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if !strings.Contains(out.String(), "[ENTER] Start") {
		t.Error("Expected start hint before the match starts")
	}
	if s.state.Ball.X != 400 {
		t.Error("Expected the ball to wait for start")
	}

	s.handleCommand(input.KeyEnter)
	out.Reset()
	if err := s.frame(now); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if s.state.Ball.X != 404 {
		t.Errorf("Expected one step after start, got x=%v", s.state.Ball.X)
	}
	if !strings.Contains(out.String(), "[R] Restart") {
		t.Error("Expected restart hint once started")
	}

	s.handleCommand(input.KeySpace)
	if !s.state.Paused {
		t.Error("Expected space to pause")
	}
	s.handleCommand(input.KeySpace)
	if s.state.Paused {
		t.Error("Expected space to resume")
	}

	s.state.Player2.Score = 4
	s.handleCommand("r")
	if s.state.Player2.Score != 0 {
		t.Error("Expected r to restart the match")
	}

	s.handleCommand("q")
	if s.running {
		t.Error("Expected q to end the session")
	}
}

func TestSessionColorProfile(t *testing.T) {
	s, out := newTestSession(t, SessionOptions{ColorProfile: termenv.ANSI256})
	s.lastInput = time.Now()
	s.loop.Render()

	if err := s.frame(time.Now()); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if !strings.Contains(out.String(), ";38;5;") {
		t.Error("Expected 256-color sequences")
	}
	if strings.Contains(out.String(), ";38;2;") {
		t.Error("Expected no true color sequences on a 256-color terminal")
	}
}

func TestSessionSpaceRestartsAfterGameOver(t *testing.T) {
	s, _ := newTestSession(t, SessionOptions{MatchTicks: 60})
	s.handleCommand(input.KeyEnter)
	s.state.Over = true
	s.state.ClockTicks = 0

	s.handleCommand(input.KeySpace)

	if s.state.Over || s.state.Paused {
		t.Error("Expected a fresh unpaused match")
	}
	if s.state.ClockTicks != 60 {
		t.Errorf("Expected clock reset to 60, got %d", s.state.ClockTicks)
	}
}

func TestSessionIdleDisconnect(t *testing.T) {
	s, _ := newTestSession(t, SessionOptions{IdleTimeout: 4 * time.Second})
	start := time.Now()
	s.lastInput = start

	s.checkIdle(start.Add(time.Second))
	if s.hud.notice != "" || !s.running {
		t.Error("Expected no warning early on")
	}

	s.checkIdle(start.Add(3500 * time.Millisecond))
	if !strings.HasPrefix(s.hud.notice, "Idle") {
		t.Errorf("Expected idle warning, got %q", s.hud.notice)
	}

	s.checkIdle(start.Add(4 * time.Second))
	if s.running {
		t.Error("Expected idle session to end")
	}
}

func TestSessionResize(t *testing.T) {
	w, h := 100, 30
	s, out := newTestSession(t, SessionOptions{
		TermSizeFunc: func() (int, int, error) { return w, h, nil },
	})
	s.lastInput = time.Now()

	w, h = 200, 60
	if err := s.frame(time.Now()); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if s.canvas.TerminalWidth() != 160 || s.canvas.TerminalHeight() != 50 {
		t.Errorf("Expected canvas clamped to 160x50, got %dx%d", s.canvas.TerminalWidth(), s.canvas.TerminalHeight())
	}
	if s.canvas.OffsetCol() != 20 || s.canvas.OffsetRow() != 4 {
		t.Errorf("Expected offset (20, 4), got (%d, %d)", s.canvas.OffsetCol(), s.canvas.OffsetRow())
	}
	if out.Len() == 0 {
		t.Error("Expected the field repainted after resize")
	}
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(bufio.NewReader(strings.NewReader("")), &out, SessionOptions{
		TermSizeFunc: fixedSize(80, 25),
		Logger:       log.New(io.Discard),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if ctx.Err() != nil {
		t.Error("Expected Run to end on closed input, not on the deadline")
	}
}

func TestRunEndsOnCancel(t *testing.T) {
	s, _ := newTestSession(t, SessionOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                       string
		termW, termH               int
		wantW, wantH, wantC, wantR int
	}{
		{"small terminal", 80, 25, 80, 24, 0, 0},
		{"large terminal", 200, 60, 160, 50, 20, 4},
		{"degenerate", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, c, r := clampTermSize(tt.termW, tt.termH)
			if w != tt.wantW || h != tt.wantH || c != tt.wantC || r != tt.wantR {
				t.Errorf("clampTermSize(%d, %d) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					tt.termW, tt.termH, w, h, c, r, tt.wantW, tt.wantH, tt.wantC, tt.wantR)
			}
		})
	}
}
