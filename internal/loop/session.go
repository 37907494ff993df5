package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/loop/config"
)

// SessionOptions configures a terminal session.
type SessionOptions struct {
	TermSizeFunc draw.TermSizeFunc
	// ColorProfile is what the terminal can display; the zero value is true color.
	ColorProfile termenv.Profile
	// MatchTicks limits the match length; 0 plays forever.
	MatchTicks int
	// IdleTimeout disconnects a session without key presses; 0 disables it.
	IdleTimeout time.Duration
	Logger      *log.Logger
}

// Session hosts one game on one terminal: it reads keys, runs frames on a
// fixed-rate ticker and presents the canvas plus the status line.
// Input handling and frames share one goroutine.
type Session struct {
	loop    *Loop
	state   *State
	keys    *input.State
	tracker *input.Tracker
	sched   *FrameScheduler
	hud     *HUD

	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	drawBorder   bool // Border must be drawn on the next present

	idleTimeout time.Duration
	lastInput   time.Time
	running     bool
	logger      *log.Logger
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts SessionOptions) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	keys := input.NewState()
	state := NewState(Options{MatchTicks: opts.MatchTicks})
	sched := &FrameScheduler{}
	hud := NewHUD()

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight, opts.ColorProfile)
	canvas.SetOffset(offsetCol, offsetRow)

	tracker := input.NewTracker(keys, config.KeyHoldDuration)
	tracker.SetHold(input.KeySpace, config.CommandHoldDuration)
	tracker.SetHold(input.KeyR, config.CommandHoldDuration)

	loop := NewLoop(state, keys, canvas, LoopOptions{
		Scheduler: sched,
		Score:     hud,
		Controls:  hud,
	})

	return &Session{
		loop:         loop,
		state:        state,
		keys:         keys,
		tracker:      tracker,
		sched:        sched,
		hud:          hud,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		drawBorder:   true,
		idleTimeout:  opts.IdleTimeout,
		running:      true,
		logger:       logger,
	}
}

// Loop returns the game loop driven by the session.
func (s *Session) Loop() *Loop {
	return s.loop
}

// Run starts the session loop. Blocks until the player quits, the input
// ends, the idle timeout passes or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	s.lastInput = time.Now()
	s.loop.Render()

	ticker := time.NewTicker(config.TargetFrameTime)
	defer ticker.Stop()

	for s.running {
		select {
		case <-ctx.Done():
			s.logger.Debug("session cancelled")
			s.running = false
			continue
		case now := <-ticker.C:
			if err := s.frame(now); err != nil {
				return err
			}
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

// frame handles input, runs the pending game frame and presents the result.
func (s *Session) frame(now time.Time) error {
	s.processInput(now)
	if !s.running {
		return nil
	}
	s.checkIdle(now)
	s.updateScreen()
	s.sched.RunPending()
	if err := s.present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// processInput feeds keys to the key state and runs edge-triggered commands.
func (s *Session) processInput(now time.Time) {
	keys := input.ReadKeys(s.inputStream)
	if s.inputStream.Closed() {
		s.logger.Debug("input closed")
		s.running = false
		return
	}
	if len(keys) > 0 {
		s.lastInput = now
	}

	for _, key := range s.tracker.Apply(keys, now) {
		s.handleCommand(key)
	}
}

// handleCommand maps a fresh key press to a control command.
func (s *Session) handleCommand(key string) {
	switch key {
	case input.KeyQ, input.KeyCtrlC:
		s.running = false
	case input.KeyEnter:
		if !s.state.Running {
			s.logger.Info("match started")
		}
		s.loop.Start()
	case input.KeyR:
		s.logger.Info("match restarted", "score1", s.state.Player1.Score, "score2", s.state.Player2.Score)
		s.tracker.Reset()
		s.loop.Restart()
	case input.KeySpace:
		switch {
		case s.state.Over:
			s.logger.Info("match restarted after game over")
			s.tracker.Reset()
			s.loop.Restart()
		case s.state.Running:
			s.loop.TogglePause()
			s.logger.Debug("pause toggled", "paused", s.state.Paused)
		}
	}
}

// checkIdle warns and then disconnects a session nobody is typing in.
func (s *Session) checkIdle(now time.Time) {
	if s.idleTimeout <= 0 {
		return
	}
	idle := now.Sub(s.lastInput)
	switch {
	case idle >= s.idleTimeout:
		s.logger.Info("disconnecting idle session", "idle", idle.Round(time.Second))
		s.running = false
	case idle >= s.idleTimeout*3/4:
		left := (s.idleTimeout - idle).Round(time.Second)
		s.hud.SetNotice(fmt.Sprintf("Idle - disconnecting in %v, press any key", left))
	default:
		s.hud.SetNotice("")
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal and repaints the field at the new scale.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth == s.canvas.TerminalWidth() && renderHeight == s.canvas.TerminalHeight() &&
		offsetCol == s.canvas.OffsetCol() && offsetRow == s.canvas.OffsetRow() {
		return
	}

	s.logger.Debug("terminal resized", "width", termWidth, "height", termHeight)
	draw.ClearScreen(s.writer)
	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.canvas.ForceRedraw()
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
	s.hud.Invalidate()
	s.drawBorder = true

	// The loop may be dormant (paused or not started); repaint explicitly
	s.loop.Render()
}

// present writes changed canvas cells and the status line.
func (s *Session) present() error {
	if err := s.canvas.Render(s.chunkWriter); err != nil {
		return err
	}
	if s.drawBorder {
		if err := s.canvas.RenderBorder(s.chunkWriter); err != nil {
			return err
		}
		s.drawBorder = false
	}
	s.hud.Draw(s.chunkWriter, s.statusRow(), s.canvas.TerminalWidth())
	return s.chunkWriter.Flush()
}

// statusRow is the canvas-relative row of the status line: directly under the
// field, or under the bottom border when one is drawn.
func (s *Session) statusRow() int {
	row := s.canvas.TerminalHeight() + 1
	if s.canvas.OffsetRow() >= 1 {
		row++
	}
	return row
}

// clampTermSize clamps terminal dimensions to the max render resolution, reserves
// the status rows, and computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight-config.StatusRows, config.MaxTermHeight)
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-config.StatusRows-renderHeight)/2, 0)
	return
}
