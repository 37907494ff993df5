package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/object"
)

// Colors for the scene.
var (
	colorBackground = draw.Hex("#1a1a2e")
	colorDivider    = draw.Hex("#444444")
	colorPlayer1    = draw.Hex("#00ff00")
	colorPlayer2    = draw.Hex("#ff0000")
	colorBall       = draw.Hex("#ffff00")
	colorOverlay    = draw.Hex("#e6e6e6")
	colorClock      = draw.Hex("#ffff00")
)

// State holds everything on the field plus the run/pause flags.
// It is created once and reset in place; paddles and ball are never recreated.
type State struct {
	Player1 *object.Paddle // Left, W/S
	Player2 *object.Paddle // Right, arrow keys
	Ball    *object.Ball
	Field   object.Screen

	Running bool // Set by the start command; never cleared
	Paused  bool
	Over    bool // Match clock ran out

	Banner      string // Shown while BannerTicks > 0
	BannerTicks int

	MatchTicks int // Match length in ticks, 0 for an untimed game
	ClockTicks int // Ticks left in the match

	rng *rand.Rand
}

// Options configures a new State.
type Options struct {
	// MatchTicks limits the match length; 0 plays forever.
	MatchTicks int
	// Rand drives serve directions. Defaults to a time-seeded source.
	Rand *rand.Rand
}

// NewState creates the initial field: paddles centered on their sides,
// ball at the center moving (BallSpeed, BallSpeed).
func NewState(opts Options) *State {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	field := object.NewScreen(config.FieldWidth, config.FieldHeight)

	return &State{
		Player1: object.NewPaddle(config.PaddleInset, field,
			input.KeyW, input.KeyS, colorPlayer1),
		Player2: object.NewPaddle(float64(field.Width-config.PaddleInset-config.PaddleWidth), field,
			input.KeyArrowUp, input.KeyArrowDown, colorPlayer2),
		Ball:       object.NewBall(field, colorBall),
		Field:      field,
		MatchTicks: opts.MatchTicks,
		ClockTicks: opts.MatchTicks,
		rng:        rng,
	}
}

// Objects returns the entities in update and draw order.
func (s *State) Objects() []object.Object {
	return []object.Object{s.Player1, s.Player2, s.Ball}
}

// ResetPositions recenters both paddles and serves the ball.
func (s *State) ResetPositions() {
	s.Player1.Reset(s.Field)
	s.Player2.Reset(s.Field)
	s.Ball.Serve(s.Field, s.rng)
}

// ResetMatch zeroes the scores, restarts the clock and resets positions.
// Running is left untouched.
func (s *State) ResetMatch() {
	s.Player1.Score = 0
	s.Player2.Score = 0
	s.Paused = false
	s.Over = false
	s.Banner = ""
	s.BannerTicks = 0
	s.ClockTicks = s.MatchTicks
	s.ResetPositions()
}

// Timed reports whether the match has a clock.
func (s *State) Timed() bool {
	return s.MatchTicks > 0
}
