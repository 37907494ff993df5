// Package config centralizes all tunable game parameters.
package config

import "time"

// Field dimensions - the fixed logical playing area.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 800
	FieldHeight = 500
)

// Paddles
const (
	PaddleWidth  = 10
	PaddleHeight = 100
	PaddleSpeed  = 6  // Units per tick
	PaddleInset  = 20 // Distance between a paddle and its side wall
)

// Ball
const (
	BallRadius = 10
	BallSpeed  = 4 // Base speed per axis, units per tick

	// SpinFactor scales the normalized hit offset into vertical velocity.
	// A hit at an edge yields |dy| = SpinFactor/2.
	SpinFactor = 8
)

// Scoring
const (
	ScoreBannerTicks = 180 // ~3 seconds at 60 FPS
)

// Rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	// Max render area in terminal cells. Larger terminals get a centered field.
	MaxTermWidth  = 160
	MaxTermHeight = 50

	// Rows reserved below the field for the status line.
	StatusRows = 1
)

// Input
const (
	// KeyHoldDuration is how long a key counts as held after its last repeat.
	// Terminals only report presses, so releases are inferred from silence.
	KeyHoldDuration = 120 * time.Millisecond

	// CommandHoldDuration applies to edge-triggered command keys (pause, restart).
	// It outlasts common autorepeat delays (~500 ms) so a long press fires once.
	CommandHoldDuration = 600 * time.Millisecond
)

// Inactivity (SSH sessions). The warning shows for the last quarter.
const (
	InactivityDisconnectUser = 120 * time.Second
)
