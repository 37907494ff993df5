package loop

import (
	"fmt"
	"math"

	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/object"
)

// checkPaddleCollisions sends the ball back from whichever paddle its leading edge touches.
// Only the edge facing the paddle is tested, so a ball faster than a paddle is
// wide can pass through it.
func checkPaddleCollisions(s *State) {
	b := s.Ball

	if s.Player1.Spans(b.LeftEdge(), b.Y) {
		b.DX = math.Abs(b.DX)
		b.DY = spin(s.Player1, b)
	}

	if s.Player2.Spans(b.RightEdge(), b.Y) {
		b.DX = -math.Abs(b.DX)
		b.DY = spin(s.Player2, b)
	}
}

// spin derives the new vertical velocity from where the ball met the paddle.
// The incoming vertical velocity is discarded.
func spin(p *object.Paddle, b *object.Ball) float64 {
	return (p.HitOffset(b.Y) - 0.5) * config.SpinFactor
}

// checkScoring awards a point when the ball reaches a side wall.
func checkScoring(s *State, sink ScoreSink) {
	if s.Ball.LeftEdge() <= 0 {
		s.Player2.Score++
		scored(s, "Player 2", sink)
	}

	if s.Ball.RightEdge() >= float64(s.Field.Width) {
		s.Player1.Score++
		scored(s, "Player 1", sink)
	}
}

// scored publishes the new score, raises the banner and serves again.
func scored(s *State, who string, sink ScoreSink) {
	sink.ScoreChanged(s.Player1.Score, s.Player2.Score)

	s.Banner = fmt.Sprintf("%s Scored!  %d - %d", who, s.Player1.Score, s.Player2.Score)
	s.BannerTicks = config.ScoreBannerTicks

	s.ResetPositions()
}
