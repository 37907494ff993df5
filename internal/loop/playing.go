package loop

import (
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/object"
)

// Step advances the state by one tick: paddles first, then the ball,
// then collisions and scoring. Score changes are reported to sink.
func Step(s *State, in *input.State, sink ScoreSink) {
	ctx := object.UpdateContext{
		Input: in,
		Field: s.Field,
	}

	for _, obj := range s.Objects() {
		obj.Update(ctx)
	}

	if s.BannerTicks > 0 {
		s.BannerTicks--
	}

	checkPaddleCollisions(s)
	checkScoring(s, sink)

	if s.Timed() && s.ClockTicks > 0 {
		s.ClockTicks--
		if s.ClockTicks == 0 {
			s.Over = true
		}
	}
}
