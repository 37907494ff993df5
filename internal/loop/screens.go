package loop

import (
	"fmt"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/object"
)

// centerDash is the on/off pattern of the center divider.
var centerDash = []float64{10, 10}

var (
	fontTitle  = draw.Font{Size: 48, Bold: true}
	fontBanner = draw.Font{Size: 16, Bold: true}
	fontHint   = draw.Font{Size: 20}
)

// Render paints the state onto surf. It only reads the state, so it can be
// called at any time, including while paused.
func Render(s *State, surf draw.Surface) {
	w := float64(s.Field.Width)
	h := float64(s.Field.Height)
	ctx := object.DrawContext{Surface: surf}

	surf.Clear(colorBackground)
	surf.Line(w/2, 0, w/2, h, colorDivider, centerDash)

	for _, obj := range s.Objects() {
		obj.Draw(ctx)
	}

	if s.BannerTicks > 0 {
		drawBanner(s, ctx)
	}
	if s.Timed() {
		drawClock(s, ctx)
	}

	switch {
	case s.Over:
		drawGameOver(s, ctx)
	case s.Paused:
		drawPaused(s, ctx)
	}
}

// drawPaused overlays the pause title and resume hint on the scene.
func drawPaused(s *State, ctx object.DrawContext) {
	cx := float64(s.Field.CenterX)
	cy := float64(s.Field.CenterY)

	object.Text{X: cx, Y: cy, Value: "PAUSED", Font: fontTitle, Align: draw.AlignCenter, Color: colorOverlay}.Draw(ctx)
	object.Text{X: cx, Y: cy + 40, Value: "Press SPACE to resume", Font: fontHint, Align: draw.AlignCenter, Color: colorOverlay}.Draw(ctx)
}

// drawBanner shows who scored last.
func drawBanner(s *State, ctx object.DrawContext) {
	object.Text{
		X:     float64(s.Field.CenterX),
		Y:     float64(s.Field.Height) / 4,
		Value: s.Banner,
		Font:  fontBanner,
		Align: draw.AlignCenter,
		Color: colorOverlay,
	}.Draw(ctx)
}

// drawClock shows the time left in the match.
func drawClock(s *State, ctx object.DrawContext) {
	object.Text{
		X:     float64(s.Field.CenterX),
		Y:     float64(s.Field.Height) - 20,
		Value: ClockText(s.ClockTicks),
		Font:  fontHint,
		Align: draw.AlignCenter,
		Color: colorClock,
	}.Draw(ctx)
}

// drawGameOver announces the winner and final score.
func drawGameOver(s *State, ctx object.DrawContext) {
	cx := float64(s.Field.CenterX)
	cy := float64(s.Field.CenterY)

	lines := []string{
		"GAME OVER!",
		Winner(s),
		fmt.Sprintf("Final Score: %d - %d", s.Player1.Score, s.Player2.Score),
		"Press SPACE to Restart",
	}
	for i, line := range lines {
		font := fontHint
		if i == 0 {
			font = fontTitle
		}
		object.Text{
			X:     cx,
			Y:     cy - 60 + float64(i)*40,
			Value: line,
			Font:  font,
			Align: draw.AlignCenter,
			Color: colorOverlay,
		}.Draw(ctx)
	}
}

// Winner describes the match result.
func Winner(s *State) string {
	switch {
	case s.Player1.Score > s.Player2.Score:
		return "Player 1 Wins!"
	case s.Player2.Score > s.Player1.Score:
		return "Player 2 Wins!"
	default:
		return "It's a Tie!"
	}
}

// ClockText formats remaining ticks as "Time: m:ss", rounding up to whole seconds.
func ClockText(ticks int) string {
	secs := (ticks + config.TargetFPS - 1) / config.TargetFPS
	return fmt.Sprintf("Time: %d:%02d", secs/60, secs%60)
}
