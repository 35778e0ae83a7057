package starvine

import "math"

// StarfieldPoint is a fixed background star. Only its alpha changes, blinking
// with the frame counter.
type StarfieldPoint struct {
	Pos    Vec2
	Radius float64 // [0, 1.5)
	Blink  float64 // [0, 0.05)
	Depth  float64 // [80, 130)
}

var (
	starRadius = Range{0, 1.5}
	starBlink  = Range{0, 0.05}
	starDepth  = Range{80, 130}
)

// newStarfield scatters n stars over the canvas.
func newStarfield(ctx *Context, n int) []StarfieldPoint {
	stars := make([]StarfieldPoint, n)
	for i := range stars {
		stars[i] = StarfieldPoint{
			Pos:    Vec2{ctx.Rand.Float64() * ctx.Width, ctx.Rand.Float64() * ctx.Height},
			Radius: starRadius.Sample(ctx.Rand),
			Blink:  starBlink.Sample(ctx.Rand),
			Depth:  starDepth.Sample(ctx.Rand),
		}
	}
	return stars
}

// Alpha returns the blink alpha for the given frame, in [0.1, 0.9].
func (s *StarfieldPoint) Alpha(frame int) float64 {
	return 0.5 + math.Sin(float64(frame)*s.Blink)*0.4
}

// Draw emits the star as a white dot at its parallax position.
func (s *StarfieldPoint) Draw(ctx *Context, buf *CommandBuffer) {
	off := ctx.Offset(s.Depth)
	buf.FillCircle(s.Pos.X+off.X, s.Pos.Y+off.Y, s.Radius, ColorWhite.WithAlpha(s.Alpha(ctx.Frame)), BlendNormal)
}
