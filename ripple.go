package starvine

import "math"

// Ripple tuning. Growth and decay ignore the speed multiplier.
const (
	RippleGrowth = 5
	RippleDecay  = 0.012
	rippleStep   = 0.1
)

// RippleHues is the palette ripple hues are drawn from.
var RippleHues = [...]float64{300, 280, 190, 100}

var (
	rippleMaxRadius = Range{100, 300}
	rippleJitter    = Range{0, 20}
)

// Ripple is the shockwave left by a click that missed every character. It is
// drawn at raw screen coordinates without parallax.
type Ripple struct {
	Center    Vec2
	Radius    float64
	MaxRadius float64
	Life      float64
	Hue       float64
	Jitter    float64
}

func newRipple(ctx *Context, x, y float64) Ripple {
	return Ripple{
		Center:    Vec2{x, y},
		MaxRadius: rippleMaxRadius.Sample(ctx.Rand),
		Life:      1,
		Hue:       RippleHues[ctx.Rand.IntN(len(RippleHues))],
		Jitter:    rippleJitter.Sample(ctx.Rand),
	}
}

// Update grows the ring and decays its life, returning Remove once life
// reaches zero.
func (r *Ripple) Update() UpdateResult {
	r.Radius += RippleGrowth
	r.Life -= RippleDecay
	if r.Life <= 0 {
		return Remove
	}
	return Continue
}

// Draw emits a jittered outer ring and a clean inner ring at 70% radius.
func (r *Ripple) Draw(ctx *Context, buf *CommandBuffer) {
	if r.Life <= 0 {
		return
	}
	phase := float64(ctx.Frame) * 0.1
	var scratch [64]Vec2
	pts := appendPolarOutline(scratch[:0], r.Center.X, r.Center.Y, rippleStep, func(a float64) float64 {
		return r.Radius + math.Sin(a*5+phase)*r.Jitter
	})
	buf.StrokePolyline(pts, true, 3, HSLA(r.Hue, 1, 0.7, r.Life), BlendNormal)
	buf.StrokeCircle(r.Center.X, r.Center.Y, r.Radius*0.7, 1, HSLA(r.Hue, 1, 0.8, r.Life*0.5), BlendNormal)
}

// ripplePool holds active ripples in creation order.
type ripplePool struct {
	items []Ripple
}

func (rp *ripplePool) add(r Ripple) { rp.items = append(rp.items, r) }

// Len returns the number of active ripples.
func (rp *ripplePool) Len() int { return len(rp.items) }

func (rp *ripplePool) reset() { rp.items = rp.items[:0] }

// update advances every ripple, drawing the survivors.
func (rp *ripplePool) update(ctx *Context, buf *CommandBuffer) {
	n := 0
	for i := range rp.items {
		r := &rp.items[i]
		if !r.Update().Alive() {
			continue
		}
		r.Draw(ctx, buf)
		rp.items[n] = *r
		n++
	}
	rp.items = rp.items[:n]
}
