package starvine

import "math"

// CosmicKind selects how a CosmicObject is drawn.
type CosmicKind uint8

const (
	CosmicNebula CosmicKind = iota
	CosmicGalaxy
)

func (k CosmicKind) String() string {
	if k == CosmicGalaxy {
		return "galaxy"
	}
	return "nebula"
}

// Cosmic object tuning.
const (
	cosmicFadeStep  = 0.0005
	cosmicOutChance = 0.001
	galaxyArms      = 5
	nebulaStep      = 0.2
)

var (
	cosmicSize     = Range{200, 600}
	cosmicMaxAlpha = Range{0.05, 0.15}
	cosmicDepth    = Range{10, 25}
)

// CosmicObject is a large, slowly spinning background nebula or galaxy. The
// pool keeps a fixed population; objects re-randomize in place when they
// fade out.
type CosmicObject struct {
	fader
	Kind     CosmicKind
	Pos      Vec2
	Size     float64
	Hue      float64
	Rotation float64
	Spin     float64
	Depth    float64
}

func newCosmicObject(ctx *Context) *CosmicObject {
	o := &CosmicObject{}
	o.reset(ctx)
	return o
}

// reset re-randomizes every attribute and restarts the fade-in.
func (o *CosmicObject) reset(ctx *Context) {
	o.Kind = CosmicNebula
	if ctx.Rand.Float64() > 0.7 {
		o.Kind = CosmicGalaxy
	}
	o.Pos = Vec2{ctx.Rand.Float64() * ctx.Width, ctx.Rand.Float64() * ctx.Height}
	o.Size = cosmicSize.Sample(ctx.Rand)
	o.Hue = ctx.Rand.Float64() * 360
	o.fader = fader{State: FadeIn, MaxAlpha: cosmicMaxAlpha.Sample(ctx.Rand)}
	o.Rotation = ctx.Rand.Float64() * 2 * math.Pi
	o.Spin = ctx.signed(0.002)
	o.Depth = cosmicDepth.Sample(ctx.Rand)
}

// Update advances the fade lifecycle and rotation. It returns Recycle on the
// frame the object fades out and re-initializes itself.
func (o *CosmicObject) Update(ctx *Context) UpdateResult {
	res := Continue
	switch o.State {
	case FadeIn:
		o.fadeIn(cosmicFadeStep)
	case FadeStay:
		if ctx.chance(cosmicOutChance) {
			o.State = FadeOut
		}
	case FadeOut:
		if o.fadeOut(cosmicFadeStep * ctx.Speed) {
			o.reset(ctx)
			res = Recycle
		}
	}
	o.Rotation += o.Spin * ctx.Speed
	return res
}

// Draw emits the object at its parallax position, screen-blended at its alpha.
func (o *CosmicObject) Draw(ctx *Context, buf *CommandBuffer) {
	if o.Alpha <= 0 {
		return
	}
	off := ctx.Offset(o.Depth)
	cx, cy := o.Pos.X+off.X, o.Pos.Y+off.Y

	if o.Kind == CosmicNebula {
		o.drawNebula(ctx, buf, cx, cy)
		return
	}
	o.drawGalaxy(buf, cx, cy)
}

func (o *CosmicObject) drawNebula(ctx *Context, buf *CommandBuffer, cx, cy float64) {
	phase := float64(ctx.Frame) * 0.01
	var scratch [32]Vec2
	pts := appendPolarOutline(scratch[:0], 0, 0, nebulaStep, func(a float64) float64 {
		return o.Size * (0.8 + math.Sin(a*3+phase)*0.2)
	})
	rotatePoints(pts, o.Rotation, cx, cy)
	buf.GradientPolygon(pts, Gradient{
		Center: Vec2{cx, cy},
		Radius: o.Size,
		Inner:  HSLA(o.Hue, 0.8, 0.5, 0.8),
		Middle: HSLA(o.Hue+40, 0.6, 0.3, 0.3),
		Outer:  ColorTransparent,
		Mid:    0.5,
	}, o.Alpha, BlendScreen)
}

func (o *CosmicObject) drawGalaxy(buf *CommandBuffer, cx, cy float64) {
	armColor := HSLA(o.Hue, 1, 0.7, 0.6)
	var scratch [48]Vec2
	for i := 1; i <= galaxyArms; i++ {
		rot := o.Rotation + float64(i)*2*math.Pi/galaxyArms
		s, c := math.Sincos(rot)
		ax, ay := cx+c*o.Size*0.3, cy+s*o.Size*0.3
		pts := appendEllipse(scratch[:0], ax, ay, o.Size*0.4, o.Size*0.1, rot, len(scratch))
		buf.GradientPolygon(pts, TwoStopGradient(Vec2{ax, ay}, o.Size*0.6, armColor, ColorTransparent), o.Alpha, BlendScreen)
	}
	buf.GradientCircle(TwoStopGradient(Vec2{cx, cy}, o.Size*0.2, ColorWhite, ColorTransparent), o.Alpha, BlendScreen)
}

// rotatePoints rotates local points by theta and translates them to (cx, cy).
func rotatePoints(pts []Vec2, theta, cx, cy float64) {
	s, c := math.Sincos(theta)
	for i, p := range pts {
		pts[i] = Vec2{cx + p.X*c - p.Y*s, cy + p.X*s + p.Y*c}
	}
}
