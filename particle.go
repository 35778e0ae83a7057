package starvine

import "math"

// ParticleKind selects how a flow particle is drawn.
type ParticleKind uint8

const (
	ParticleVine   ParticleKind = iota // line segment from previous to current position
	ParticleStar                       // flickering dot
	ParticleNebula                     // soft radial puff
)

func (k ParticleKind) String() string {
	switch k {
	case ParticleVine:
		return "vine"
	case ParticleStar:
		return "star"
	case ParticleNebula:
		return "nebula"
	}
	return "unknown"
}

// VineHue is the base hue of vine particles outside the rainbow phase.
const VineHue = 120

var (
	particleSpeed     = Range{1, 3}
	particleMaxLife   = Range{100, 300}
	particleThickness = Range{0.5, 3.5}
	particleDepth     = Range{50, 80}
)

// Particle is a flow-field driven vine, sparkle or puff.
type Particle struct {
	Pos       Vec2
	Prev      Vec2
	Speed     float64
	Angle     float64
	Life      float64
	MaxLife   float64
	Kind      ParticleKind
	Hue       float64
	Thickness float64
	Depth     float64
}

func newParticle(ctx *Context) Particle {
	var p Particle
	p.reset(ctx)
	return p
}

// reset re-randomizes the particle at a new random position with zero age.
func (p *Particle) reset(ctx *Context) {
	p.Pos = Vec2{ctx.Rand.Float64() * ctx.Width, ctx.Rand.Float64() * ctx.Height}
	p.Prev = p.Pos
	p.Speed = particleSpeed.Sample(ctx.Rand)
	p.Angle = ctx.Rand.Float64() * 2 * math.Pi
	p.Life = 0
	p.MaxLife = particleMaxLife.Sample(ctx.Rand)
	p.Hue = ctx.Rand.Float64() * 360
	p.Thickness = particleThickness.Sample(ctx.Rand)
	r := ctx.Rand.Float64()
	switch {
	case r > 0.95:
		p.Kind = ParticleNebula
	case r > 0.8:
		p.Kind = ParticleStar
	default:
		p.Kind = ParticleVine
	}
	p.Depth = particleDepth.Sample(ctx.Rand)
}

// flowAngle returns the angle perturbation of the flow field at pos.
func flowAngle(ctx *Context, pos Vec2) float64 {
	s, c := math.Sincos(ctx.FlowRotation)
	nx := (pos.X*c - pos.Y*s) * FlowIntensity
	ny := (pos.X*s + pos.Y*c) * FlowIntensity
	phase := float64(ctx.Frame) * 0.01
	n1 := math.Sin(nx+phase) * math.Cos(ny)
	n2 := math.Cos(nx) * math.Sin(ny+phase)
	return (n1 + n2) * 0.1
}

// Update steers the particle through the flow field and ages it. When it
// expires or leaves the canvas it is removed if crowded is set, otherwise it
// re-initializes in place.
func (p *Particle) Update(ctx *Context, crowded bool) UpdateResult {
	p.Prev = p.Pos
	p.Angle += flowAngle(ctx, p.Pos) * ctx.Speed
	s, c := math.Sincos(p.Angle)
	p.Pos.X += c * p.Speed * ctx.Speed
	p.Pos.Y += s * p.Speed * ctx.Speed
	p.Life++

	if p.Life > p.MaxLife || p.Pos.X < 0 || p.Pos.X > ctx.Width || p.Pos.Y < 0 || p.Pos.Y > ctx.Height {
		if crowded {
			return Remove
		}
		p.reset(ctx)
		return Recycle
	}
	return Continue
}

// Alpha returns sin(π·life/maxLife), peaking halfway through the life.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, math.Sin(p.Life/p.MaxLife*math.Pi))
}

// vineHue returns the vine stroke hue: a rainbow sweep while the global
// oscillation is high, otherwise green with a little jitter.
func (p *Particle) vineHue(ctx *Context) float64 {
	f := float64(ctx.Frame)
	if math.Sin(f*0.02)*0.5+0.5 > 0.7 {
		return math.Mod(p.Hue+f*0.5, 360)
	}
	return VineHue + ctx.signed(20)
}

// Draw emits the particle at its parallax position.
func (p *Particle) Draw(ctx *Context, buf *CommandBuffer) {
	a := p.Alpha()
	if a <= 0 {
		return
	}
	off := ctx.Offset(p.Depth)
	x, y := p.Pos.X+off.X, p.Pos.Y+off.Y

	switch p.Kind {
	case ParticleStar:
		buf.FillCircle(x, y, ctx.Rand.Float64()*2, HSLA(p.Hue, 0.5, 0.9, a*0.8), BlendNormal)
	case ParticleNebula:
		buf.GradientCircle(TwoStopGradient(Vec2{x, y}, 10*a, HSLA(p.Hue, 1, 0.7, 0.3), ColorTransparent), 1, BlendNormal)
	default:
		buf.StrokeLine(p.Prev.X+off.X, p.Prev.Y+off.Y, x, y, p.Thickness, HSLA(p.vineHue(ctx), 0.8, 0.6, a*0.4), BlendNormal)
	}
}

// particlePool holds the flow particles.
type particlePool struct {
	items []Particle
}

// fill resets the pool to n fresh particles.
func (pp *particlePool) fill(ctx *Context, n int) {
	pp.items = pp.items[:0]
	for i := 0; i < n; i++ {
		pp.items = append(pp.items, newParticle(ctx))
	}
}

// Len returns the number of live particles.
func (pp *particlePool) Len() int { return len(pp.items) }

// update spawns at most one particle while under the soft cap, then sweeps
// the pool, compacting in place. Expired particles are removed while the
// pool is crowded. Afterwards the pool is truncated to the hard cap so it
// never exceeds ceil(MaxParticles * density).
func (pp *particlePool) update(ctx *Context) {
	soft := ctx.ParticleSoftCap()
	if float64(len(pp.items)) < soft {
		pp.items = append(pp.items, newParticle(ctx))
	}

	crowded := float64(len(pp.items)) > soft
	n := 0
	for i := range pp.items {
		if pp.items[i].Update(ctx, crowded).Alive() {
			pp.items[n] = pp.items[i]
			n++
		}
	}
	pp.items = pp.items[:n]

	if hard := ctx.ParticleCap(); len(pp.items) > hard {
		pp.items = pp.items[:hard]
	}
}

func (pp *particlePool) draw(ctx *Context, buf *CommandBuffer) {
	for i := range pp.items {
		pp.items[i].Draw(ctx, buf)
	}
}
