package starvine

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Clock is the time source the scheduler reads for idle detection and
// stats. Tests substitute a ManualClock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// maxPendingFrames bounds how many ticks of commands may accumulate without
// a Draw. Older frames are dropped.
const maxPendingFrames = 2

// defaultTickSeconds is the settings-tween step used by Tick.
const defaultTickSeconds float32 = 1.0 / 60

var (
	veilColor = Color{5.0 / 255, 5.0 / 255, 5.0 / 255, TrailAlpha}

	glowRadius = Range{200, 700}
)

const glowAlpha = 0.004

// Update polls input and advances the scene one tick. It is the
// ebiten.Game.Update half of the scene.
func (s *Scene) Update() error {
	s.router.poll()
	s.tick(1 / float32(ebiten.TPS()))
	return nil
}

// Tick advances the simulation by exactly one frame without polling any
// input device: it applies queued resets, replays injected and scripted
// input, eases settings, moves the pointer, then updates every pool and
// emits its draw commands in compositing order.
func (s *Scene) Tick() {
	s.tick(defaultTickSeconds)
}

func (s *Scene) tick(dt float32) {
	t0 := time.Now()
	ctx := s.ctx

	if s.pendingReset {
		s.Reset(s.pendingW, s.pendingH)
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()
	s.pollAssets()

	s.settings.update(ctx, dt)
	ctx.smoothPointer()
	ctx.modulate()

	buf := s.buf
	if buf.frames >= maxPendingFrames {
		buf.Reset()
	}
	buf.beginFrame(ctx.Frame)

	buf.SetLayer(LayerVeil)
	buf.FillRect(0, 0, ctx.Width, ctx.Height, veilColor, BlendNormal)

	buf.SetLayer(LayerStars)
	for i := range s.stars {
		s.stars[i].Draw(ctx, buf)
	}

	buf.SetLayer(LayerCosmic)
	for _, o := range s.cosmic {
		o.Update(ctx)
		o.Draw(ctx, buf)
	}

	c := ctx.Center()
	buf.SetTransform(rotationAbout(ctx.GlobalRotation, c.X, c.Y))

	buf.SetLayer(LayerParticles)
	s.particles.update(ctx)
	s.particles.draw(ctx, buf)

	buf.SetLayer(LayerCharacters)
	before := s.characters.Len()
	s.characters.maybeSpawn(ctx, s.sprites)
	if s.characters.Len() > before {
		nc := s.characters.items[len(s.characters.items)-1]
		s.emit(SceneEvent{
			Type: EventSpawn, Frame: ctx.Frame, X: nc.Pos.X, Y: nc.Pos.Y,
			Movement: nc.Movement(), Sprite: spriteName(nc.Sprite),
		})
	}
	s.characters.update(ctx, buf)

	buf.SetLayer(LayerRipples)
	s.ripples.update(ctx, buf)

	buf.SetLayer(LayerEffects)
	s.effects.update(ctx, buf)

	if ctx.Frame%GlowInterval == 0 {
		buf.SetLayer(LayerGlow)
		s.drawGlow()
	}

	if s.Idle() {
		ctx.Target = ctx.idleDrift()
	}
	ctx.Frame++

	s.stats.UpdateTime = time.Since(t0)
}

// drawGlow washes a faint hue-cycling radial gradient over a random spot.
func (s *Scene) drawGlow() {
	ctx := s.ctx
	x := ctx.Rand.Float64() * ctx.Width
	y := ctx.Rand.Float64() * ctx.Height
	r := glowRadius.Sample(ctx.Rand)
	hue := float64(ctx.Frame) * 0.04
	g := TwoStopGradient(Vec2{x, y}, r, HSLA(hue, 1, 0.5, 1), ColorTransparent)
	pts := [4]Vec2{{x - r, y - r}, {x + r, y - r}, {x + r, y + r}, {x - r, y + r}}
	s.buf.GradientPolygon(pts[:], g, glowAlpha, BlendScreen)
}

// pollAssets moves newly decoded sprites onto the ready list.
func (s *Scene) pollAssets() {
	if s.assets == nil {
		return
	}
	if s.assets.Poll() == 0 {
		return
	}
	ready := s.assets.Ready()
	s.sprites = append(s.sprites, ready[s.loadedCount:]...)
	s.loadedCount = len(ready)
}
