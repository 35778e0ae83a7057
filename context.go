package starvine

import (
	"math"
	"math/rand/v2"
	"time"
)

// Scene-wide tuning constants.
const (
	MaxParticles     = 300  // particle cap at densityMultiplier 1
	MaxCharacters    = 5    // concurrent pop-out characters
	StarCount        = 200  // starfield points created per reset
	CosmicCount      = 3    // background nebulae/galaxies
	FlowIntensity    = 0.005
	TrailAlpha       = 0.05 // per-frame veil opacity that produces motion trails
	PointerSmoothing = 0.05 // live pointer approach rate toward the target
	CharacterSpawnP  = 0.003
	GlowInterval     = 20 // frames between ambient glow washes

	MinMultiplier = 0.0
	MaxMultiplier = 1.5

	DefaultDensity = 0.6
	DefaultSpeed   = 0.6
)

// IdleDriftAfter is how long the pointer may stay untouched before the
// target starts drifting on its own.
const IdleDriftAfter = 3 * time.Second

// Context is the simulation state shared by every pool for one frame: the
// canvas size, the live and target pointer, the frame counter and the global
// modulation signals. Only the frame tick writes to it.
type Context struct {
	Width, Height float64

	Frame   int
	Pointer Vec2 // live, smoothed pointer position
	Target  Vec2 // where the pointer is heading

	Density float64 // densityMultiplier in [MinMultiplier, MaxMultiplier]
	Speed   float64 // speedMultiplier in [MinMultiplier, MaxMultiplier]

	DensityCycle   float64 // slow oscillation in [0.2, 1.0]
	FlowRotation   float64
	GlobalRotation float64

	Rand *rand.Rand
}

// NewContext creates a context for a canvas of the given size with the
// pointer resting at the center.
func NewContext(width, height float64, rng *rand.Rand) *Context {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5ca1ab1e))
	}
	c := &Context{
		Width:        width,
		Height:       height,
		Density:      DefaultDensity,
		Speed:        DefaultSpeed,
		DensityCycle: 1,
		Rand:         rng,
	}
	c.Pointer = c.Center()
	c.Target = c.Center()
	return c
}

// Center returns the canvas center.
func (c *Context) Center() Vec2 {
	return Vec2{c.Width / 2, c.Height / 2}
}

// Offset returns the parallax offset for an entity with the given depth
// factor under the current live pointer.
func (c *Context) Offset(depth float64) Vec2 {
	return Parallax(c.Pointer, c.Center(), depth)
}

// Parallax converts a pointer position into a screen offset for an entity
// with the given depth factor: (pointer - center) / depth. Larger factors
// move less and read as farther away. Depth must be positive.
func Parallax(pointer, center Vec2, depth float64) Vec2 {
	return Vec2{(pointer.X - center.X) / depth, (pointer.Y - center.Y) / depth}
}

// SetDensity clamps and stores the density multiplier.
func (c *Context) SetDensity(v float64) {
	c.Density = ClampMultiplier(v)
}

// SetSpeed clamps and stores the speed multiplier.
func (c *Context) SetSpeed(v float64) {
	c.Speed = ClampMultiplier(v)
}

// ClampMultiplier restricts a density or speed multiplier to the supported
// range. NaN maps to the minimum.
func ClampMultiplier(v float64) float64 {
	if math.IsNaN(v) {
		return MinMultiplier
	}
	return clamp(v, MinMultiplier, MaxMultiplier)
}

// ParticleCap returns the hard particle cap, ceil(MaxParticles * Density).
func (c *Context) ParticleCap() int {
	return int(math.Ceil(MaxParticles * c.Density))
}

// ParticleSoftCap returns the density-cycle modulated cap for the current frame.
func (c *Context) ParticleSoftCap() float64 {
	return MaxParticles * c.Density * c.DensityCycle
}

// modulate advances the global signals derived from the frame counter.
func (c *Context) modulate() {
	f := float64(c.Frame)
	c.DensityCycle = math.Sin(f*0.005)*0.4 + 0.6
	c.FlowRotation += 0.001 * math.Sin(f*0.002)
	c.GlobalRotation = math.Sin(f*0.0005) * 0.02
}

// smoothPointer moves the live pointer a fixed fraction toward the target.
func (c *Context) smoothPointer() {
	c.Pointer.X += (c.Target.X - c.Pointer.X) * PointerSmoothing
	c.Pointer.Y += (c.Target.Y - c.Pointer.Y) * PointerSmoothing
}

// idleDrift returns the drift target used when input has gone quiet.
func (c *Context) idleDrift() Vec2 {
	f := float64(c.Frame)
	return Vec2{
		c.Width/2 + math.Sin(f*0.005)*(c.Width*0.1),
		c.Height/2 + math.Cos(f*0.007)*(c.Height*0.1),
	}
}

// chance reports true with probability p.
func (c *Context) chance(p float64) bool {
	return c.Rand.Float64() < p
}

// signed returns a value in [-k/2, k/2).
func (c *Context) signed(k float64) float64 {
	return (c.Rand.Float64() - 0.5) * k
}
