package starvine

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, scene events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event SceneEvent)
}

// EventType identifies a scene event.
type EventType uint8

const (
	EventRipple EventType = iota // a click missed every character
	EventPop                     // a click popped a character
	EventSpawn                   // a character appeared
	EventReset                   // the scene was reinitialized
)

func (t EventType) String() string {
	switch t {
	case EventRipple:
		return "ripple"
	case EventPop:
		return "pop"
	case EventSpawn:
		return "spawn"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// SceneEvent carries scene activity for the ECS bridge.
type SceneEvent struct {
	Type  EventType
	Frame int
	X, Y  float64
	// Pop and spawn fields.
	Movement MovementKind
	Sprite   string
	// Pop only.
	Effect EffectKind
}

// Scene owns the simulation context, every entity pool, the render buffers
// and the input state for one animated background.
type Scene struct {
	ctx *Context

	stars      []StarfieldPoint
	cosmic     []*CosmicObject
	particles  particlePool
	characters characterPool
	ripples    ripplePool
	effects    effectPool

	assets      *AssetLoader
	loadedCount int       // loader sprites already copied into sprites
	sprites     []*Sprite // ready list, append-only

	buf    *CommandBuffer
	sub    *submitter
	canvas *ebiten.Image

	clock     Clock
	lastInput time.Time
	started   time.Time
	settings  settingsTween

	pendingReset bool
	pendingW     float64
	pendingH     float64

	router *InputRouter
	store  EntityStore
	debug  bool

	stats        FrameStats
	statsLimiter *rate.Limiter

	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// NewScene creates a scene for a canvas of the given size and populates
// every pool. A nil rng seeds one from the current time.
func NewScene(width, height float64, rng *rand.Rand) *Scene {
	s := &Scene{
		ctx:           NewContext(width, height, rng),
		buf:           newCommandBuffer(),
		sub:           newSubmitter(),
		clock:         systemClock{},
		statsLimiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		ScreenshotDir: "screenshots",
	}
	s.router = newInputRouter(s)
	s.started = s.clock.Now()
	s.lastInput = s.started
	s.populate()
	return s
}

// Context returns the scene's simulation context. Tests use it to pin
// pointer, frame and multipliers.
func (s *Scene) Context() *Context { return s.ctx }

// Input returns the scene's input router.
func (s *Scene) Input() *InputRouter { return s.router }

// SetClock replaces the time source used for idle detection and stats.
func (s *Scene) SetClock(c Clock) {
	if c == nil {
		c = systemClock{}
	}
	s.clock = c
	s.started = c.Now()
	s.lastInput = s.started
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled the package
// logger drops to debug level and per-frame stats are logged once a second.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	setVerbose(enabled)
}

// SetAssetLoader attaches a loader whose sprites become available to the
// character spawner as they finish decoding.
func (s *Scene) SetAssetLoader(l *AssetLoader) {
	s.assets = l
	s.loadedCount = 0
}

// AddSprite appends a ready sprite directly, bypassing the loader.
func (s *Scene) AddSprite(sp *Sprite) {
	if sp != nil {
		s.sprites = append(s.sprites, sp)
	}
}

// Sprites returns the ready sprites. The returned slice MUST NOT be mutated.
func (s *Scene) Sprites() []*Sprite { return s.sprites }

// Settings returns the current multipliers.
func (s *Scene) Settings() Settings {
	return Settings{Density: s.ctx.Density, Speed: s.ctx.Speed}
}

// SetSettings eases the multipliers toward v over SettingsEase seconds.
func (s *Scene) SetSettings(v Settings) {
	s.settings.retarget(s.ctx, v, SettingsEase, nil)
}

// ApplySettings sets the multipliers immediately.
func (s *Scene) ApplySettings(v Settings) {
	s.settings.retarget(s.ctx, v, 0, nil)
}

// populate discards and recreates every pool for the current canvas size.
func (s *Scene) populate() {
	ctx := s.ctx
	s.stars = newStarfield(ctx, StarCount)
	clear(s.cosmic)
	s.cosmic = s.cosmic[:0]
	for i := 0; i < CosmicCount; i++ {
		s.cosmic = append(s.cosmic, newCosmicObject(ctx))
	}
	s.particles.fill(ctx, MaxParticles/2)
	s.characters.reset()
	s.ripples.reset()
	s.effects.reset()
}

// Reset reinitializes the scene for a canvas of the given size. Every pool
// is rebuilt, pending draw commands are dropped and the trail canvas is
// cleared. Call it between ticks; input handlers use RequestReset instead.
func (s *Scene) Reset(width, height float64) {
	ctx := s.ctx
	if width > 0 && height > 0 {
		ctx.Width, ctx.Height = width, height
	}
	s.populate()
	s.buf.Reset()
	if s.canvas != nil {
		b := s.canvas.Bounds()
		if b.Dx() != int(ctx.Width) || b.Dy() != int(ctx.Height) {
			s.canvas.Deallocate()
			s.canvas = nil
		} else {
			s.canvas.Clear()
		}
	}
	s.pendingReset = false
	logger.Debug("scene reset", "width", ctx.Width, "height", ctx.Height)
	s.emit(SceneEvent{Type: EventReset, Frame: ctx.Frame})
}

// RequestReset queues a reinitialization for the start of the next tick.
func (s *Scene) RequestReset() {
	s.RequestResize(0, 0)
}

// RequestResize queues a reinitialization at a new canvas size. Zero
// dimensions keep the current size.
func (s *Scene) RequestResize(width, height float64) {
	s.pendingReset = true
	s.pendingW, s.pendingH = width, height
}

// Click routes a primary press at screen coordinates (x, y). The most
// recently added live character under the point pops; if there is none a
// ripple starts at (x, y). It reports whether a character popped.
func (s *Scene) Click(x, y float64) bool {
	ctx := s.ctx
	if c := s.characters.hit(ctx, x, y); c != nil {
		e := c.Pop(ctx)
		s.effects.add(e)
		logger.Debug("character popped", "movement", c.Movement(), "effect", e.Kind)
		s.emit(SceneEvent{
			Type: EventPop, Frame: ctx.Frame, X: e.Pos.X, Y: e.Pos.Y,
			Movement: c.Movement(), Sprite: spriteName(c.Sprite), Effect: e.Kind,
		})
		return true
	}
	s.ripples.add(newRipple(ctx, x, y))
	s.emit(SceneEvent{Type: EventRipple, Frame: ctx.Frame, X: x, Y: y})
	return false
}

// PointerMove snaps both the live and target pointer to (x, y) and marks
// input activity.
func (s *Scene) PointerMove(x, y float64) {
	s.ctx.Pointer = Vec2{x, y}
	s.ctx.Target = Vec2{x, y}
	s.lastInput = s.clock.Now()
}

// Tilt steers the target pointer from device orientation angles in degrees:
// gamma is left/right, beta is front/back with 45° as the resting angle.
func (s *Scene) Tilt(beta, gamma float64) {
	s.ctx.Target = TiltTarget(s.ctx.Center(), beta, gamma)
	s.lastInput = s.clock.Now()
}

// TiltTarget maps orientation angles to a target position around center.
func TiltTarget(center Vec2, beta, gamma float64) Vec2 {
	return Vec2{
		center.X + gamma/45*300,
		center.Y + (beta-45)/45*300,
	}
}

// Idle reports whether no input has arrived for longer than IdleDriftAfter.
func (s *Scene) Idle() bool {
	return s.clock.Now().Sub(s.lastInput) > IdleDriftAfter
}

// Counts returns the current pool sizes.
func (s *Scene) Counts() PoolCounts {
	return PoolCounts{
		Stars:      len(s.stars),
		Cosmic:     len(s.cosmic),
		Particles:  s.particles.Len(),
		Characters: s.characters.Len(),
		Ripples:    s.ripples.Len(),
		Effects:    s.effects.Len(),
	}
}

// Characters returns the active characters, oldest first. The returned
// slice MUST NOT be mutated.
func (s *Scene) Characters() []*Character { return s.characters.items }

// Draw sorts the pending commands, composites them onto the persistent trail
// canvas and copies the canvas to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	ctx := s.ctx
	w, h := max(int(ctx.Width), 1), max(int(ctx.Height), 1)
	if s.canvas == nil {
		s.canvas = ebiten.NewImage(w, h)
	}

	t0 := time.Now()
	s.buf.sort()
	s.stats.SortTime = time.Since(t0)
	s.stats.Commands = s.buf.Len()

	t0 = time.Now()
	s.stats.DrawCalls = s.sub.submit(s.canvas, s.buf.Commands())
	s.stats.SubmitTime = time.Since(t0)
	s.buf.Reset()

	screen.DrawImage(s.canvas, nil)
	s.flushScreenshots(screen)
	s.debugLog()
}

// Dispose releases GPU resources held by the scene.
func (s *Scene) Dispose() {
	s.sub.dispose()
	if s.canvas != nil {
		s.canvas.Deallocate()
		s.canvas = nil
	}
}

func (s *Scene) emit(e SceneEvent) {
	if s.store != nil {
		s.store.EmitEvent(e)
	}
}

func spriteName(sp *Sprite) string {
	if sp == nil {
		return ""
	}
	return sp.Name
}
