package starvine

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/time/rate"
)

// SettingsStep is how far one key press or wheel notch moves a multiplier.
const SettingsStep = 0.1

// PointerSource reports a pointer position in canvas pixels from outside
// Ebitengine, such as the X11 root window cursor in wallpaper mode.
type PointerSource interface {
	Pointer() (x, y float64, ok bool)
}

// InputRouter normalizes mouse, touch, tilt and external pointer input into
// scene calls. Pointer motion snaps the scene pointer, tilt steers its
// target, primary presses are routed through Scene.Click and the reset key
// queues a reinitialization.
type InputRouter struct {
	scene *Scene

	touchIDs   []ebiten.TouchID
	justTouch  []ebiten.TouchID
	lastX      float64
	lastY      float64
	hasPointer bool

	pointerSrc PointerSource
	tiltSrc    TiltSource
	lastBeta   float64
	lastGamma  float64
	hasTilt    bool

	wheelLimiter *rate.Limiter
}

func newInputRouter(s *Scene) *InputRouter {
	return &InputRouter{
		scene:        s,
		wheelLimiter: rate.NewLimiter(rate.Every(125*time.Millisecond), 1),
	}
}

// SetPointerSource adds an external pointer source polled every tick.
func (r *InputRouter) SetPointerSource(src PointerSource) {
	r.pointerSrc = src
}

// poll reads every input device once and forwards changes to the scene.
// Called from Scene.Update.
func (r *InputRouter) poll() {
	r.processKeys()
	r.processWheel()
	r.processMouse()
	r.processTouches()
	r.processExternal()
	r.processTilt()
}

// processKeys handles the reset key and the multiplier controls.
func (r *InputRouter) processKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		r.scene.RequestReset()
	}
	var dd, ds float64
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		dd += SettingsStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		dd -= SettingsStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		ds += SettingsStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		ds -= SettingsStep
	}
	r.nudge(dd, ds)
}

// processWheel maps wheel notches to density, throttled to one step per
// 125ms so trackpads do not race to the limit.
func (r *InputRouter) processWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 || !r.wheelLimiter.Allow() {
		return
	}
	if wy > 0 {
		r.nudge(SettingsStep, 0)
	} else {
		r.nudge(-SettingsStep, 0)
	}
}

// nudge eases the multipliers by the given deltas. Deltas accumulate on the
// pending target while a transition is still running.
func (r *InputRouter) nudge(dDensity, dSpeed float64) {
	if dDensity == 0 && dSpeed == 0 {
		return
	}
	s := r.scene
	base := s.Settings()
	if s.settings.active() {
		base = s.settings.target
	}
	next := Settings{Density: base.Density + dDensity, Speed: base.Speed + dSpeed}.clamped()
	s.SetSettings(next)
	logger.Debug("settings", "density", next.Density, "speed", next.Speed)
}

// processMouse snaps the pointer when the cursor moves and routes left
// presses.
func (r *InputRouter) processMouse() {
	mx, my := ebiten.CursorPosition()
	r.move(float64(mx), float64(my))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		r.scene.Click(float64(mx), float64(my))
	}
}

// processTouches follows the first active touch and routes every new touch
// as a press.
func (r *InputRouter) processTouches() {
	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	if len(r.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(r.touchIDs[0])
		r.move(float64(tx), float64(ty))
	}
	r.justTouch = inpututil.AppendJustPressedTouchIDs(r.justTouch[:0])
	for _, id := range r.justTouch {
		tx, ty := ebiten.TouchPosition(id)
		r.scene.Click(float64(tx), float64(ty))
	}
}

func (r *InputRouter) processExternal() {
	if r.pointerSrc == nil {
		return
	}
	if x, y, ok := r.pointerSrc.Pointer(); ok {
		r.move(x, y)
	}
}

func (r *InputRouter) processTilt() {
	if r.tiltSrc == nil {
		return
	}
	beta, gamma, ok := r.tiltSrc.Tilt()
	if !ok {
		return
	}
	if r.hasTilt && beta == r.lastBeta && gamma == r.lastGamma {
		return
	}
	r.lastBeta, r.lastGamma, r.hasTilt = beta, gamma, true
	r.scene.Tilt(beta, gamma)
}

// move forwards a pointer position only when it differs from the last one,
// so a resting cursor lets the scene go idle.
func (r *InputRouter) move(x, y float64) {
	if r.hasPointer && x == r.lastX && y == r.lastY {
		return
	}
	r.lastX, r.lastY, r.hasPointer = x, y, true
	r.scene.PointerMove(x, y)
}
