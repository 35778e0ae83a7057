package starvine

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrTiltDenied is returned when the platform refuses orientation access.
var ErrTiltDenied = errors.New("starvine: tilt permission denied")

// TiltSource reports device orientation in degrees: beta is the front/back
// angle (45 when held upright) and gamma the left/right angle.
type TiltSource interface {
	Tilt() (beta, gamma float64, ok bool)
}

// PermissionRequester is implemented by tilt sources that must ask before
// they can be read.
type PermissionRequester interface {
	RequestTiltPermission() error
}

// EnableTilt wires src into the router, asking for permission first when src
// requires it. On refusal the error is logged and returned, tilt stays
// unwired and pointer input keeps working.
func (r *InputRouter) EnableTilt(src TiltSource) error {
	if src == nil {
		return nil
	}
	if pr, ok := src.(PermissionRequester); ok {
		if err := pr.RequestTiltPermission(); err != nil {
			logger.Warn("tilt disabled", "err", err)
			return err
		}
	}
	r.tiltSrc = src
	r.hasTilt = false
	return nil
}

// gamepadDeadZone is the stick deflection ignored as noise.
const gamepadDeadZone = 0.15

// GamepadTilt emulates device tilt with the left stick of the first
// connected gamepad. Full deflection maps to ±MaxAngle degrees.
type GamepadTilt struct {
	MaxAngle float64 // zero means 45
	ids      []ebiten.GamepadID
}

// Tilt reads the left stick. It reports ok only while the stick is deflected
// so a resting gamepad does not hold the pointer target.
func (g *GamepadTilt) Tilt() (beta, gamma float64, ok bool) {
	g.ids = ebiten.AppendGamepadIDs(g.ids[:0])
	if len(g.ids) == 0 {
		return 0, 0, false
	}
	id := g.ids[0]
	var h, v float64
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		h = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		v = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	} else if ebiten.GamepadAxisCount(id) >= 2 {
		h = ebiten.GamepadAxisValue(id, 0)
		v = ebiten.GamepadAxisValue(id, 1)
	}
	return stickTilt(h, v, g.MaxAngle)
}

// stickTilt maps stick axes in [-1, 1] to orientation angles.
func stickTilt(h, v, maxAngle float64) (beta, gamma float64, ok bool) {
	if math.Abs(h) < gamepadDeadZone && math.Abs(v) < gamepadDeadZone {
		return 0, 0, false
	}
	if maxAngle == 0 {
		maxAngle = 45
	}
	return 45 + v*maxAngle, h * maxAngle, true
}
