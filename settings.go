package starvine

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Settings is the live configuration surface read by every frame tick.
// Values are clamped to [MinMultiplier, MaxMultiplier].
type Settings struct {
	Density float64
	Speed   float64
}

// DefaultSettings returns the multipliers a new scene starts with.
func DefaultSettings() Settings {
	return Settings{Density: DefaultDensity, Speed: DefaultSpeed}
}

// clamped returns s with both multipliers clamped.
func (s Settings) clamped() Settings {
	return Settings{Density: ClampMultiplier(s.Density), Speed: ClampMultiplier(s.Speed)}
}

// SettingsEase is how long keyboard and wheel changes take to settle, in seconds.
const SettingsEase float32 = 0.25

// settingsTween eases the context multipliers toward a target. There is no
// tween while the multipliers are at rest.
type settingsTween struct {
	target  Settings
	density *gween.Tween
	speed   *gween.Tween
}

// retarget starts easing from the current context values toward s. A zero
// duration applies s immediately.
func (t *settingsTween) retarget(ctx *Context, s Settings, duration float32, fn ease.TweenFunc) {
	s = s.clamped()
	t.target = s
	if duration <= 0 {
		t.density, t.speed = nil, nil
		ctx.SetDensity(s.Density)
		ctx.SetSpeed(s.Speed)
		return
	}
	if fn == nil {
		fn = ease.OutQuad
	}
	t.density = gween.New(float32(ctx.Density), float32(s.Density), duration, fn)
	t.speed = gween.New(float32(ctx.Speed), float32(s.Speed), duration, fn)
}

// update advances the tweens by dt seconds and writes the eased values into
// ctx. The exact target is written on the final step.
func (t *settingsTween) update(ctx *Context, dt float32) {
	if t.density != nil {
		v, done := t.density.Update(dt)
		ctx.SetDensity(float64(v))
		if done {
			ctx.SetDensity(t.target.Density)
			t.density = nil
		}
	}
	if t.speed != nil {
		v, done := t.speed.Update(dt)
		ctx.SetSpeed(float64(v))
		if done {
			ctx.SetSpeed(t.target.Speed)
			t.speed = nil
		}
	}
}

// active reports whether a transition is still running.
func (t *settingsTween) active() bool {
	return t.density != nil || t.speed != nil
}
