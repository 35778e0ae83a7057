package starvine

import "math"

// EffectKind selects the animation a popped character turns into.
type EffectKind uint8

const (
	EffectExplode EffectKind = iota
	EffectDissolve
	EffectBeam
	EffectWave
	effectKindCount
)

func (k EffectKind) String() string {
	switch k {
	case EffectExplode:
		return "explode"
	case EffectDissolve:
		return "dissolve"
	case EffectBeam:
		return "beam"
	case EffectWave:
		return "wave"
	}
	return "unknown"
}

// Pop effect tuning.
const (
	EffectDecay    = 0.02
	ExplodeSparks  = 30
	sparkSpread    = 15
	sparkDrag      = 0.96
	sparkHueSpread = 60
	beamBarWidth   = 4
)

var sparkSize = Range{2, 7}

// spark is one explode sub-particle.
type spark struct {
	Pos  Vec2
	Vel  Vec2
	Size float64
	Hue  float64
}

// PopEffect is the one-shot animation left behind by a popped character.
// Only explode effects carry sparks.
type PopEffect struct {
	Pos    Vec2 // top-left of the sprite box
	Kind   EffectKind
	Sprite *Sprite
	Size   float64
	Hue    float64
	Life   float64
	Sparks []spark
}

func newPopEffect(ctx *Context, pos Vec2, kind EffectKind, sprite *Sprite, size, hue float64) *PopEffect {
	e := &PopEffect{Pos: pos, Kind: kind, Sprite: sprite, Size: size, Hue: hue, Life: 1}
	if kind == EffectExplode {
		e.Sparks = make([]spark, ExplodeSparks)
		center := Vec2{pos.X + size/2, pos.Y + size/2}
		for i := range e.Sparks {
			e.Sparks[i] = spark{
				Pos:  center,
				Vel:  Vec2{ctx.signed(sparkSpread), ctx.signed(sparkSpread)},
				Size: sparkSize.Sample(ctx.Rand),
				Hue:  hue + ctx.signed(sparkHueSpread),
			}
		}
	}
	return e
}

// Update decays the effect and moves its sparks, returning Remove once life
// reaches zero.
func (e *PopEffect) Update() UpdateResult {
	e.Life -= EffectDecay
	for i := range e.Sparks {
		s := &e.Sparks[i]
		s.Pos = s.Pos.Add(s.Vel)
		s.Vel = s.Vel.Scale(sparkDrag)
	}
	if e.Life <= 0 {
		return Remove
	}
	return Continue
}

// Draw emits the effect, screen-blended at alpha = life.
func (e *PopEffect) Draw(ctx *Context, buf *CommandBuffer) {
	if e.Life <= 0 {
		return
	}
	box := Rect{e.Pos.X, e.Pos.Y, e.Size, e.Size}
	switch e.Kind {
	case EffectExplode:
		for _, s := range e.Sparks {
			buf.FillCircle(s.Pos.X, s.Pos.Y, s.Size, HSLA(s.Hue, 1, 0.7, e.Life), BlendScreen)
		}
	case EffectDissolve:
		j := (1 - e.Life) * 20
		box.X += ctx.signed(j)
		box.Y += ctx.signed(j)
		buf.DrawSprite(SpriteDraw{
			Sprite: e.Sprite, Dst: box, Alpha: e.Life, Blend: BlendScreen,
			Filter: SpriteFilter{HueRotate: e.Hue, Contrast: 1.5},
		})
	case EffectBeam:
		box.Height = e.Size * e.Life
		buf.DrawSprite(SpriteDraw{
			Sprite: e.Sprite, Dst: box, Alpha: e.Life, Blend: BlendScreen,
			Filter: SpriteFilter{HueRotate: e.Hue, Brightness: 2},
		})
		buf.FillRect(e.Pos.X+e.Size/2-beamBarWidth/2, 0, beamBarWidth, ctx.Height, ColorWhite.WithAlpha(e.Life*0.8), BlendScreen)
	case EffectWave:
		box.X += waveOffset(e.Life)
		buf.DrawSprite(SpriteDraw{
			Sprite: e.Sprite, Dst: box, Alpha: e.Life, Blend: BlendScreen,
			Filter: SpriteFilter{HueRotate: e.Hue},
		})
	}
}

// waveOffset is the horizontal sway of a wave effect at the given life.
func waveOffset(life float64) float64 {
	return math.Sin(life*20) * 30
}

// effectPool holds active pop effects.
type effectPool struct {
	items []*PopEffect
}

func (ep *effectPool) add(e *PopEffect) { ep.items = append(ep.items, e) }

// Len returns the number of active effects.
func (ep *effectPool) Len() int { return len(ep.items) }

func (ep *effectPool) reset() {
	clear(ep.items)
	ep.items = ep.items[:0]
}

func (ep *effectPool) update(ctx *Context, buf *CommandBuffer) {
	n := 0
	for _, e := range ep.items {
		if !e.Update().Alive() {
			continue
		}
		e.Draw(ctx, buf)
		ep.items[n] = e
		n++
	}
	clear(ep.items[n:])
	ep.items = ep.items[:n]
}
