package starvine

import "math"

// AuraKind colors the glow around a character sprite.
type AuraKind uint8

const (
	AuraRainbow AuraKind = iota // hue cycles with the frame counter
	AuraFire                    // flickering orange-red
)

func (k AuraKind) String() string {
	if k == AuraFire {
		return "fire"
	}
	return "rainbow"
}

// Character tuning.
const (
	characterFadeStep = 0.005
	characterMaxSize  = 250
	trailAlpha        = 0.3
	trailHueStep      = 5
	trailBlur         = 2
	glowBlur          = 8
	glowScale         = 1.15
	wobbleAmp         = 5
)

var (
	characterSize     = Range{80, 250}
	characterMaxAlpha = Range{0.4, 1}
	characterStay     = Range{200, 500}
	characterWobble   = Range{0.02, 0.07}
)

// Character is a pop-out sprite that drifts across the scene with one fixed
// movement behavior until it fades out or is clicked.
type Character struct {
	fader
	Sprite   *Sprite
	Pos      Vec2
	Vel      Vec2
	Size     float64
	Hue      float64
	Timer    int
	StayTime float64
	Trail    []Vec2 // most recent first
	TrailLen int
	Aura     AuraKind
	Depth    float64
	Wobble   float64
	Popped   bool

	move movement
}

// newCharacter creates a character using one of the ready sprites. It
// returns nil when no sprite is ready.
func newCharacter(ctx *Context, sprites []*Sprite) *Character {
	if len(sprites) == 0 {
		return nil
	}
	return newCharacterWithMovement(ctx, sprites, MovementKind(ctx.Rand.IntN(int(movementKindCount))))
}

func newCharacterWithMovement(ctx *Context, sprites []*Sprite, kind MovementKind) *Character {
	rng := ctx.Rand
	c := &Character{Sprite: sprites[rng.IntN(len(sprites))]}
	c.Size = characterSize.Sample(rng)
	c.Pos = Vec2{rng.Float64() * (ctx.Width - c.Size), rng.Float64() * (ctx.Height - c.Size)}
	c.Vel = Vec2{
		ctx.signed(1) * (rng.Float64()*4 + 1),
		ctx.signed(1) * (rng.Float64()*4 + 1),
	}
	c.Hue = rng.Float64() * 360
	c.fader = fader{State: FadeIn, MaxAlpha: characterMaxAlpha.Sample(rng)}
	c.StayTime = characterStay.Sample(rng)
	c.TrailLen = int(math.Floor(rng.Float64()*20 + 10))
	c.Trail = make([]Vec2, 0, c.TrailLen)
	c.Aura = AuraRainbow
	if rng.Float64() <= 0.5 {
		c.Aura = AuraFire
	}
	c.Depth = characterDepth(c.Size)
	c.move = newMovement(ctx, kind)
	c.Wobble = characterWobble.Sample(rng)
	return c
}

// characterDepth maps size to a depth factor: bigger sprites sit nearer.
func characterDepth(size float64) float64 {
	return 5 + (1-size/characterMaxSize)*40
}

// Movement returns the character's movement kind.
func (c *Character) Movement() MovementKind { return c.move.Kind() }

// Box returns the character's parallax-adjusted bounding box.
func (c *Character) Box(ctx *Context) Rect {
	off := ctx.Offset(c.Depth)
	return Rect{c.Pos.X + off.X, c.Pos.Y + off.Y, c.Size, c.Size}
}

// IsClicked reports whether (x, y) lies strictly inside the character's
// parallax-adjusted box.
func (c *Character) IsClicked(ctx *Context, x, y float64) bool {
	return c.Box(ctx).ContainsStrict(x, y)
}

// Pop flags the character and returns the effect that replaces it, placed at
// the character's offset position.
func (c *Character) Pop(ctx *Context) *PopEffect {
	c.Popped = true
	box := c.Box(ctx)
	kind := EffectKind(ctx.Rand.IntN(int(effectKindCount)))
	return newPopEffect(ctx, Vec2{box.X, box.Y}, kind, c.Sprite, c.Size, c.Hue)
}

// Update runs the movement behavior, records the trail, advances and wraps
// the position and steps the fade lifecycle. Popped characters and
// characters that finish fading out return Remove.
func (c *Character) Update(ctx *Context) UpdateResult {
	if c.Popped {
		return Remove
	}
	c.move.steer(ctx, c)
	c.pushTrail(c.Pos)

	c.Pos.X += c.Vel.X * ctx.Speed
	c.Pos.Y += c.Vel.Y * ctx.Speed
	c.wrap(ctx)

	switch c.State {
	case FadeIn:
		c.fadeIn(characterFadeStep)
	case FadeStay:
		c.Timer++
		if float64(c.Timer) > c.StayTime {
			c.State = FadeOut
		}
	case FadeOut:
		if c.fadeOut(characterFadeStep) {
			return Remove
		}
	}
	return Continue
}

// pushTrail inserts pos at the front of the trail, dropping the oldest entry
// once the trail is full.
func (c *Character) pushTrail(pos Vec2) {
	if c.TrailLen <= 0 {
		return
	}
	if len(c.Trail) < c.TrailLen {
		c.Trail = append(c.Trail, Vec2{})
	}
	copy(c.Trail[1:], c.Trail[:len(c.Trail)-1])
	c.Trail[0] = pos
}

// wrap moves a character that left the canvas to the opposite edge.
func (c *Character) wrap(ctx *Context) {
	if c.Pos.X < -c.Size {
		c.Pos.X = ctx.Width
	}
	if c.Pos.X > ctx.Width {
		c.Pos.X = -c.Size
	}
	if c.Pos.Y < -c.Size {
		c.Pos.Y = ctx.Height
	}
	if c.Pos.Y > ctx.Height {
		c.Pos.Y = -c.Size
	}
}

// auraHue returns the glow hue for the current frame.
func (c *Character) auraHue(ctx *Context) float64 {
	if c.Aura == AuraRainbow {
		return math.Mod(float64(ctx.Frame)*2, 360)
	}
	return 10 + ctx.Rand.Float64()*20
}

// Draw emits the trail, the aura glow and the wobbling sprite.
func (c *Character) Draw(ctx *Context, buf *CommandBuffer) {
	if c.Popped || c.Alpha <= 0 {
		return
	}
	off := ctx.Offset(c.Depth)

	n := float64(len(c.Trail))
	for i, p := range c.Trail {
		buf.DrawSprite(SpriteDraw{
			Sprite: c.Sprite,
			Dst:    Rect{p.X + off.X, p.Y + off.Y, c.Size, c.Size},
			Alpha:  (1 - float64(i)/n) * c.Alpha * trailAlpha,
			Filter: SpriteFilter{HueRotate: c.Hue + float64(i)*trailHueStep, Blur: trailBlur},
			Blend:  BlendScreen,
		})
	}

	f := float64(ctx.Frame)
	wx := math.Sin(f*c.Wobble) * wobbleAmp
	wy := math.Cos(f*c.Wobble*1.5) * wobbleAmp
	scale := 1 + math.Sin(f*0.05)*0.05
	box := Rect{c.Pos.X + off.X + wx, c.Pos.Y + off.Y + wy, c.Size, c.Size}

	buf.DrawSprite(SpriteDraw{
		Sprite: c.Sprite,
		Dst:    box,
		Scale:  scale * glowScale,
		Alpha:  c.Alpha * 0.5,
		Tint:   HSLA(c.auraHue(ctx), 1, 0.7, 1),
		Filter: SpriteFilter{Blur: glowBlur},
		Blend:  BlendScreen,
	})
	buf.DrawSprite(SpriteDraw{
		Sprite: c.Sprite,
		Dst:    box,
		Scale:  scale,
		Alpha:  c.Alpha,
		Filter: SpriteFilter{HueRotate: c.Hue},
		Blend:  BlendScreen,
	})
}

// characterPool holds the active characters, oldest first.
type characterPool struct {
	items []*Character
}

// Len returns the number of active characters.
func (cp *characterPool) Len() int { return len(cp.items) }

func (cp *characterPool) add(c *Character) { cp.items = append(cp.items, c) }

func (cp *characterPool) reset() {
	clear(cp.items)
	cp.items = cp.items[:0]
}

// maybeSpawn adds a character with probability CharacterSpawnP while the
// pool has room and at least one sprite is ready.
func (cp *characterPool) maybeSpawn(ctx *Context, sprites []*Sprite) {
	if len(sprites) == 0 || len(cp.items) >= MaxCharacters {
		return
	}
	if !ctx.chance(CharacterSpawnP) {
		return
	}
	if c := newCharacter(ctx, sprites); c != nil {
		cp.items = append(cp.items, c)
	}
}

// hit returns the most recently added live character containing (x, y).
func (cp *characterPool) hit(ctx *Context, x, y float64) *Character {
	for i := len(cp.items) - 1; i >= 0; i-- {
		c := cp.items[i]
		if !c.Popped && c.IsClicked(ctx, x, y) {
			return c
		}
	}
	return nil
}

func (cp *characterPool) update(ctx *Context, buf *CommandBuffer) {
	n := 0
	for _, c := range cp.items {
		if !c.Update(ctx).Alive() {
			continue
		}
		c.Draw(ctx, buf)
		cp.items[n] = c
		n++
	}
	clear(cp.items[n:])
	cp.items = cp.items[:n]
}
