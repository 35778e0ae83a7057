package starvine

import "testing"

func TestNewCharacterNeedsSprites(t *testing.T) {
	ctx := testContext()
	if c := newCharacter(ctx, nil); c != nil {
		t.Errorf("newCharacter(nil sprites) = %+v, want nil", c)
	}
}

func TestNewCharacterRanges(t *testing.T) {
	ctx := testContext()
	sprites := testSprites(3)
	for i := 0; i < 300; i++ {
		c := newCharacter(ctx, sprites)
		if !characterSize.Contains(c.Size) || !characterMaxAlpha.Contains(c.MaxAlpha) ||
			!characterStay.Contains(c.StayTime) || !characterWobble.Contains(c.Wobble) {
			t.Fatalf("out of range: %+v", c)
		}
		if c.TrailLen < 10 || c.TrailLen > 29 {
			t.Fatalf("trail length %d", c.TrailLen)
		}
		assertNear(t, "depth", c.Depth, 5+(1-c.Size/250)*40)
		if c.Depth <= 0 {
			t.Fatalf("depth %v", c.Depth)
		}
		if c.State != FadeIn || c.Alpha != 0 || c.Popped {
			t.Fatalf("fresh character: %+v", c)
		}
	}
}

func TestCharacterDepthOrdering(t *testing.T) {
	if !(characterDepth(250) < characterDepth(80)) {
		t.Error("bigger characters should sit nearer (smaller depth)")
	}
	assertNear(t, "depth(250)", characterDepth(250), 5)
}

func TestCharacterIsClickedStrict(t *testing.T) {
	ctx := testContext()
	sprites := testSprites(1)
	for _, depth := range []float64{5, 12.5, 27, 45} {
		c := newCharacterWithMovement(ctx, sprites, MoveLinear)
		c.Pos = Vec2{100, 100}
		c.Size = 100
		c.Depth = depth
		ctx.Pointer = Vec2{ctx.Width/2 + 90, ctx.Height/2 - 45}
		box := c.Box(ctx)

		tests := []struct {
			name string
			x, y float64
			want bool
		}{
			{"inside", box.X + 50, box.Y + 50, true},
			{"left edge", box.X, box.Y + 50, false},
			{"right edge", box.X + 100, box.Y + 50, false},
			{"top edge", box.X + 50, box.Y, false},
			{"bottom edge", box.X + 50, box.Y + 100, false},
			{"just inside corner", box.X + 0.001, box.Y + 0.001, true},
			{"raw position ignores parallax", 100 + 0.5, 100 + 0.5, box.X < 100.5 && box.Y < 100.5},
		}
		for _, tt := range tests {
			if got := c.IsClicked(ctx, tt.x, tt.y); got != tt.want {
				t.Errorf("depth %v %s: IsClicked(%v,%v) = %v, want %v", depth, tt.name, tt.x, tt.y, got, tt.want)
			}
		}
	}
}

func TestCharacterPop(t *testing.T) {
	ctx := testContext()
	c := newCharacterWithMovement(ctx, testSprites(1), MoveLinear)
	c.Pos = Vec2{200, 150}
	e := c.Pop(ctx)
	if !c.Popped {
		t.Error("Pop should flag the character")
	}
	box := c.Box(ctx)
	if e.Pos != (Vec2{box.X, box.Y}) {
		t.Errorf("effect at %v, want offset position %v", e.Pos, Vec2{box.X, box.Y})
	}
	if e.Sprite != c.Sprite || e.Size != c.Size || e.Hue != c.Hue {
		t.Errorf("effect = %+v", e)
	}
	if got := c.Update(ctx); got != Remove {
		t.Errorf("popped Update = %v, want remove", got)
	}
}

func TestCharacterFadeLifecycle(t *testing.T) {
	ctx := testContext()
	ctx.SetSpeed(0)
	c := newCharacterWithMovement(ctx, testSprites(1), MoveLinear)
	c.MaxAlpha = 0.498
	c.StayTime = 10

	var prev float64
	frames := 0
	for c.State == FadeIn {
		c.Update(ctx)
		if c.Alpha < prev || c.Alpha > c.MaxAlpha {
			t.Fatalf("alpha %v after %v", c.Alpha, prev)
		}
		prev = c.Alpha
		frames++
	}
	if frames != 100 {
		t.Errorf("fade-in took %d frames, want 100", frames)
	}
	for c.State == FadeStay {
		c.Update(ctx)
	}
	if c.Timer != 11 {
		t.Errorf("stay timer = %d, want 11", c.Timer)
	}
	var got UpdateResult
	for got = Continue; got == Continue; {
		got = c.Update(ctx)
		if c.Alpha < 0 {
			t.Fatalf("negative alpha")
		}
	}
	if got != Remove || c.Alpha != 0 {
		t.Errorf("fade-out ended with %v alpha %v", got, c.Alpha)
	}
}

func TestCharacterTrailBounded(t *testing.T) {
	ctx := testContext()
	c := newCharacterWithMovement(ctx, testSprites(1), MoveWander)
	for i := 0; i < 200; i++ {
		before := c.Pos
		c.Update(ctx)
		if len(c.Trail) > c.TrailLen {
			t.Fatalf("trail %d exceeds %d", len(c.Trail), c.TrailLen)
		}
		if c.Trail[0] != before {
			t.Fatalf("trail head %v, want pre-move position %v", c.Trail[0], before)
		}
	}
	if len(c.Trail) != c.TrailLen {
		t.Errorf("trail %d, want full %d", len(c.Trail), c.TrailLen)
	}
}

func TestCharacterWrap(t *testing.T) {
	ctx := testContext()
	c := newCharacterWithMovement(ctx, testSprites(1), MoveLinear)
	c.Size = 100
	tests := []struct {
		pos, want Vec2
	}{
		{Vec2{-101, 50}, Vec2{800, 50}},
		{Vec2{801, 50}, Vec2{-100, 50}},
		{Vec2{50, -101}, Vec2{50, 600}},
		{Vec2{50, 601}, Vec2{50, -100}},
		{Vec2{-100, 50}, Vec2{-100, 50}},
	}
	for _, tt := range tests {
		c.Pos = tt.pos
		c.wrap(ctx)
		if c.Pos != tt.want {
			t.Errorf("wrap(%v) = %v, want %v", tt.pos, c.Pos, tt.want)
		}
	}
}

func TestCharacterDraw(t *testing.T) {
	ctx := testContext()
	c := newCharacterWithMovement(ctx, testSprites(1), MoveLinear)
	c.Alpha = 0.8
	for i := 0; i < 5; i++ {
		c.pushTrail(Vec2{float64(i), 0})
	}
	buf := newCommandBuffer()
	c.Draw(ctx, buf)
	// trail + glow + sprite
	if buf.Len() != 5+2 {
		t.Fatalf("commands = %d, want 7", buf.Len())
	}
	glow := buf.Commands()[5]
	if glow.Filter.Blur != glowBlur {
		t.Errorf("glow blur = %d", glow.Filter.Blur)
	}
	main := buf.Commands()[6]
	assertNear(t, "sprite alpha", main.Color.A, 0.8)
}

func TestCharacterPool(t *testing.T) {
	ctx := testContext()
	sprites := testSprites(2)
	var pool characterPool

	pool.maybeSpawn(ctx, nil)
	for i := 0; i < 100000 && pool.Len() < MaxCharacters; i++ {
		pool.maybeSpawn(ctx, sprites)
	}
	if pool.Len() != MaxCharacters {
		t.Fatalf("pool = %d, want %d", pool.Len(), MaxCharacters)
	}
	for i := 0; i < 10000; i++ {
		pool.maybeSpawn(ctx, sprites)
	}
	if pool.Len() > MaxCharacters {
		t.Fatalf("pool = %d exceeds %d", pool.Len(), MaxCharacters)
	}
}

func TestCharacterPoolHitTopmost(t *testing.T) {
	ctx := testContext()
	sprites := testSprites(1)
	var pool characterPool
	a := newCharacterWithMovement(ctx, sprites, MoveLinear)
	b := newCharacterWithMovement(ctx, sprites, MoveLinear)
	for _, c := range []*Character{a, b} {
		c.Pos = Vec2{100, 100}
		c.Size = 100
		c.Depth = 20
		pool.add(c)
	}
	box := b.Box(ctx)
	if got := pool.hit(ctx, box.X+10, box.Y+10); got != b {
		t.Fatal("hit should return the most recently added character")
	}
	b.Popped = true
	if got := pool.hit(ctx, box.X+10, box.Y+10); got != a {
		t.Fatal("popped characters are skipped")
	}
	if got := pool.hit(ctx, 0, 0); got != nil {
		t.Error("miss should return nil")
	}
}

func TestAuraHue(t *testing.T) {
	ctx := testContext()
	c := &Character{Aura: AuraRainbow}
	ctx.Frame = 200
	assertNear(t, "rainbow", c.auraHue(ctx), 40)
	c.Aura = AuraFire
	for i := 0; i < 100; i++ {
		if h := c.auraHue(ctx); h < 10 || h >= 30 {
			t.Fatalf("fire hue %v", h)
		}
	}
}
