package starvine

import "testing"

func TestRippleRemovedAfter84Updates(t *testing.T) {
	ctx := testContext()
	r := newRipple(ctx, 10, 20)
	for i := 1; i <= 83; i++ {
		if got := r.Update(); got != Continue {
			t.Fatalf("update %d: %v, want continue (life %v)", i, got, r.Life)
		}
	}
	if got := r.Update(); got != Remove {
		t.Fatalf("update 84: %v, want remove (life %v)", got, r.Life)
	}
	assertNear(t, "radius", r.Radius, 84*RippleGrowth)
}

func TestRippleIgnoresSpeed(t *testing.T) {
	ctx := testContext()
	ctx.SetSpeed(0)
	var pool ripplePool
	pool.add(newRipple(ctx, 0, 0))
	pool.update(ctx, newCommandBuffer())
	assertNear(t, "radius", pool.items[0].Radius, RippleGrowth)
}

func TestNewRipple(t *testing.T) {
	ctx := testContext()
	for i := 0; i < 200; i++ {
		r := newRipple(ctx, 5, 6)
		if r.Center != (Vec2{5, 6}) || r.Life != 1 || r.Radius != 0 {
			t.Fatalf("ripple = %+v", r)
		}
		if !rippleMaxRadius.Contains(r.MaxRadius) || !rippleJitter.Contains(r.Jitter) {
			t.Fatalf("ranges: %+v", r)
		}
		found := false
		for _, h := range RippleHues {
			found = found || h == r.Hue
		}
		if !found {
			t.Fatalf("hue %v not in palette", r.Hue)
		}
	}
}

func TestRipplePoolSweep(t *testing.T) {
	ctx := testContext()
	var pool ripplePool
	buf := newCommandBuffer()
	pool.add(newRipple(ctx, 0, 0))
	for i := 0; i < 40; i++ {
		pool.update(ctx, buf)
	}
	pool.add(newRipple(ctx, 1, 1))
	for i := 0; i < 44; i++ {
		pool.update(ctx, buf)
	}
	if pool.Len() != 1 || pool.items[0].Center != (Vec2{1, 1}) {
		t.Fatalf("pool = %+v, want only the second ripple", pool.items)
	}
	for i := 0; i < 40; i++ {
		pool.update(ctx, buf)
	}
	if pool.Len() != 0 {
		t.Errorf("pool = %d, want empty", pool.Len())
	}
}

func TestRippleDrawsTwoRings(t *testing.T) {
	ctx := testContext()
	buf := newCommandBuffer()
	r := newRipple(ctx, 100, 100)
	r.Update()
	r.Draw(ctx, buf)
	if buf.Len() != 2 {
		t.Fatalf("commands = %d, want 2", buf.Len())
	}
	for _, cmd := range buf.Commands() {
		if cmd.Type != CommandStroke || !cmd.Closed {
			t.Errorf("command = %+v, want closed stroke", cmd.Type)
		}
	}
}
