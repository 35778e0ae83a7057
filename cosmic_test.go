package starvine

import "testing"

func TestCosmicLifecycle(t *testing.T) {
	ctx := testContext()
	ctx.SetSpeed(1)
	o := newCosmicObject(ctx)
	if o.State != FadeIn || o.Alpha != 0 {
		t.Fatalf("new object state = %v alpha = %v", o.State, o.Alpha)
	}

	prev := 0.0
	for i := 0; o.State == FadeIn; i++ {
		if i > 1000 {
			t.Fatal("fade-in never finished")
		}
		o.Update(ctx)
		if o.Alpha < prev || o.Alpha > o.MaxAlpha {
			t.Fatalf("alpha %v after %v (max %v)", o.Alpha, prev, o.MaxAlpha)
		}
		prev = o.Alpha
	}
	assertNear(t, "alpha at stay", o.Alpha, o.MaxAlpha)

	o.State = FadeOut
	var got UpdateResult
	for i := 0; i < 1000; i++ {
		if got = o.Update(ctx); got != Continue {
			break
		}
		if o.Alpha < 0 {
			t.Fatalf("negative alpha %v", o.Alpha)
		}
	}
	if got != Recycle {
		t.Fatalf("fade-out ended with %v, want recycle", got)
	}
	if o.State != FadeIn || o.Alpha != 0 {
		t.Errorf("recycled object state = %v alpha = %v", o.State, o.Alpha)
	}
}

func TestCosmicRanges(t *testing.T) {
	ctx := testContext()
	galaxies := 0
	for i := 0; i < 500; i++ {
		o := newCosmicObject(ctx)
		if !cosmicSize.Contains(o.Size) || !cosmicMaxAlpha.Contains(o.MaxAlpha) || !cosmicDepth.Contains(o.Depth) {
			t.Fatalf("out of range: %+v", o)
		}
		if o.Spin < -0.001 || o.Spin > 0.001 {
			t.Fatalf("spin %v", o.Spin)
		}
		if o.Kind == CosmicGalaxy {
			galaxies++
		}
	}
	if galaxies < 100 || galaxies > 200 {
		t.Errorf("galaxies = %d of 500, want about 30%%", galaxies)
	}
}

func TestCosmicSpinScalesWithSpeed(t *testing.T) {
	ctx := testContext()
	o := newCosmicObject(ctx)
	o.Spin = 0.001
	r0 := o.Rotation
	ctx.SetSpeed(0.5)
	o.Update(ctx)
	assertNear(t, "rotation", o.Rotation-r0, 0.0005)
}

func TestCosmicDraw(t *testing.T) {
	ctx := testContext()
	tests := []struct {
		kind     CosmicKind
		commands int
	}{
		{CosmicNebula, 1},
		{CosmicGalaxy, galaxyArms + 1},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			buf := newCommandBuffer()
			o := newCosmicObject(ctx)
			o.Kind = tt.kind
			o.Alpha = 0.1
			o.Draw(ctx, buf)
			if buf.Len() != tt.commands {
				t.Fatalf("commands = %d, want %d", buf.Len(), tt.commands)
			}
			for _, cmd := range buf.Commands() {
				if cmd.Type != CommandGradient || cmd.BlendMode != BlendScreen {
					t.Errorf("command type %v blend %v", cmd.Type, cmd.BlendMode)
				}
			}
		})
	}
}

func TestCosmicInvisibleDrawsNothing(t *testing.T) {
	ctx := testContext()
	buf := newCommandBuffer()
	o := newCosmicObject(ctx)
	o.Draw(ctx, buf)
	if buf.Len() != 0 {
		t.Errorf("commands = %d, want 0 at zero alpha", buf.Len())
	}
}
