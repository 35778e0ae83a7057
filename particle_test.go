package starvine

import (
	"math"
	"testing"
)

func TestNewParticleRanges(t *testing.T) {
	ctx := testContext()
	counts := map[ParticleKind]int{}
	for i := 0; i < 2000; i++ {
		p := newParticle(ctx)
		if !particleSpeed.Contains(p.Speed) || !particleMaxLife.Contains(p.MaxLife) ||
			!particleThickness.Contains(p.Thickness) || !particleDepth.Contains(p.Depth) {
			t.Fatalf("particle out of range: %+v", p)
		}
		if p.Life != 0 || p.Prev != p.Pos {
			t.Fatalf("fresh particle should have zero life and Prev == Pos: %+v", p)
		}
		counts[p.Kind]++
	}
	if counts[ParticleVine] < counts[ParticleStar] || counts[ParticleStar] < counts[ParticleNebula] {
		t.Errorf("kind mix = %v, want vine > star > nebula", counts)
	}
}

func TestParticleExpiry(t *testing.T) {
	tests := []struct {
		name    string
		crowded bool
		want    UpdateResult
	}{
		{"recycles when not crowded", false, Recycle},
		{"removed when crowded", true, Remove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.SetSpeed(0)
			p := newParticle(ctx)
			p.Pos = Vec2{400, 300}
			p.Life = p.MaxLife // one update makes life = maxLife + 1
			got := p.Update(ctx, tt.crowded)
			if got != tt.want {
				t.Fatalf("Update = %v, want %v", got, tt.want)
			}
			if tt.want == Recycle && p.Life != 0 {
				t.Errorf("recycled particle life = %v, want 0", p.Life)
			}
		})
	}
}

func TestParticleOffCanvas(t *testing.T) {
	ctx := testContext()
	p := newParticle(ctx)
	p.Pos = Vec2{-50, 300}
	if got := p.Update(ctx, false); got != Recycle {
		t.Errorf("off-canvas particle Update = %v, want recycle", got)
	}
	if p.Pos.X < 0 || p.Pos.X > ctx.Width {
		t.Errorf("recycled particle still off canvas: %v", p.Pos)
	}
}

func TestParticleKeepsPrevious(t *testing.T) {
	ctx := testContext()
	p := newParticle(ctx)
	p.Pos = Vec2{400, 300}
	p.Life = 1
	before := p.Pos
	p.Update(ctx, false)
	if p.Prev != before {
		t.Errorf("Prev = %v, want %v", p.Prev, before)
	}
}

func TestParticleAlpha(t *testing.T) {
	p := Particle{MaxLife: 200}
	tests := []struct {
		life, want float64
	}{
		{0, 0},
		{100, 1},
		{50, math.Sin(math.Pi / 4)},
		{200, 0},
		{201, 0},
	}
	for _, tt := range tests {
		p.Life = tt.life
		assertNearEps(t, "Alpha", p.Alpha(), tt.want, 1e-12)
	}
}

func TestParticlePoolCap(t *testing.T) {
	for _, density := range []float64{0, 0.1, 0.35, 0.6, 0.87, 1} {
		ctx := testContext()
		ctx.SetDensity(1)
		var pool particlePool
		pool.fill(ctx, MaxParticles)
		ctx.SetDensity(density)
		for frame := 0; frame < 400; frame++ {
			ctx.Frame = frame
			ctx.modulate()
			pool.update(ctx)
			if pool.Len() > ctx.ParticleCap() {
				t.Fatalf("density %v frame %d: %d particles, cap %d", density, frame, pool.Len(), ctx.ParticleCap())
			}
		}
	}
}

func TestParticlePoolSpawnsOnePerUpdate(t *testing.T) {
	ctx := testContext()
	ctx.SetDensity(1)
	ctx.DensityCycle = 1
	var pool particlePool
	for i := 0; i < 50; i++ {
		pool.update(ctx)
	}
	if pool.Len() != 50 {
		t.Errorf("pool = %d after 50 updates from empty, want one spawn per update", pool.Len())
	}
}

func TestParticleDrawEmitsOneCommand(t *testing.T) {
	ctx := testContext()
	buf := newCommandBuffer()
	for _, kind := range []ParticleKind{ParticleVine, ParticleStar, ParticleNebula} {
		buf.Reset()
		p := newParticle(ctx)
		p.Kind = kind
		p.Life = p.MaxLife / 2
		p.Prev = p.Pos.Add(Vec2{-2, -1})
		p.Draw(ctx, buf)
		if kind == ParticleStar {
			// Star radius is random in [0, 2); a zero radius emits nothing.
			if buf.Len() > 1 {
				t.Errorf("%v: %d commands", kind, buf.Len())
			}
			continue
		}
		if buf.Len() != 1 {
			t.Errorf("%v: %d commands, want 1", kind, buf.Len())
		}
	}
}
