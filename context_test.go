package starvine

import (
	"math"
	"testing"
)

func TestParallax(t *testing.T) {
	center := Vec2{400, 300}
	tests := []struct {
		name    string
		pointer Vec2
		depth   float64
		want    Vec2
	}{
		{"at center", Vec2{400, 300}, 50, Vec2{0, 0}},
		{"right", Vec2{500, 300}, 50, Vec2{2, 0}},
		{"up-left far", Vec2{0, 0}, 100, Vec2{-4, -3}},
		{"near", Vec2{410, 320}, 5, Vec2{2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parallax(tt.pointer, center, tt.depth)
			assertNear(t, "X", got.X, tt.want.X)
			assertNear(t, "Y", got.Y, tt.want.Y)
		})
	}
}

func TestParallaxIdempotent(t *testing.T) {
	ctx := testContext()
	ctx.Pointer = Vec2{123, 456}
	a := ctx.Offset(37)
	b := ctx.Offset(37)
	if a != b {
		t.Errorf("Offset not idempotent: %v vs %v", a, b)
	}
}

func TestParallaxFartherMovesLess(t *testing.T) {
	ctx := testContext()
	ctx.Pointer = Vec2{0, 0}
	near := ctx.Offset(5).Len()
	far := ctx.Offset(130).Len()
	if !(near > far) {
		t.Errorf("near offset %v should exceed far offset %v", near, far)
	}
}

func TestNewContextPointerAtCenter(t *testing.T) {
	ctx := NewContext(1024, 768, nil)
	if ctx.Pointer != (Vec2{512, 384}) || ctx.Target != ctx.Pointer {
		t.Errorf("pointer = %v target = %v, want center", ctx.Pointer, ctx.Target)
	}
	if ctx.Rand == nil {
		t.Error("nil rng should be replaced")
	}
	if ctx.Density != DefaultDensity || ctx.Speed != DefaultSpeed {
		t.Errorf("multipliers = %v/%v", ctx.Density, ctx.Speed)
	}
}

func TestClampMultiplier(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.6, 0.6},
		{-1, 0},
		{0, 0},
		{1.5, 1.5},
		{9, 1.5},
		{math.NaN(), 0},
		{math.Inf(1), 1.5},
	}
	for _, tt := range tests {
		if got := ClampMultiplier(tt.in); got != tt.want {
			t.Errorf("ClampMultiplier(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParticleCap(t *testing.T) {
	ctx := testContext()
	tests := []struct {
		density float64
		want    int
	}{
		{0, 0},
		{0.001, 1},
		{0.6, 180},
		{1, 300},
		{1.5, 450},
	}
	for _, tt := range tests {
		ctx.SetDensity(tt.density)
		if got := ctx.ParticleCap(); got != tt.want {
			t.Errorf("ParticleCap(density=%v) = %d, want %d", tt.density, got, tt.want)
		}
	}
}

func TestModulate(t *testing.T) {
	ctx := testContext()
	for f := 0; f < 5000; f += 37 {
		ctx.Frame = f
		ctx.modulate()
		if ctx.DensityCycle < 0.2-epsilon || ctx.DensityCycle > 1+epsilon {
			t.Fatalf("frame %d: DensityCycle = %v, want [0.2, 1]", f, ctx.DensityCycle)
		}
		if math.Abs(ctx.GlobalRotation) > 0.02+epsilon {
			t.Fatalf("frame %d: GlobalRotation = %v", f, ctx.GlobalRotation)
		}
	}
	ctx.Frame = 0
	ctx.FlowRotation = 0
	ctx.modulate()
	assertNear(t, "DensityCycle at frame 0", ctx.DensityCycle, 0.6)
	assertNear(t, "FlowRotation at frame 0", ctx.FlowRotation, 0)
}

func TestSmoothPointer(t *testing.T) {
	ctx := testContext()
	ctx.Pointer = Vec2{0, 0}
	ctx.Target = Vec2{100, 200}
	ctx.smoothPointer()
	assertNear(t, "X", ctx.Pointer.X, 5)
	assertNear(t, "Y", ctx.Pointer.Y, 10)

	for i := 0; i < 1000; i++ {
		ctx.smoothPointer()
	}
	assertNearEps(t, "converged X", ctx.Pointer.X, 100, 1e-6)
}

func TestIdleDrift(t *testing.T) {
	ctx := testContext()
	ctx.Frame = 0
	d := ctx.idleDrift()
	assertNear(t, "X", d.X, 400)
	assertNear(t, "Y", d.Y, 300+60)
}
