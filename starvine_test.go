package starvine

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearEps(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, eps)
	}
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func testContext() *Context {
	return NewContext(800, 600, testRand(1))
}

// testSprites returns headless sprites. They have no GPU image, so the
// submitter skips them, but they drive every simulation path.
func testSprites(n int) []*Sprite {
	out := make([]*Sprite, n)
	for i := range out {
		out[i] = &Sprite{Name: "char" + string(rune('1'+i)) + ".png", W: 256, H: 256}
	}
	return out
}

func newTestScene(seed uint64) (*Scene, *ManualClock) {
	s := NewScene(800, 600, testRand(seed))
	clock := NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.SetClock(clock)
	return s, clock
}

// --- Color ---

func TestHSLA(t *testing.T) {
	tests := []struct {
		name       string
		h, s, l, a float64
		want       Color
	}{
		{"red", 0, 1, 0.5, 1, Color{1, 0, 0, 1}},
		{"green", 120, 1, 0.5, 1, Color{0, 1, 0, 1}},
		{"blue", 240, 1, 0.5, 0.5, Color{0, 0, 1, 0.5}},
		{"wraps", 360 + 120, 1, 0.5, 1, Color{0, 1, 0, 1}},
		{"negative wraps", -240, 1, 0.5, 1, Color{0, 1, 0, 1}},
		{"gray", 77, 0, 0.5, 1, Color{0.5, 0.5, 0.5, 1}},
		{"white", 200, 1, 1, 1, Color{1, 1, 1, 1}},
		{"alpha clamped", 0, 1, 0.5, 2, Color{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSLA(tt.h, tt.s, tt.l, tt.a)
			assertNear(t, "R", got.R, tt.want.R)
			assertNear(t, "G", got.G, tt.want.G)
			assertNear(t, "B", got.B, tt.want.B)
			assertNear(t, "A", got.A, tt.want.A)
		})
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := Color{0.2, 0.4, 0.6, 1}.WithAlpha(-1)
	if c.A != 0 || c.R != 0.2 {
		t.Errorf("WithAlpha(-1) = %+v", c)
	}
}

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		x, y          float64
		loose, strict bool
	}{
		{50, 40, true, true},
		{10, 40, true, false},
		{110, 40, true, false},
		{50, 20, true, false},
		{50, 70, true, false},
		{9.99, 40, false, false},
		{111, 71, false, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.loose {
			t.Errorf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.loose)
		}
		if got := r.ContainsStrict(tt.x, tt.y); got != tt.strict {
			t.Errorf("ContainsStrict(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.strict)
		}
	}
}

// --- Range ---

func TestRangeSample(t *testing.T) {
	rng := testRand(7)
	r := Range{3, 5}
	for i := 0; i < 1000; i++ {
		v := r.Sample(rng)
		if v < 3 || v >= 5 {
			t.Fatalf("Sample = %v, want [3, 5)", v)
		}
	}
	if got := (Range{2, 2}).Sample(rng); got != 2 {
		t.Errorf("degenerate Sample = %v, want 2", got)
	}
}

// --- UpdateResult ---

func TestUpdateResult(t *testing.T) {
	tests := []struct {
		r     UpdateResult
		name  string
		alive bool
	}{
		{Continue, "continue", true},
		{Recycle, "recycle", true},
		{Remove, "remove", false},
	}
	for _, tt := range tests {
		if tt.r.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.r.String(), tt.name)
		}
		if tt.r.Alive() != tt.alive {
			t.Errorf("%s.Alive() = %v, want %v", tt.name, tt.r.Alive(), tt.alive)
		}
	}
}

func TestBlendModeScreenFactors(t *testing.T) {
	b := BlendScreen.EbitenBlend()
	if b.BlendFactorSourceRGB != ebiten.BlendFactorOne || b.BlendFactorDestinationRGB != ebiten.BlendFactorOneMinusSourceColor {
		t.Errorf("screen blend = %+v", b)
	}
	if BlendNormal.EbitenBlend() == b {
		t.Error("screen blend should differ from source-over")
	}
}
