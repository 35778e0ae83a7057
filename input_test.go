package starvine

import "testing"

type fakePointer struct {
	x, y float64
	ok   bool
}

func (p *fakePointer) Pointer() (float64, float64, bool) { return p.x, p.y, p.ok }

type fakeTilt struct {
	beta, gamma float64
	ok          bool
	reads       int
}

func (f *fakeTilt) Tilt() (float64, float64, bool) {
	f.reads++
	return f.beta, f.gamma, f.ok
}

func TestNudgeAccumulatesWhileEasing(t *testing.T) {
	s, _ := newTestScene(1)
	r := s.Input()
	r.nudge(SettingsStep, 0)
	r.nudge(SettingsStep, 0)
	if got := s.settings.target.Density; !nearly(got, DefaultDensity+2*SettingsStep) {
		t.Errorf("target density = %v, want %v", got, DefaultDensity+2*SettingsStep)
	}
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	assertNearEps(t, "density", s.Settings().Density, DefaultDensity+2*SettingsStep, 1e-9)
}

func TestNudgeClamps(t *testing.T) {
	s, _ := newTestScene(2)
	r := s.Input()
	for i := 0; i < 30; i++ {
		r.nudge(SettingsStep, -SettingsStep)
	}
	if got := s.settings.target; got.Density != MaxMultiplier || got.Speed != MinMultiplier {
		t.Errorf("target = %+v", got)
	}
}

func TestNudgeZeroIsNoop(t *testing.T) {
	s, _ := newTestScene(3)
	s.Input().nudge(0, 0)
	if s.settings.active() {
		t.Error("zero nudge should not start a transition")
	}
}

func TestMoveDedupes(t *testing.T) {
	s, _ := newTestScene(4)
	r := s.Input()
	ctx := s.Context()
	r.move(5, 6)
	if ctx.Pointer != (Vec2{5, 6}) {
		t.Fatalf("pointer = %v", ctx.Pointer)
	}
	ctx.Pointer = Vec2{}
	r.move(5, 6)
	if ctx.Pointer != (Vec2{}) {
		t.Error("repeated position should not be forwarded")
	}
	r.move(7, 6)
	if ctx.Pointer != (Vec2{7, 6}) {
		t.Errorf("pointer = %v", ctx.Pointer)
	}
}

func TestExternalPointerSource(t *testing.T) {
	s, _ := newTestScene(5)
	r := s.Input()
	src := &fakePointer{x: 40, y: 30, ok: true}
	r.SetPointerSource(src)
	r.processExternal()
	if s.Context().Target != (Vec2{40, 30}) {
		t.Errorf("target = %v", s.Context().Target)
	}
	src.ok = false
	src.x = 99
	r.processExternal()
	if s.Context().Target != (Vec2{40, 30}) {
		t.Error("failed read should be ignored")
	}
}

func TestProcessTilt(t *testing.T) {
	s, _ := newTestScene(6)
	r := s.Input()
	src := &fakeTilt{beta: 45, gamma: 45, ok: true}
	if err := r.EnableTilt(src); err != nil {
		t.Fatal(err)
	}
	r.processTilt()
	ctx := s.Context()
	if ctx.Target != (Vec2{700, 300}) {
		t.Fatalf("target = %v", ctx.Target)
	}

	ctx.Target = Vec2{}
	r.processTilt()
	if ctx.Target != (Vec2{}) {
		t.Error("unchanged reading should not be forwarded")
	}

	src.gamma = -45
	r.processTilt()
	if ctx.Target != (Vec2{100, 300}) {
		t.Errorf("target = %v", ctx.Target)
	}

	src.ok = false
	ctx.Target = Vec2{1, 1}
	r.processTilt()
	if ctx.Target != (Vec2{1, 1}) {
		t.Error("unavailable reading should be ignored")
	}
}

func nearly(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
