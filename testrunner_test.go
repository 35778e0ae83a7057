package starvine

import (
	"strings"
	"testing"
)

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"malformed", `{"steps": [`, "parse test script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}, {"action": "jump"}]}`, `step 1: unknown action "jump"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.json))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func runScript(t *testing.T, s *Scene, script string, maxTicks int) *TestRunner {
	t.Helper()
	r, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)
	for i := 0; i < maxTicks && !r.Done(); i++ {
		s.Tick()
	}
	if !r.Done() {
		t.Fatalf("script not done after %d ticks", maxTicks)
	}
	return r
}

func TestRunnerClickAndSettings(t *testing.T) {
	s, _ := newTestScene(1)
	runScript(t, s, `{"steps": [
		{"action": "density", "value": 1.2},
		{"action": "speed", "value": 9},
		{"action": "click", "x": 400, "y": 300}
	]}`, 10)
	if s.Counts().Ripples != 1 {
		t.Errorf("ripples = %d", s.Counts().Ripples)
	}
	if got := s.Settings(); got != (Settings{1.2, MaxMultiplier}) {
		t.Errorf("settings = %+v", got)
	}
}

func TestRunnerWaitCountsFrames(t *testing.T) {
	s, _ := newTestScene(2)
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 10}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)
	ticks := 0
	for !r.Done() && ticks < 100 {
		s.Tick()
		ticks++
	}
	// Ten ticks of waiting plus the tick that notices the script ended.
	if ticks != 11 {
		t.Errorf("ticks = %d, want 11", ticks)
	}
}

func TestRunnerMovePathDrainsBeforeNextStep(t *testing.T) {
	s, _ := newTestScene(3)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "x": 0, "y": 0, "toX": 100, "toY": 0, "frames": 4},
		{"action": "click", "x": 100, "y": 0}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)
	s.Tick()
	if len(s.injectQueue) != 3 {
		t.Fatalf("queue = %d after first tick", len(s.injectQueue))
	}
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	if s.Counts().Ripples != 0 {
		t.Fatal("click ran before the path finished")
	}
	s.Tick()
	if s.Counts().Ripples != 1 {
		t.Errorf("ripples = %d", s.Counts().Ripples)
	}
	s.Tick()
	if !r.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerScreenshotQueues(t *testing.T) {
	s, _ := newTestScene(4)
	runScript(t, s, `{"steps": [{"action": "screenshot", "label": "a b"}, {"action": "tilt", "beta": 45, "gamma": 0}]}`, 5)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "a b" {
		t.Errorf("queue = %v", s.screenshotQueue)
	}
}
