package starvine

import (
	"strings"
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	got := formatUptime(90 * time.Second)
	if !strings.Contains(got, "1 m") || !strings.Contains(got, "30 s") {
		t.Errorf("formatUptime(90s) = %q", got)
	}
	got = formatUptime(time.Hour + 2*time.Minute + 3*time.Second)
	if !strings.Contains(got, "1 h") || !strings.Contains(got, "2 m") || strings.Contains(got, "3 s") {
		t.Errorf("formatUptime(1h2m3s) = %q, want two units", got)
	}
}

func TestStats(t *testing.T) {
	s, clock := newTestScene(1)
	s.AddSprite(testSprites(1)[0])
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	clock.Advance(5 * time.Second)
	st := s.Stats()
	if st.Frame != 3 {
		t.Errorf("Frame = %d", st.Frame)
	}
	if st.Pools != s.Counts() {
		t.Errorf("Pools = %+v", st.Pools)
	}
	if st.Sprites != 1 {
		t.Errorf("Sprites = %d", st.Sprites)
	}
	if st.Uptime != 5*time.Second {
		t.Errorf("Uptime = %v", st.Uptime)
	}
	if st.UpdateTime <= 0 {
		t.Error("UpdateTime not recorded")
	}
}

func TestDebugLogDisabled(t *testing.T) {
	s, _ := newTestScene(2)
	s.debugLog()
	if s.statsLimiter.Tokens() < 1 {
		t.Error("debugLog should not consume the limiter when debug is off")
	}
}
