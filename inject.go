package starvine

type syntheticKind uint8

const (
	syntheticClick syntheticKind = iota
	syntheticMove
	syntheticTilt
	syntheticReset
)

// syntheticEvent is a single injected input event. Coordinates are screen
// pixels, identical to real pointer input; tilt events carry beta and gamma
// in x and y.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectClick queues a primary press at the given screen coordinates. The
// event is consumed on the next tick and routed exactly like a real press.
func (s *Scene) InjectClick(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticClick, x: x, y: y})
}

// InjectMove queues a pointer move to the given screen coordinates.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectPath queues pointer moves linearly interpolated from (fromX, fromY)
// to (toX, toY), one per tick. The sequence consumes frames ticks; the
// minimum is 2.
func (s *Scene) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectTilt queues a device orientation reading in degrees.
func (s *Scene) InjectTilt(beta, gamma float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticTilt, x: beta, y: gamma})
}

// InjectReset queues a full reinitialization.
func (s *Scene) InjectReset() {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticReset})
}

// processInjectedInput pops one event from the inject queue and routes it.
// Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticClick:
		s.PointerMove(evt.x, evt.y)
		s.Click(evt.x, evt.y)
	case syntheticMove:
		s.PointerMove(evt.x, evt.y)
	case syntheticTilt:
		s.Tilt(evt.x, evt.y)
	case syntheticReset:
		// Applied immediately: injected events are consumed at the start of
		// a tick, before any pool has been touched.
		s.Reset(0, 0)
	}
	return true
}
