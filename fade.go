package starvine

// FadeState is a phase of the fade-in / stay / fade-out alpha lifecycle
// shared by cosmic objects and characters.
type FadeState uint8

const (
	FadeIn FadeState = iota
	FadeStay
	FadeOut
)

func (s FadeState) String() string {
	switch s {
	case FadeIn:
		return "in"
	case FadeStay:
		return "stay"
	case FadeOut:
		return "out"
	}
	return "unknown"
}

// fader tracks alpha through the fade lifecycle. The owner decides when to
// leave FadeStay.
type fader struct {
	State    FadeState
	Alpha    float64
	MaxAlpha float64
}

// fadeIn raises alpha by step, switching to FadeStay once MaxAlpha is
// reached. Alpha never exceeds MaxAlpha.
func (f *fader) fadeIn(step float64) {
	f.Alpha += step
	if f.Alpha >= f.MaxAlpha {
		f.Alpha = f.MaxAlpha
		f.State = FadeStay
	}
}

// fadeOut lowers alpha by step and reports whether it crossed zero. Alpha is
// clamped at zero so it is never drawn negative.
func (f *fader) fadeOut(step float64) bool {
	f.Alpha -= step
	if f.Alpha <= 0 {
		f.Alpha = 0
		return true
	}
	return false
}
