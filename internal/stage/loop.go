// Package stage wires the deck, the scheduler and the particle effects into
// scenes driven by a single logical clock.
package stage

// FrameFunc is one per-frame step. nowMs is the clock after this frame's dt
// has been applied.
type FrameFunc func(dtMs, nowMs float64)

type frame struct {
	name string
	fn   FrameFunc
}

// Loop runs registered frame functions in registration order.
type Loop struct {
	frames []frame
	nowMs  float64
}

// Register appends fn to the frame order.
func (l *Loop) Register(name string, fn FrameFunc) {
	l.frames = append(l.frames, frame{name: name, fn: fn})
}

// Frames lists the registered step names in order.
func (l *Loop) Frames() []string {
	names := make([]string, len(l.frames))
	for i, f := range l.frames {
		names[i] = f.name
	}
	return names
}

// Now returns the logical clock in milliseconds.
func (l *Loop) Now() float64 { return l.nowMs }

func (l *Loop) step(dtMs float64) {
	if dtMs < 0 {
		dtMs = 0
	}
	l.nowMs += dtMs
	for _, f := range l.frames {
		f.fn(dtMs, l.nowMs)
	}
}
