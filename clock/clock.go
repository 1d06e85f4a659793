package clock

// Tick is a position on a monotonically non-decreasing simulation counter.
// It restarts only when the host begins a new session.
type Tick int64

// Source reads the current position on one time axis.
//
// Contract:
// - Concurrency: read on the simulation thread; implementations need not lock.
// - Errors: Now never fails.
type Source interface {
	Now() Tick
}

// SourceFunc adapts an ordinary function to Source.
type SourceFunc func() Tick

// Now calls f.
func (f SourceFunc) Now() Tick {
	return f()
}

// Host is the read-only clock surface the host engine exposes.
type Host interface {
	CurrentTick() Tick
	CurrentFrame() Tick
}

// Ticks returns a Source reading the host's tick counter.
func Ticks(h Host) Source {
	return SourceFunc(h.CurrentTick)
}

// Frames returns a Source reading the host's frame counter.
func Frames(h Host) Source {
	return SourceFunc(h.CurrentFrame)
}

// Manual is a host-side clock advanced explicitly by the caller.
// It is the reference Host for tests and headless simulations.
type Manual struct {
	tick  Tick
	frame Tick
}

// NewManual returns a clock positioned at tick 0, frame 0.
func NewManual() *Manual {
	return &Manual{}
}

// CurrentTick implements Host.
func (m *Manual) CurrentTick() Tick { return m.tick }

// CurrentFrame implements Host.
func (m *Manual) CurrentFrame() Tick { return m.frame }

// Advance moves the tick counter forward by n. Negative n is ignored.
func (m *Manual) Advance(n int) {
	if n > 0 {
		m.tick += Tick(n)
	}
}

// AdvanceFrames moves the frame counter forward by n. Negative n is ignored.
func (m *Manual) AdvanceFrames(n int) {
	if n > 0 {
		m.frame += Tick(n)
	}
}

// Set positions the tick counter at t if t is not behind the current tick.
func (m *Manual) Set(t Tick) {
	if t > m.tick {
		m.tick = t
	}
}

// Reset restarts both counters at zero, as on a new session.
func (m *Manual) Reset() {
	m.tick = 0
	m.frame = 0
}

var _ Host = (*Manual)(nil)
