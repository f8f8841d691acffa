// Package timing measures elapsed wall-clock time between two explicit,
// monotonic timestamps. It keeps no process-wide state.
package timing

import "time"

// Mark is a started measurement.
type Mark struct {
	start time.Time
}

// Span is a completed measurement.
type Span struct {
	Start time.Time
	End   time.Time
}

// Start records the current monotonic time.
func Start() Mark {
	return Mark{start: time.Now()}
}

// Elapsed returns the time since the mark without stopping it.
func (m Mark) Elapsed() time.Duration {
	return time.Since(m.start)
}

// Stop records the end timestamp.
func (m Mark) Stop() Span {
	return Span{Start: m.start, End: time.Now()}
}

// Duration returns End - Start, clamped at zero.
func (s Span) Duration() time.Duration {
	d := s.End.Sub(s.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Seconds returns the duration in seconds.
func (s Span) Seconds() float64 {
	return s.Duration().Seconds()
}
