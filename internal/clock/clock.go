package clock

import "time"

// Clock abstracts wall-clock time so scheduling stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System reads the real clock in UTC at second precision, matching the
// precision of persisted timestamps.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Fixed always returns the same instant. Advance moves it forward.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.T = f.T.Add(d)
}
