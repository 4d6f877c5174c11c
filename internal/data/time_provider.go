package data

import "time"

// TimeProvider supplies the timestamps repositories write to created_at and updated_at.
type TimeProvider interface {
	Now() time.Time
}

// TimeFunc adapts a plain function to TimeProvider.
type TimeFunc func() time.Time

// Now calls f.
func (f TimeFunc) Now() time.Time { return f() }

var systemClock TimeProvider = TimeFunc(time.Now)

// NewFixedTimeProvider returns a TimeProvider that always reports t.
func NewFixedTimeProvider(t time.Time) TimeProvider {
	return TimeFunc(func() time.Time { return t })
}
