package clock

import "time"

// Clock provides the current time so timestamps can be pinned in tests
type Clock interface {
	Now() time.Time
}

// System reads the wall clock, always in UTC
type System struct{}

// New creates a new System clock
func New() *System {
	return &System{}
}

// Now returns the current UTC time
func (System) Now() time.Time {
	return time.Now().UTC()
}
