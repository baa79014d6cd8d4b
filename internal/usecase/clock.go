package usecase

import "time"

// LocalClock reads the system clock and converts it to a fixed location.
type LocalClock struct {
	loc *time.Location
}

// NewLocalClock creates a LocalClock. A nil location means UTC.
func NewLocalClock(loc *time.Location) *LocalClock {
	if loc == nil {
		loc = time.UTC
	}

	return &LocalClock{loc: loc}
}

// Now returns the current instant in the clock's location.
func (c *LocalClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location returns the clock's location.
func (c *LocalClock) Location() *time.Location {
	return c.loc
}
