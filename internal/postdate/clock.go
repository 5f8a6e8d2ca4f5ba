package postdate

import "time"

// Clock supplies the reference instant when a caller does not pass one.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock. It always reports UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

// FixedClock always reports t. Used by tests and by the CLI --now flag.
func FixedClock(t time.Time) Clock {
	return fixedClock(t)
}
