package license

import "time"

// Clock supplies the current instant. Injectable so services and tests can
// evaluate and issue at fixed points in time.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// NowMs returns the clock's current instant in milliseconds since epoch.
func (c Clock) NowMs() int64 {
	return c().UnixMilli()
}
