package services

import "time"

// Clock returns the current time. Services stamp documents through it so
// tests can pin "now".
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
