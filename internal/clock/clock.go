// Package clock provides time to the application.
package clock

import "time"

// Clock abstracts wall-clock time so tests can pin expense timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the current wall-clock time in UTC.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC() }
