package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

var clock = clockwork.NewRealClock()

// SetClock replaces the time source behind Now, which drives retention
// cutoffs, failure log entries and notification timestamps. A nil clock
// restores wall time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
}

// Now reports the current time according to the installed clock.
func Now() time.Time {
	return clock.Now()
}
