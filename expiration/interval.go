package expiration

import (
	"fmt"
	"time"
)

type intervalKind uint8

const (
	invalidInterval intervalKind = iota
	periodicInterval
	disabledInterval
	neverInterval
)

// Interval is a resolved refresh interval.
// The zero value is invalid: it is neither a sentinel nor periodic, and has no duration.
// Use Disabled, Never or Every.
type Interval struct {
	kind     intervalKind
	duration time.Duration
}

var (
	// Disabled means caching is bypassed entirely.
	Disabled = Interval{kind: disabledInterval}

	// Never means the store is never reset automatically.
	Never = Interval{kind: neverInterval}
)

// Every returns a periodic interval. The duration must be positive.
func Every(d time.Duration) Interval {
	if d <= 0 {
		panic("interval duration must be positive")
	}
	return Interval{kind: periodicInterval, duration: d}
}

// IsDisabled reports whether the interval is the Disabled sentinel.
func (i Interval) IsDisabled() bool {
	return i.kind == disabledInterval
}

// IsNever reports whether the interval is the Never sentinel.
func (i Interval) IsNever() bool {
	return i.kind == neverInterval
}

// Duration returns the refresh period. ok is false for the sentinels.
func (i Interval) Duration() (d time.Duration, ok bool) {
	if i.kind != periodicInterval || i.duration <= 0 {
		return 0, false
	}
	return i.duration, true
}

func (i Interval) String() string {
	switch i.kind {
	case disabledInterval:
		return "disabled"
	case neverInterval:
		return "never"
	case periodicInterval:
		return fmt.Sprintf("every %s", i.duration)
	default:
		return "invalid"
	}
}

// Milliseconds returns the refresh period in milliseconds. ok is false for the sentinels.
func (i Interval) Milliseconds() (ms int64, ok bool) {
	d, ok := i.Duration()
	if !ok {
		return 0, false
	}
	return d.Milliseconds(), true
}
