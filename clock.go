package cacherepository

import "time"

// Ticker delivers ticks at a fixed period until stopped.
type Ticker interface {
	// C returns the channel on which the ticks are delivered.
	C() <-chan time.Time

	// Stop turns off the ticker. No more ticks are sent after Stop returns.
	Stop()
}

// Clock is an interface for creating tickers.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// ClockFunc is a function type that implements the Clock interface.
type ClockFunc func(d time.Duration) Ticker

// NewTicker calls the function.
func (f ClockFunc) NewTicker(d time.Duration) Ticker {
	return f(d)
}

// SystemClock is the default clock that uses time.NewTicker.
var SystemClock Clock = ClockFunc(func(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
})

type systemTicker struct {
	*time.Ticker
}

func (t systemTicker) C() <-chan time.Time {
	return t.Ticker.C
}
