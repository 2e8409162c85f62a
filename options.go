package cacherepository

import (
	"github.com/sirupsen/logrus"
)

// Option is the interface for the options of the Repository.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithLogger sets the logger used for lifecycle and reset events.
// The default logger is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}

// WithClock sets the clock that creates the reset ticker.
// The default clock is SystemClock.
func WithClock(clock Clock) Option {
	return optionFunc(func(o *options) {
		o.clock = clock
	})
}

// WithBackgroundErrorHandler sets a callback for failures inside the background reset loop.
// Such failures are always logged; the handler is called in addition to logging.
func WithBackgroundErrorHandler(f func(error)) Option {
	return optionFunc(func(o *options) {
		o.onBackgroundError = f
	})
}

type options struct {
	logger            logrus.FieldLogger
	clock             Clock
	onBackgroundError func(error)
}

func defaultOptions() options {
	return options{
		logger:            logrus.StandardLogger(),
		clock:             SystemClock,
		onBackgroundError: func(error) {},
	}
}
