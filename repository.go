// Package cacherepository provides named cache stores with store-wide, time-based invalidation.
package cacherepository

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/karupanerura/cache-repository/expiration"
)

// Repository is a cache over one named store of a StoreRegistry.
// Its expiration policy is resolved once at construction: a DoNotCache repository bypasses the
// registry on every read and write, and a periodic policy wipes the whole store on every period.
//
// Repositories sharing a registry and a name share the entries. There is no coordination between
// them beyond what the registry itself provides.
type Repository struct {
	name     string
	registry StoreRegistry
	policy   expiration.Policy
	interval expiration.Interval
	disabled bool

	reset  *resetScheduler
	loads  singleflight.Group
	logger logrus.FieldLogger
}

// New creates a repository for the named store and registers the name with the registry.
// If the policy resolves to a periodic interval, the reset timer starts immediately; release it
// with KillReset. An unknown policy is rejected with ErrUnknownPolicy.
func New(registry StoreRegistry, name string, policy expiration.Policy, opts ...Option) (*Repository, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	interval, ok := policy.Interval()
	if !ok {
		return nil, fmt.Errorf("store %q: %w: %d", name, ErrUnknownPolicy, uint8(policy))
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt.apply(&options)
	}

	r := &Repository{
		name:     name,
		registry: registry,
		policy:   policy,
		interval: interval,
		disabled: interval.IsDisabled(),
		logger: options.logger.WithFields(logrus.Fields{
			"store":  name,
			"policy": policy.String(),
		}),
	}
	registry.RegisterStore(name)

	if d, ok := interval.Duration(); ok {
		onBackgroundError := options.onBackgroundError
		r.reset = newResetScheduler(options.clock, d, r.resetStore, func(err error) {
			r.logger.WithError(err).Warn("cache store reset failed")
			if onBackgroundError != nil {
				onBackgroundError(err)
			}
		})
		if r.reset.start() {
			r.logger.WithField("interval", d.String()).Debug("cache store reset scheduled")
		}
	}

	r.logger.Debug("cache repository created")
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(registry StoreRegistry, name string, policy expiration.Policy, opts ...Option) *Repository {
	r, err := New(registry, name, policy, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// resetStore clears the store if it holds any entry.
// A write landing between the size check and the clear is lost with the rest of the store.
func (r *Repository) resetStore() {
	size := r.registry.GetSize(r.name)
	if size <= 0 {
		return
	}
	r.registry.Clear(r.name)
	r.logger.WithField("size", size).Debug("cache store reset")
}

// Name returns the store name.
func (r *Repository) Name() string {
	return r.name
}

// Policy returns the expiration policy.
func (r *Repository) Policy() expiration.Policy {
	return r.policy
}

// Interval returns the resolved refresh interval.
func (r *Repository) Interval() expiration.Interval {
	return r.interval
}

// Disabled reports whether caching is bypassed (DoNotCache).
func (r *Repository) Disabled() bool {
	return r.disabled
}

// ResetActive reports whether the reset timer is running.
func (r *Repository) ResetActive() bool {
	return r.reset != nil && r.reset.active()
}

// GetCachedValue returns the raw value stored under key.
// A disabled repository always misses without consulting the registry.
func (r *Repository) GetCachedValue(key string) (string, bool) {
	if r.disabled {
		return "", false
	}
	return r.registry.Get(r.name, key)
}

// SetCachedValue stores the raw value under key and returns the stored value.
// A disabled repository stores nothing and returns ("", false).
func (r *Repository) SetCachedValue(key, value string) (string, bool) {
	if r.disabled {
		return "", false
	}
	return r.registry.Set(r.name, key, value), true
}

// GetCachedValueOrCacheNewValue returns the cached value for key, or stores value on a miss.
// The read and the write are separate steps: concurrent callers can both miss and both write,
// in which case the last write wins.
func (r *Repository) GetCachedValueOrCacheNewValue(key, value string) (string, bool) {
	if cached, ok := r.GetCachedValue(key); ok {
		return cached, true
	}
	return r.SetCachedValue(key, value)
}

// RemoveKey deletes key from the store, even when the repository is disabled.
func (r *Repository) RemoveKey(key string) {
	r.registry.Delete(r.name, key)
}

// Clear removes all entries of the store.
func (r *Repository) Clear() {
	r.registry.Clear(r.name)
}

// GetAllCachedValues returns a snapshot of the store in first-insertion order.
func (r *Repository) GetAllCachedValues() []Entry {
	return r.registry.GetAll(r.name)
}

// IsCacheClear reports whether the store holds no entries.
func (r *Repository) IsCacheClear() bool {
	return r.registry.GetSize(r.name) == 0
}

// KillReset stops the reset timer. Existing entries are kept.
// It is safe to call more than once, and on repositories that never had a timer.
// It waits for the reset loop to exit, so once it returns the store is not reset again by this
// repository. While a reset is running, for example when KillReset is called from the
// background error handler or from the registry, it returns without waiting; that reset still
// completes and no further reset starts.
func (r *Repository) KillReset() {
	if r.reset != nil && r.reset.stop() {
		r.logger.Debug("cache store reset released")
	}
}
