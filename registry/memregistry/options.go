package memregistry

import (
	"github.com/karupanerura/cache-repository/internal/keyhash"
)

// DefaultBucketsSize is the default number of buckets in the registry.
var DefaultBucketsSize = 64

// Option is the interface for the options of the in-memory registry.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithNameHash sets the hash function used to assign store names to buckets.
func WithNameHash(f func(string) int) Option {
	return optionFunc(func(o *options) {
		o.hashName = f
	})
}

// WithBucketsSize sets the number of buckets in the registry.
// The number of buckets must be a natural number.
func WithBucketsSize(bucketsSize int) Option {
	if bucketsSize <= 0 {
		panic("bucketSize must be natural number")
	}
	return optionFunc(func(o *options) {
		o.bucketsSize = bucketsSize
	})
}

type options struct {
	hashName    func(string) int
	bucketsSize int
}

func defaultOptions() options {
	return options{
		hashName:    keyhash.For[string](),
		bucketsSize: DefaultBucketsSize,
	}
}
