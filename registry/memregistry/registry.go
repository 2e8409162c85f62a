package memregistry

import (
	"slices"
	"sync"

	cacherepository "github.com/karupanerura/cache-repository"
)

// store is one named partition. keys keeps the first-insertion order of values.
type store struct {
	mu     sync.RWMutex
	keys   []string
	values map[string]string
}

func newStore() *store {
	return &store{values: map[string]string{}}
}

type bucket struct {
	mu     sync.RWMutex
	stores map[string]*store
}

// Registry is an in-memory, name-partitioned key-value store.
// Operations on a name that was never registered behave as on an empty store,
// except Set, which registers the name implicitly.
type Registry struct {
	buckets []*bucket
	options options
}

var _ cacherepository.StoreRegistry = (*Registry)(nil)

// New creates a new in-memory registry.
func New(opts ...Option) *Registry {
	options := defaultOptions()
	for _, opt := range opts {
		opt.apply(&options)
	}

	buckets := make([]*bucket, options.bucketsSize)
	for i := range buckets {
		buckets[i] = &bucket{stores: map[string]*store{}}
	}
	return &Registry{
		buckets: buckets,
		options: options,
	}
}

// resolveBucket returns the bucket that corresponds to the given store name.
func (r *Registry) resolveBucket(name string) *bucket {
	index := r.options.hashName(name) % len(r.buckets)
	if index < 0 {
		index *= -1
	}
	return r.buckets[index]
}

// lookup returns the named store, or nil if it was never registered.
func (r *Registry) lookup(name string) *store {
	b := r.resolveBucket(name)
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stores[name]
}

// lookupOrRegister returns the named store, creating it if needed.
func (r *Registry) lookupOrRegister(name string) *store {
	if s := r.lookup(name); s != nil {
		return s
	}

	b := r.resolveBucket(name)
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.stores[name]; ok {
		return s
	}
	s := newStore()
	b.stores[name] = s
	return s
}

// RegisterStore creates the named store if it does not exist yet.
func (r *Registry) RegisterStore(name string) {
	r.lookupOrRegister(name)
}

// Stores returns the names of all registered stores in no particular order.
func (r *Registry) Stores() []string {
	var names []string
	for _, b := range r.buckets {
		b.mu.RLock()
		for name := range b.stores {
			names = append(names, name)
		}
		b.mu.RUnlock()
	}
	return names
}

func (r *Registry) GetSize(name string) int {
	s := r.lookup(name)
	if s == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

func (r *Registry) Clear(name string) {
	s := r.lookup(name)
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
	s.values = map[string]string{}
}

func (r *Registry) GetAll(name string) []cacherepository.Entry {
	s := r.lookup(name)
	if s == nil {
		return []cacherepository.Entry{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]cacherepository.Entry, len(s.keys))
	for i, key := range s.keys {
		entries[i] = cacherepository.Entry{Key: key, Value: s.values[key]}
	}
	return entries
}

func (r *Registry) Get(name, key string) (string, bool) {
	s := r.lookup(name)
	if s == nil {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (r *Registry) Set(name, key, value string) string {
	s := r.lookupOrRegister(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return value
}

func (r *Registry) Delete(name, key string) {
	s := r.lookup(name)
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	if i := slices.Index(s.keys, key); i >= 0 {
		s.keys = slices.Delete(s.keys, i, i+1)
	}
}
