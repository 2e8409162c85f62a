package registry

import (
	cacherepository "github.com/karupanerura/cache-repository"
)

var _ cacherepository.StoreRegistry = (*FunctionsRegistry)(nil)

// FunctionsRegistry is a cacherepository.StoreRegistry implementation that uses functions to perform the operations.
// Every function must be set for the operations that are called.
type FunctionsRegistry struct {
	RegisterStoreFunc func(name string)
	GetSizeFunc       func(name string) int
	ClearFunc         func(name string)
	GetAllFunc        func(name string) []cacherepository.Entry
	GetFunc           func(name, key string) (string, bool)
	SetFunc           func(name, key, value string) string
	DeleteFunc        func(name, key string)
}

// Delegate returns a FunctionsRegistry whose functions all call the given registry.
// Individual functions can be replaced afterwards to intercept calls.
func Delegate(r cacherepository.StoreRegistry) *FunctionsRegistry {
	return &FunctionsRegistry{
		RegisterStoreFunc: r.RegisterStore,
		GetSizeFunc:       r.GetSize,
		ClearFunc:         r.Clear,
		GetAllFunc:        r.GetAll,
		GetFunc:           r.Get,
		SetFunc:           r.Set,
		DeleteFunc:        r.Delete,
	}
}

// RegisterStore calls the RegisterStoreFunc function.
func (r *FunctionsRegistry) RegisterStore(name string) {
	r.RegisterStoreFunc(name)
}

// GetSize calls the GetSizeFunc function.
func (r *FunctionsRegistry) GetSize(name string) int {
	return r.GetSizeFunc(name)
}

// Clear calls the ClearFunc function.
func (r *FunctionsRegistry) Clear(name string) {
	r.ClearFunc(name)
}

// GetAll calls the GetAllFunc function.
func (r *FunctionsRegistry) GetAll(name string) []cacherepository.Entry {
	return r.GetAllFunc(name)
}

// Get calls the GetFunc function.
func (r *FunctionsRegistry) Get(name, key string) (string, bool) {
	return r.GetFunc(name, key)
}

// Set calls the SetFunc function.
func (r *FunctionsRegistry) Set(name, key, value string) string {
	return r.SetFunc(name, key, value)
}

// Delete calls the DeleteFunc function.
func (r *FunctionsRegistry) Delete(name, key string) {
	r.DeleteFunc(name, key)
}

var _ cacherepository.StoreRegistry = (*LintRegistry)(nil)

// LintRegistry is a store registry that is used for linting purposes.
// It delegates to Registry and panics if the result breaks the StoreRegistry contract.
type LintRegistry struct {
	Registry cacherepository.StoreRegistry
}

// RegisterStore registers the store on the underlying registry.
func (r *LintRegistry) RegisterStore(name string) {
	r.Registry.RegisterStore(name)
}

// GetSize checks that the size is never negative.
func (r *LintRegistry) GetSize(name string) int {
	size := r.Registry.GetSize(name)
	if size < 0 {
		panic("size must not be negative")
	}
	return size
}

// Clear checks that the store is empty right after it is cleared.
// With concurrent writers this check can report a false positive, so use it in sequential tests.
func (r *LintRegistry) Clear(name string) {
	r.Registry.Clear(name)
	if r.Registry.GetSize(name) != 0 {
		panic("store must be empty after clear")
	}
}

// GetAll checks that the snapshot has no duplicate keys.
func (r *LintRegistry) GetAll(name string) []cacherepository.Entry {
	entries := r.Registry.GetAll(name)
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.Key]; ok {
			panic("duplicate key in snapshot")
		}
		seen[entry.Key] = struct{}{}
	}
	return entries
}

// Get checks that a missing key is reported with an empty value.
func (r *LintRegistry) Get(name, key string) (string, bool) {
	value, ok := r.Registry.Get(name, key)
	if !ok && value != "" {
		panic("missing key must not have a value")
	}
	return value, ok
}

// Set checks that the stored value is echoed back.
func (r *LintRegistry) Set(name, key, value string) string {
	stored := r.Registry.Set(name, key, value)
	if stored != value {
		panic("set must return the stored value")
	}
	return stored
}

// Delete deletes the key on the underlying registry.
func (r *LintRegistry) Delete(name, key string) {
	r.Registry.Delete(name, key)
}
