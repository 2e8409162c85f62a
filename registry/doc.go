// Package registry provides store registry adapters for the cache repository.
//
// FunctionsRegistry builds a cacherepository.StoreRegistry from function callbacks, which is handy
// for counting or intercepting collaborator calls in tests. LintRegistry wraps any registry and
// panics when the wrapped implementation breaks the StoreRegistry contract.
package registry
