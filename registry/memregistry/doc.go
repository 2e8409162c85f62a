// Package memregistry provides an in-memory implementation of the cacherepository.StoreRegistry interface.
//
// Store names are distributed across multiple buckets by hash, so lookups of unrelated stores do
// not contend on one lock. Every store keeps its entries in first-insertion order.
package memregistry
