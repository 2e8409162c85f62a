// Package expiration provides the store-wide expiration policies of the cache repository.
//
// A Policy is a closed enumeration. Each value resolves to exactly one Interval: the Disabled
// sentinel (caching is bypassed), the Never sentinel (the store is never reset automatically),
// or a fixed positive refresh interval after which the whole store is wiped.
package expiration
