package cacherepository

// Entry is a key-value pair held by a named store.
type Entry struct {
	// Key is the key of the entry.
	Key string

	// Value is the raw value associated with the key.
	Value string
}

// StoreRegistry is a name-partitioned key-value store backing the repositories.
// Every partition is identified by a store name and holds raw string values.
// Implementations must be thread-safe.
type StoreRegistry interface {
	// RegisterStore creates the partition for name.
	// It must be idempotent: registering an existing name keeps its entries.
	RegisterStore(name string)

	// GetSize returns the number of keys in the partition.
	GetSize(name string) int

	// Clear removes all keys in the partition. The partition itself persists.
	Clear(name string)

	// GetAll returns a snapshot of all entries in the partition, ordered by first insertion.
	GetAll(name string) []Entry

	// Get retrieves a value by its key.
	// It returns false if the key is not found.
	Get(name, key string) (string, bool)

	// Set stores the value under key and returns the stored value.
	// If the key already exists, it overwrites the existing value.
	Set(name, key, value string) string

	// Delete removes the key from the partition. Deleting an absent key is not an error.
	Delete(name, key string)
}
