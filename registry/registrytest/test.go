// registrytest package provides generic test cases for store registry implementations.
package registrytest

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	cacherepository "github.com/karupanerura/cache-repository"
	"golang.org/x/sync/errgroup"
)

// Provider creates a fresh registry and a function that releases it.
type Provider func() (cacherepository.StoreRegistry, func())

// BenchmarkSet benchmarks the Set method of the registry.
func BenchmarkSet(b *testing.B, registry cacherepository.StoreRegistry, names []string) {
	for _, name := range names {
		registry.RegisterStore(name)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		registry.Set(names[i%len(names)], strconv.Itoa(i%1024), "value")
	}
}

// TestAll runs every test case of this package.
func TestAll(t *testing.T, provider Provider) {
	TestRegisterStore(t, provider)
	TestSetAndGet(t, provider)
	TestOrder(t, provider)
	TestClear(t, provider)
	TestIsolation(t, provider)
	TestConsistency(t, provider)
}

// TestRegisterStore tests that registration is idempotent.
func TestRegisterStore(t *testing.T, provider Provider) {
	t.Run("RegisterStore", func(t *testing.T) {
		t.Parallel()

		registry, release := provider()
		defer release()

		registry.RegisterStore("users")
		if size := registry.GetSize("users"); size != 0 {
			t.Errorf("new store must be empty, got size=%d", size)
		}

		registry.Set("users", "1", "alice")
		registry.RegisterStore("users")
		if value, ok := registry.Get("users", "1"); !ok || value != "alice" {
			t.Errorf("registering again must keep entries, got (%q, %v)", value, ok)
		}
	})
}

// TestSetAndGet tests the basic read and write operations.
func TestSetAndGet(t *testing.T, provider Provider) {
	t.Run("SetAndGet", func(t *testing.T) {
		t.Parallel()

		registry, release := provider()
		defer release()
		registry.RegisterStore("users")

		if value, ok := registry.Get("users", "1"); ok || value != "" {
			t.Errorf("should not exist, got (%q, %v)", value, ok)
		}

		if stored := registry.Set("users", "1", "alice"); stored != "alice" {
			t.Errorf("Set must echo the stored value, got %q", stored)
		}
		if value, ok := registry.Get("users", "1"); !ok || value != "alice" {
			t.Errorf("got (%q, %v), want (alice, true)", value, ok)
		}

		registry.Set("users", "1", "bob")
		if value, ok := registry.Get("users", "1"); !ok || value != "bob" {
			t.Errorf("got (%q, %v), want (bob, true)", value, ok)
		}
		if size := registry.GetSize("users"); size != 1 {
			t.Errorf("overwrite must not grow the store, got size=%d", size)
		}

		registry.Set("users", "empty", "")
		if value, ok := registry.Get("users", "empty"); !ok || value != "" {
			t.Errorf("empty value must be found, got (%q, %v)", value, ok)
		}

		registry.Delete("users", "1")
		if _, ok := registry.Get("users", "1"); ok {
			t.Error("deleted key should not exist")
		}
		registry.Delete("users", "1")
		registry.Delete("users", "never-set")
		if size := registry.GetSize("users"); size != 1 {
			t.Errorf("got size=%d, want 1", size)
		}
	})
}

// TestOrder tests that snapshots keep the first-insertion order.
func TestOrder(t *testing.T, provider Provider) {
	t.Run("Order", func(t *testing.T) {
		t.Parallel()

		registry, release := provider()
		defer release()
		registry.RegisterStore("users")

		if df := cmp.Diff([]cacherepository.Entry{}, registry.GetAll("users")); df != "" {
			t.Errorf("empty snapshot diff=%s", df)
		}

		registry.Set("users", "c", "3")
		registry.Set("users", "a", "1")
		registry.Set("users", "b", "2")
		registry.Set("users", "c", "33")
		registry.Delete("users", "a")
		registry.Set("users", "a", "11")

		want := []cacherepository.Entry{
			{Key: "c", Value: "33"},
			{Key: "b", Value: "2"},
			{Key: "a", Value: "11"},
		}
		snapshot := registry.GetAll("users")
		if df := cmp.Diff(want, snapshot); df != "" {
			t.Errorf("snapshot diff=%s", df)
		}

		registry.Set("users", "d", "4")
		if df := cmp.Diff(want, snapshot); df != "" {
			t.Errorf("snapshot must not change after later writes, diff=%s", df)
		}
	})
}

// TestClear tests that Clear removes all keys and keeps the store usable.
func TestClear(t *testing.T, provider Provider) {
	t.Run("Clear", func(t *testing.T) {
		t.Parallel()

		registry, release := provider()
		defer release()
		registry.RegisterStore("users")

		for i := range 10 {
			registry.Set("users", strconv.Itoa(i), "v")
		}
		if size := registry.GetSize("users"); size != 10 {
			t.Fatalf("got size=%d, want 10", size)
		}

		registry.Clear("users")
		if size := registry.GetSize("users"); size != 0 {
			t.Errorf("got size=%d after clear, want 0", size)
		}
		if df := cmp.Diff([]cacherepository.Entry{}, registry.GetAll("users")); df != "" {
			t.Errorf("snapshot after clear diff=%s", df)
		}

		registry.Set("users", "1", "alice")
		if value, ok := registry.Get("users", "1"); !ok || value != "alice" {
			t.Errorf("store must persist after clear, got (%q, %v)", value, ok)
		}
	})
}

// TestIsolation tests that stores with different names do not share entries.
func TestIsolation(t *testing.T, provider Provider) {
	t.Run("Isolation", func(t *testing.T) {
		t.Parallel()

		registry, release := provider()
		defer release()

		names := []string{"users", "groups", "sessions", "flags"}
		for _, name := range names {
			registry.RegisterStore(name)
			registry.Set(name, "key", name)
		}

		registry.Clear("groups")
		for _, name := range names {
			value, ok := registry.Get(name, "key")
			if name == "groups" {
				if ok {
					t.Errorf("cleared store %s must be empty", name)
				}
				continue
			}
			if !ok || value != name {
				t.Errorf("store %s got (%q, %v), want (%q, true)", name, value, ok, name)
			}
		}
	})
}

// TestConsistency tests concurrent access across stores and keys.
func TestConsistency(t *testing.T, provider Provider) {
	t.Run("Consistency", func(t *testing.T) {
		t.Parallel()

		registry, release := provider()
		defer release()

		type pattern struct {
			name, key, value string
		}
		var patterns []pattern
		for s := range 8 {
			for k := range 16 {
				patterns = append(patterns, pattern{
					name:  fmt.Sprintf("store-%d", s),
					key:   strconv.Itoa(k),
					value: fmt.Sprintf("%d-%d", s, k),
				})
			}
		}
		rand.Shuffle(len(patterns), func(i, j int) {
			patterns[i], patterns[j] = patterns[j], patterns[i]
		})

		var eg errgroup.Group
		for _, p := range patterns {
			p := p
			eg.Go(func() error {
				registry.RegisterStore(p.name)
				if stored := registry.Set(p.name, p.key, p.value); stored != p.value {
					return fmt.Errorf("store %s key %s: unexpected echo %q", p.name, p.key, stored)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		eg = errgroup.Group{}
		for _, p := range patterns {
			p := p
			eg.Go(func() error {
				value, ok := registry.Get(p.name, p.key)
				if !ok || value != p.value {
					return fmt.Errorf("store %s key %s: got (%q, %v), want %q", p.name, p.key, value, ok, p.value)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		for s := range 8 {
			name := fmt.Sprintf("store-%d", s)
			if size := registry.GetSize(name); size != 16 {
				t.Errorf("store %s got size=%d, want 16", name, size)
			}
		}
	})
}
