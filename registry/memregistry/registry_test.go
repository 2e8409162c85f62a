package memregistry_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/cache-repository/registry/memregistry"
)

func TestRegistry_UnregisteredStore(t *testing.T) {
	t.Parallel()

	registry := memregistry.New()

	if size := registry.GetSize("missing"); size != 0 {
		t.Errorf("got size=%d, want 0", size)
	}
	if _, ok := registry.Get("missing", "key"); ok {
		t.Error("should not exist")
	}
	if entries := registry.GetAll("missing"); len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
	registry.Clear("missing")
	registry.Delete("missing", "key")
	if len(registry.Stores()) != 0 {
		t.Errorf("read operations must not register stores, got %v", registry.Stores())
	}

	registry.Set("implicit", "key", "value")
	if value, ok := registry.Get("implicit", "key"); !ok || value != "value" {
		t.Errorf("got (%q, %v), want (value, true)", value, ok)
	}
}

func TestRegistry_Stores(t *testing.T) {
	t.Parallel()

	registry := memregistry.New(memregistry.WithBucketsSize(3))
	for _, name := range []string{"users", "groups", "users", "sessions"} {
		registry.RegisterStore(name)
	}

	got := registry.Stores()
	slices.Sort(got)
	if df := cmp.Diff([]string{"groups", "sessions", "users"}, got); df != "" {
		t.Errorf("stores diff=%s", df)
	}
}
