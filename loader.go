package cacherepository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-reflect"
)

// GetOrLoad returns the cached value for key, or calls load on a miss and stores its result.
// Concurrent misses on the same key of this repository share a single load call.
// If load fails, the error is returned and nothing is stored.
// A disabled repository calls load every time and stores nothing.
//
// The shared load receives the values of the first caller's context but not its cancellation.
// A caller whose ctx is done stops waiting and gets ctx.Err(); the load keeps running for the others.
func (r *Repository) GetOrLoad(ctx context.Context, key string, load func(context.Context) (string, error)) (string, error) {
	if r.disabled {
		return load(ctx)
	}
	if cached, ok := r.registry.Get(r.name, key); ok {
		return cached, nil
	}

	return r.shareLoad(ctx, "raw\x00"+key, func(ctx context.Context) (string, error) {
		if cached, ok := r.registry.Get(r.name, key); ok {
			return cached, nil
		}
		value, err := load(ctx)
		if err != nil {
			return "", err
		}
		return r.registry.Set(r.name, key, value), nil
	})
}

// GetOrLoadJSON is the JSON variant of GetOrLoad.
// A cached payload that does not decode as T counts as a miss.
// Only callers loading the same T share a load call.
func GetOrLoadJSON[T any](ctx context.Context, r *Repository, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if r.disabled {
		return load(ctx)
	}
	if cached, ok := GetCachedValueJSON[T](r, key, false).Parsed(); ok {
		return cached, nil
	}

	typ := reflect.TypeOf((*T)(nil)).Elem().String()
	raw, err := r.shareLoad(ctx, "json\x00"+typ+"\x00"+key, func(ctx context.Context) (string, error) {
		if result := GetCachedValueJSON[T](r, key, false); result.Kind == HitParsed {
			return result.Raw, nil
		}
		value, err := load(ctx)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("%w: store %q key %q: %w", ErrEncode, r.name, key, err)
		}
		return r.registry.Set(r.name, key, string(b)), nil
	})
	if err != nil {
		return zero, err
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return zero, fmt.Errorf("store %q key %q: %w", r.name, key, err)
	}
	return value, nil
}

// shareLoad runs fn once per flight key among concurrent callers and waits for it until ctx is done.
func (r *Repository) shareLoad(ctx context.Context, flightKey string, fn func(context.Context) (string, error)) (string, error) {
	loadCtx := context.WithoutCancel(ctx)
	ch := r.loads.DoChan(flightKey, func() (any, error) {
		return fn(loadCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}
