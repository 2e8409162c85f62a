package cacherepository

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ResultKind tells how a typed read was resolved.
type ResultKind uint8

const (
	// Miss means the key is absent, the repository is disabled, or the payload did not parse and
	// the raw fallback was not requested.
	Miss ResultKind = iota
	// HitParsed means the payload was parsed into Value.
	HitParsed
	// HitRaw means the payload did not parse; Raw holds it unparsed and Value is the zero value.
	HitRaw
)

func (k ResultKind) String() string {
	switch k {
	case Miss:
		return "Miss"
	case HitParsed:
		return "HitParsed"
	case HitRaw:
		return "HitRaw"
	default:
		return fmt.Sprintf("ResultKind(%d)", uint8(k))
	}
}

// Result is the outcome of a typed read.
type Result[T any] struct {
	Kind ResultKind

	// Value is the parsed value. It is set only for HitParsed.
	Value T

	// Raw is the stored payload. It is set for HitParsed and HitRaw.
	Raw string
}

// Found reports whether the key was present, parsed or not.
func (r Result[T]) Found() bool {
	return r.Kind != Miss
}

// Parsed returns the parsed value and whether there was one.
func (r Result[T]) Parsed() (T, bool) {
	return r.Value, r.Kind == HitParsed
}

func resolveParsed[T any](raw string, value T, err error, allowRaw bool) Result[T] {
	if err == nil {
		return Result[T]{Kind: HitParsed, Value: value, Raw: raw}
	}
	if allowRaw {
		return Result[T]{Kind: HitRaw, Raw: raw}
	}
	return Result[T]{Kind: Miss}
}

// GetCachedValueJSON reads key and decodes the payload as JSON into T.
// If the payload is not valid JSON for T, the result is HitRaw when allowRaw is set and Miss otherwise.
func GetCachedValueJSON[T any](r *Repository, key string, allowRaw bool) Result[T] {
	raw, ok := r.GetCachedValue(key)
	if !ok {
		return Result[T]{Kind: Miss}
	}

	var value T
	err := json.Unmarshal([]byte(raw), &value)
	return resolveParsed(raw, value, err, allowRaw)
}

// SetCachedValueJSON encodes value as JSON and stores it under key.
// It returns the given value and true once stored, or the zero value and false when the
// repository is disabled. Nothing is stored if encoding fails.
func SetCachedValueJSON[T any](r *Repository, key string, value T) (T, bool, error) {
	var zero T
	if r.disabled {
		return zero, false, nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return zero, false, fmt.Errorf("%w: store %q key %q: %w", ErrEncode, r.name, key, err)
	}
	r.registry.Set(r.name, key, string(b))
	return value, true, nil
}

// GetCachedValueOrCacheNewValueJSON returns the cached value for key decoded as T,
// or stores value on a miss. A payload that does not decode as T counts as a miss and is overwritten.
// Like GetCachedValueOrCacheNewValue, the read and the write are not atomic.
func GetCachedValueOrCacheNewValueJSON[T any](r *Repository, key string, value T) (T, bool, error) {
	if cached, ok := GetCachedValueJSON[T](r, key, false).Parsed(); ok {
		return cached, true, nil
	}
	return SetCachedValueJSON(r, key, value)
}

// GetCachedValueNumber reads key and parses the payload as a number.
// Parsing is locale-invariant and lenient like a leading-prefix float parse: "12.5px" is 12.5.
// A payload without a numeric prefix, or one that parses to NaN, is a parse failure;
// the result is then HitRaw when allowRaw is set and Miss otherwise.
func (r *Repository) GetCachedValueNumber(key string, allowRaw bool) Result[float64] {
	raw, ok := r.GetCachedValue(key)
	if !ok {
		return Result[float64]{Kind: Miss}
	}

	value, err := parseNumber(raw)
	return resolveParsed(raw, value, err, allowRaw)
}

// SetCachedValueNumber stores n in its shortest decimal form under key.
// It returns n and true once stored, or 0 and false when the repository is disabled.
func (r *Repository) SetCachedValueNumber(key string, n float64) (float64, bool) {
	if _, ok := r.SetCachedValue(key, formatNumber(n)); !ok {
		return 0, false
	}
	return n, true
}

var (
	errNotANumber = errors.New("not a number")

	numberPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)
)

func parseNumber(raw string) (float64, error) {
	prefix := numberPrefix.FindString(strings.TrimLeft(raw, " \t\n\v\f\r"))
	if prefix == "" {
		return math.NaN(), errNotANumber
	}

	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN(), errNotANumber
	}
	if math.IsNaN(n) {
		return n, errNotANumber
	}
	return n, nil
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}
