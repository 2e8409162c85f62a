package expiration

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownPolicy is returned when a value or name does not denote a known Policy.
var ErrUnknownPolicy = errors.New("unknown expiration policy")

// Policy is the store-wide expiration policy.
type Policy uint8

const (
	// DoNotCache disables caching: every read misses and every write is dropped.
	DoNotCache Policy = iota
	// NoReset keeps entries until they are removed or cleared explicitly.
	NoReset
	StaleAfterFiveSeconds
	StaleAfterTenSeconds
	StaleAfterThirtySeconds
	StaleAfterOneMinute
	StaleAfterTwoMinutes
	StaleAfterFiveMinutes
	StaleAfterTenMinutes
	StaleAfterFifteenMinutes
	StaleAfterThirtyMinutes
	StaleAfterOneHour

	policyCount
)

type policyDefinition struct {
	name     string
	interval Interval
}

var definitions = [policyCount]policyDefinition{
	DoNotCache:               {"DoNotCache", Disabled},
	NoReset:                  {"NoReset", Never},
	StaleAfterFiveSeconds:    {"StaleAfterFiveSeconds", Every(5 * time.Second)},
	StaleAfterTenSeconds:     {"StaleAfterTenSeconds", Every(10 * time.Second)},
	StaleAfterThirtySeconds:  {"StaleAfterThirtySeconds", Every(30 * time.Second)},
	StaleAfterOneMinute:      {"StaleAfterOneMinute", Every(time.Minute)},
	StaleAfterTwoMinutes:     {"StaleAfterTwoMinutes", Every(2 * time.Minute)},
	StaleAfterFiveMinutes:    {"StaleAfterFiveMinutes", Every(5 * time.Minute)},
	StaleAfterTenMinutes:     {"StaleAfterTenMinutes", Every(10 * time.Minute)},
	StaleAfterFifteenMinutes: {"StaleAfterFifteenMinutes", Every(15 * time.Minute)},
	StaleAfterThirtyMinutes:  {"StaleAfterThirtyMinutes", Every(30 * time.Minute)},
	StaleAfterOneHour:        {"StaleAfterOneHour", Every(time.Hour)},
}

// Policies returns all known policies in declaration order.
func Policies() []Policy {
	policies := make([]Policy, policyCount)
	for i := range policies {
		policies[i] = Policy(i)
	}
	return policies
}

// Valid reports whether p is one of the declared policies.
func (p Policy) Valid() bool {
	return p < policyCount
}

// Interval resolves the policy to its refresh interval.
// An unknown policy resolves to Never and ok is false, so callers can reject it.
func (p Policy) Interval() (interval Interval, ok bool) {
	if !p.Valid() {
		return Never, false
	}
	return definitions[p].interval, true
}

// String returns the policy name, e.g. "StaleAfterFiveMinutes".
func (p Policy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
	return definitions[p].name
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, uint8(p))
	}
	return []byte(definitions[p].name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePolicy parses a policy name.
// Matching ignores case, hyphens, underscores and spaces, so "stale-after-one-hour" is accepted.
func ParsePolicy(name string) (Policy, error) {
	normalized := normalizeName(name)
	for i, def := range definitions {
		if normalizeName(def.name) == normalized {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}
