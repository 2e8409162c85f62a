package keyhash

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sync"

	"github.com/goccy/go-reflect"
)

// hashFuncs caches the hash function per key type name.
var hashFuncs sync.Map

// For returns a hash function for keys of type K.
// The function is created once per type and shared afterwards.
// Keys of string, signed and unsigned integer kinds are supported, including named types
// derived from them. The returned hash is never negative.
func For[K comparable]() func(K) int {
	var zero K
	typ := reflect.TypeOf(zero)
	if typ == nil {
		panic("interface key types cannot be hashed")
	}

	name := typ.String()
	if f, ok := hashFuncs.Load(name); ok {
		return f.(func(K) int)
	}

	f, _ := hashFuncs.LoadOrStore(name, create[K](typ.Kind()))
	return f.(func(K) int)
}

func create[K comparable](kind reflect.Kind) func(K) int {
	switch kind {
	case reflect.String:
		return func(key K) int {
			return sum([]byte(reflect.ValueOf(key).String()))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(key K) int {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(reflect.ValueOf(key).Int()))
			return sum(b[:])
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(key K) int {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], reflect.ValueOf(key).Uint())
			return sum(b[:])
		}
	default:
		panic(fmt.Sprintf("unsupported key kind: %s", kind))
	}
}

// sum computes a 64-bit FNV-1a hash folded into a non-negative int.
func sum(b []byte) int {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return int(h.Sum64() & math.MaxInt)
}
