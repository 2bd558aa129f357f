// Package hattrie is the public façade over the HAT-trie engine in
// internal/trie and internal/arrayhash: Map[V] and Set forward every
// operation and supply the default hash/comparator choices the core
// leaves to its caller.
package hattrie

import (
	"reflect"

	"github.com/hattriego/hattrie/internal/trie"
)

// Map is an ordered-by-key, prefix-capable string-keyed map.
type Map[V any] struct {
	t *trie.Trie[V]
}

// NewMap constructs an empty map. WithBurstThreshold/WithHasher and the
// other Options cover construction from a custom burst threshold or
// hasher; NewMapFrom covers construction from an initial set of
// (key, value) pairs.
func NewMap[V any](opts ...Option) *Map[V] {
	cfg := newConfig(opts...)
	return &Map[V]{t: trie.New[V](cfg.trieConfig(true))}
}

// NewMapFrom constructs a map pre-loaded with the given entries. The
// entries come from a Go map, so their keys are already unique.
func NewMapFrom[V any](entries map[string]V, opts ...Option) *Map[V] {
	m := NewMap[V](opts...)
	for k, v := range entries {
		_ = m.InsertOrAssign([]byte(k), v)
	}
	return m
}

// Len reports the number of keys stored.
func (m *Map[V]) Len() int { return m.t.Len() }

// Empty reports whether the map holds no keys.
func (m *Map[V]) Empty() bool { return m.t.Empty() }

// MaxKeySize reports the longest key this map's configuration accepts.
func (m *Map[V]) MaxKeySize() int { return m.t.MaxKeyLen() }

// BurstThreshold and SetBurstThreshold expose the hash-node burst size.
func (m *Map[V]) BurstThreshold() int     { return m.t.BurstThreshold() }
func (m *Map[V]) SetBurstThreshold(n int) { m.t.SetBurstThreshold(n) }

// MaxLoadFactor and SetMaxLoadFactor expose the array-hash rehash
// trigger.
func (m *Map[V]) MaxLoadFactor() float64     { return m.t.MaxLoadFactor() }
func (m *Map[V]) SetMaxLoadFactor(f float64) { m.t.SetMaxLoadFactor(f) }

// Clear drops every entry.
func (m *Map[V]) Clear() { m.t.Clear() }

// Stats reports the map's current size and construction-time
// configuration.
func (m *Map[V]) Stats() Stats { return m.t.Stats() }

// Insert stores key->value if key is absent. It reports whether key
// already existed; on a hit no modification is made.
func (m *Map[V]) Insert(key []byte, value V) (existed bool, err error) {
	return m.t.Insert(key, value)
}

// InsertOrAssign stores key->value, overwriting any existing value.
func (m *Map[V]) InsertOrAssign(key []byte, value V) error {
	return m.t.InsertOrAssign(key, value)
}

// GetOrInsertDefault returns the value stored at key, inserting the
// zero value of V first if key is absent. It never fails with
// ErrNotFound.
func (m *Map[V]) GetOrInsertDefault(key []byte) (V, error) {
	if v, ok := m.t.Find(key); ok {
		return v, nil
	}
	var zero V
	if _, err := m.t.Insert(key, zero); err != nil {
		var z V
		return z, err
	}
	return zero, nil
}

// At returns the value stored at key, or ErrNotFound if key is absent.
func (m *Map[V]) At(key []byte) (V, error) {
	v, ok := m.t.Find(key)
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return v, nil
}

// Find returns the value stored at key and whether key is present.
func (m *Map[V]) Find(key []byte) (V, bool) {
	return m.t.Find(key)
}

// Count returns 1 if key is present, else 0 (equal_range is always
// degenerate).
func (m *Map[V]) Count(key []byte) int {
	return m.t.Count(key)
}

// EqualRange returns [begin, end) bounding key's position: a cursor
// pair of length 1 if key is present, length 0 otherwise.
func (m *Map[V]) EqualRange(key []byte) (*Cursor[V], *Cursor[V]) {
	return m.t.EqualRange(key)
}

// Erase removes key, reporting whether it was present.
func (m *Map[V]) Erase(key []byte) bool {
	return m.t.EraseKey(key)
}

// ErasePrefix removes every key starting with prefix and returns how
// many were removed.
func (m *Map[V]) ErasePrefix(prefix []byte) int {
	return m.t.ErasePrefix(prefix)
}

// LongestPrefix returns a cursor at the stored key of maximum length
// that is a prefix of key, or an end cursor if none matches.
func (m *Map[V]) LongestPrefix(key []byte) (*Cursor[V], bool) {
	return m.t.LongestPrefix(key)
}

// PrefixRange returns [begin, end) enumerating every key starting
// with prefix.
func (m *Map[V]) PrefixRange(prefix []byte) (*Cursor[V], *Cursor[V]) {
	return m.t.PrefixRange(prefix)
}

// Begin returns a cursor at the first key in iteration order.
func (m *Map[V]) Begin() *Cursor[V] { return m.t.Begin() }

// End returns the past-the-end cursor.
func (m *Map[V]) End() *Cursor[V] { return m.t.End() }

// Equal reports content equality: same size, and every key in one map
// present in the other with an equal value. Values are
// compared with reflect.DeepEqual, the same mechanism testify's
// assert.Equal uses, since V carries no Equal method of its own.
func (m *Map[V]) Equal(other *Map[V]) bool {
	if m.t.Len() != other.t.Len() {
		return false
	}
	for c := m.t.Begin(); c.Valid(); c.Advance() {
		v2, ok := other.t.Find(c.Key())
		if !ok || !reflect.DeepEqual(c.Value(), v2) {
			return false
		}
	}
	return true
}

// ForEach calls fn for every key/value in iteration order, stopping
// early if fn returns false.
func (m *Map[V]) ForEach(fn func(key []byte, value V) bool) {
	for c := m.t.Begin(); c.Valid(); c.Advance() {
		if !fn(c.Key(), c.Value()) {
			return
		}
	}
}
