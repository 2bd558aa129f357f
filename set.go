package hattrie

import "github.com/hattriego/hattrie/internal/trie"

// Set is an ordered-by-key, prefix-capable string-keyed set. It
// instantiates the engine's generic node types with V = struct{}: no
// value vector is ever touched (internal/trie.Config.HasValue is
// false), so a Set costs no more than the bare trie/bucket structure.
type Set struct {
	t *trie.Trie[struct{}]
}

// NewSet constructs an empty set.
func NewSet(opts ...Option) *Set {
	cfg := newConfig(opts...)
	return &Set{t: trie.New[struct{}](cfg.trieConfig(false))}
}

// NewSetFrom constructs a set pre-loaded with the given keys.
func NewSetFrom(keys []string, opts ...Option) *Set {
	s := NewSet(opts...)
	for _, k := range keys {
		_, _ = s.Insert([]byte(k))
	}
	return s
}

func (s *Set) Len() int          { return s.t.Len() }
func (s *Set) Empty() bool       { return s.t.Empty() }
func (s *Set) MaxKeySize() int   { return s.t.MaxKeyLen() }
func (s *Set) Clear()            { s.t.Clear() }

// Stats reports the set's current size and construction-time
// configuration.
func (s *Set) Stats() Stats { return s.t.Stats() }

func (s *Set) BurstThreshold() int     { return s.t.BurstThreshold() }
func (s *Set) SetBurstThreshold(n int) { s.t.SetBurstThreshold(n) }

func (s *Set) MaxLoadFactor() float64     { return s.t.MaxLoadFactor() }
func (s *Set) SetMaxLoadFactor(f float64) { s.t.SetMaxLoadFactor(f) }

// Insert adds key, reporting whether it was already present.
func (s *Set) Insert(key []byte) (existed bool, err error) {
	return s.t.Insert(key, struct{}{})
}

// InsertWithPrefix inserts prefix+suffix for every suffix in suffixes,
// a bulk-insert helper for keys sharing a common prefix.
func (s *Set) InsertWithPrefix(prefix []byte, suffixes [][]byte) error {
	for _, suf := range suffixes {
		key := make([]byte, 0, len(prefix)+len(suf))
		key = append(key, prefix...)
		key = append(key, suf...)
		if _, err := s.t.Insert(key, struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether key is present.
func (s *Set) Contains(key []byte) bool {
	_, ok := s.t.Find(key)
	return ok
}

// Count returns 1 if key is present, else 0.
func (s *Set) Count(key []byte) int { return s.t.Count(key) }

// EqualRange returns [begin, end) bounding key's position: a cursor
// pair of length 1 if key is present, length 0 otherwise.
func (s *Set) EqualRange(key []byte) (*Cursor[struct{}], *Cursor[struct{}]) {
	return s.t.EqualRange(key)
}

// Erase removes key, reporting whether it was present.
func (s *Set) Erase(key []byte) bool { return s.t.EraseKey(key) }

// ErasePrefix removes every key starting with prefix and returns how
// many were removed.
func (s *Set) ErasePrefix(prefix []byte) int { return s.t.ErasePrefix(prefix) }

// LongestPrefix returns a cursor at the stored key of maximum length
// that is a prefix of key, or an end cursor if none matches.
func (s *Set) LongestPrefix(key []byte) (*Cursor[struct{}], bool) {
	return s.t.LongestPrefix(key)
}

// PrefixRange returns [begin, end) enumerating every key starting
// with prefix.
func (s *Set) PrefixRange(prefix []byte) (*Cursor[struct{}], *Cursor[struct{}]) {
	return s.t.PrefixRange(prefix)
}

func (s *Set) Begin() *Cursor[struct{}] { return s.t.Begin() }
func (s *Set) End() *Cursor[struct{}]   { return s.t.End() }

// Equal reports content equality: same size and every key in one set
// present in the other.
func (s *Set) Equal(other *Set) bool {
	if s.t.Len() != other.t.Len() {
		return false
	}
	for c := s.t.Begin(); c.Valid(); c.Advance() {
		if !other.Contains(c.Key()) {
			return false
		}
	}
	return true
}

// ForEach calls fn for every key in iteration order, stopping early if
// fn returns false.
func (s *Set) ForEach(fn func(key []byte) bool) {
	for c := s.t.Begin(); c.Valid(); c.Advance() {
		if !fn(c.Key()) {
			return
		}
	}
}
