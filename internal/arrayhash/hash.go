package arrayhash

import "hash/fnv"

// Hasher computes a 64-bit digest for a key. The default is FNV-1a,
// per spec: cheap, allocation-free, good enough distribution for
// bucket placement when paired with a power-of-two or mod growth
// policy.
type Hasher func(key []byte) uint64

// FNV1a is the library's default Hasher.
func FNV1a(key []byte) uint64 {
	h := fnv.New64a()
	// hash.Hash64's Write never errors.
	_, _ = h.Write(key)
	return h.Sum64()
}

// Equal compares two keys for equality. The default is a plain byte
// comparison; callers may plug in a case-insensitive or collation-aware
// variant.
type Equal func(a, b []byte) bool

// BytesEqual is the library's default Equal.
func BytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
