package trie

import "github.com/hattriego/hattrie/internal/arrayhash"

// newHashNode allocates a hash node whose inner array-hash starts
// with roughly `sizeHint` buckets. sizeHint is only a lower bound the
// growth policy rounds up from; callers pass 0 for the library
// default.
func newHashNode[V any](opts arrayhash.Options, sizeHint int) *hashNode[V] {
	h := &hashNode[V]{table: arrayhash.New[V](opts)}
	if sizeHint > 0 {
		_ = h.table.Rehash(sizeHint)
	}
	return h
}

// histogramBucketCount sizes a child hash node receiving hist[c]
// suffixes during a burst: ceil((hist[c] + 16) / max_load_factor)
// buckets, leaving headroom so the new node doesn't rehash immediately.
func histogramBucketCount(count int, maxLoadFactor float64) int {
	if maxLoadFactor <= 0 {
		maxLoadFactor = 8.0
	}
	n := float64(count+16) / maxLoadFactor
	i := int(n)
	if float64(i) < n {
		i++
	}
	if i < 1 {
		i = 1
	}
	return i
}
