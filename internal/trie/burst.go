package trie

import "github.com/hattriego/hattrie/internal/arrayhash"

// burst converts an overfull hash node into a trie node: given a hash
// node whose array-hash holds N suffixes, it builds a replacement trie
// node whose children partition those suffixes by first byte, sized
// by a first-byte histogram. The original hash node h is only read,
// never mutated — burst builds the new structure in a scratch trieNode
// and the caller commits it by swapping the parent's child slot, so
// burst either completes entirely or leaves the original hash node
// untouched. Go has no throwing moves, so this always copies into a
// scratch structure and commits by swap rather than trying to move
// entries in place — reads from h.table happen before anything is
// linked into the live tree.
func burst[V any](h *hashNode[V], opts arrayhash.Options, maxLoadFactor float64, burstThreshold int) (*trieNode[V], error) {
	hist, _ := h.table.HistogramFirstByte()

	nt := &trieNode[V]{}
	childOpts := opts

	var insertErr error
	h.table.ForEach(func(suffix []byte, value V) bool {
		if len(suffix) == 0 {
			nt.hasValue = true
			nt.value = value
			return true
		}
		c := suffix[0]
		child := nt.children[c]
		if child == nil {
			hn := newHashNode[V](childOpts, histogramBucketCount(hist[c], maxLoadFactor))
			child = wrapHash(hn)
			nt.setChild(c, child)
		}
		if _, err := child.h.table.Insert(suffix[1:], value); err != nil {
			insertErr = err
			return false
		}
		return true
	})
	if insertErr != nil {
		return nil, insertErr
	}

	// Recursively burst any child that the histogram concentrated past
	// threshold: a skewed key set can put every suffix under one byte.
	for c := 0; c < 256; c++ {
		child := nt.children[c]
		if child == nil || !child.isHash() {
			continue
		}
		if child.h.table.Len() < burstThreshold {
			continue
		}
		childTrie, err := burst(child.h, opts, maxLoadFactor, burstThreshold)
		if err != nil {
			return nil, err
		}
		nt.setChild(byte(c), wrapTrie(childTrie))
	}

	return nt, nil
}
