package trie

import "github.com/hattriego/hattrie/internal/arrayhash"

// Cursor is a forward-only position in the trie's in-order walk.
// Exactly one of curTrie/curHash is non-nil while the cursor is valid;
// both nil means end(). Ancestor links are read straight off the node
// graph (no separate path stack): advance ascends via parent pointers.
type Cursor[V any] struct {
	tr *Trie[V]

	curTrie *trieNode[V]
	curHash *hashNode[V]
	hashIt  *arrayhash.Iterator[V]
	hashKey []byte
	hashVal V

	// ceiling bounds ascent for a prefix-range cursor rooted at a trie
	// node: advance never climbs past it. Nil means unbounded (whole-
	// trie iteration).
	ceiling *trieNode[V]

	// boundaryIsHash marks a prefix-range cursor whose entire range is
	// the filtered contents of one hash node (the prefix was consumed
	// partway through that node's suffixes).
	boundaryIsHash bool
	ceilingHash    *hashNode[V]
	filter         []byte

	// oneShot marks a cursor built by EqualRange: its range holds at
	// most one element no matter what the underlying node looks like,
	// so Advance goes straight to end instead of consulting children,
	// siblings, or the rest of the hash node.
	oneShot bool
}

// Begin returns a cursor at the first key in iteration order, or an
// end cursor if the trie is empty.
func (tr *Trie[V]) Begin() *Cursor[V] {
	c := &Cursor[V]{tr: tr}
	if tr.root == nil {
		return c
	}
	c.descendInto(tr.root)
	return c
}

// End returns the past-the-end cursor.
func (tr *Trie[V]) End() *Cursor[V] {
	return &Cursor[V]{tr: tr}
}

// Valid reports whether the cursor is positioned on a key.
func (c *Cursor[V]) Valid() bool {
	return c.curTrie != nil || c.curHash != nil
}

// Value returns the value at the cursor's current position.
func (c *Cursor[V]) Value() V {
	if c.curTrie != nil {
		return c.curTrie.value
	}
	return c.hashVal
}

// Key reconstructs the full key at the cursor's current position by
// walking in-edges up to the root and, for a hash-node position,
// appending the array-hash entry's own bytes.
func (c *Cursor[V]) Key() []byte {
	if !c.Valid() {
		return nil
	}
	var start *node[V]
	if c.curTrie != nil {
		start = wrapTrie(c.curTrie)
	} else {
		start = wrapHash(c.curHash)
	}
	edges := edgesUpFrom(start)
	reverseBytes(edges)
	if c.curHash != nil {
		return append(edges, c.hashKey...)
	}
	return edges
}

// Equal reports whether two cursors denote the same position. It
// compares only the live position, not bookkeeping fields like ceiling
// or filter.
func (c *Cursor[V]) Equal(o *Cursor[V]) bool {
	if c.curTrie != o.curTrie || c.curHash != o.curHash {
		return false
	}
	if c.curHash != nil {
		return arrayhash.BytesEqual(c.hashKey, o.hashKey)
	}
	return true
}

// Advance moves the cursor to the next position in iteration order,
// or to end() if none remains.
func (c *Cursor[V]) Advance() {
	if c.oneShot {
		c.setEnd()
		return
	}
	if c.curTrie != nil {
		_, child := c.curTrie.firstChild()
		if child != nil {
			c.descendInto(child)
			return
		}
		nxt := c.tr.ascend(wrapTrie(c.curTrie), c.ceiling)
		c.landOn(nxt)
		return
	}
	if c.curHash == nil {
		return
	}
	if c.hashIt == nil {
		// A positional cursor from find/LongestPrefix never called
		// NewIterator; advancing it has no defined successor.
		c.setEnd()
		return
	}
	for {
		k, v, ok := c.hashIt.Next()
		if !ok {
			break
		}
		if c.matchesFilterFor(c.curHash, k) {
			c.hashKey, c.hashVal = append([]byte(nil), k...), v
			return
		}
	}
	if c.boundaryIsHash {
		c.setEnd()
		return
	}
	nxt := c.tr.ascend(wrapHash(c.curHash), c.ceiling)
	c.landOn(nxt)
}

// descendInto walks down from n until it lands on an emitting
// position: a trie node with a value, or a hash node's first
// (filter-matching) entry. It falls back to ascend() when n's subtree
// has nothing to emit, which should only happen defensively — a
// well-formed trie never has an empty subtree reachable from a live
// node.
func (c *Cursor[V]) descendInto(n *node[V]) {
	for {
		if n.isHash() {
			hn := n.h
			c.curHash = hn
			c.curTrie = nil
			c.hashIt = hn.table.NewIterator()
			for {
				k, v, ok := c.hashIt.Next()
				if !ok {
					if c.boundaryIsHash {
						c.setEnd()
						return
					}
					nxt := c.tr.ascend(n, c.ceiling)
					c.landOn(nxt)
					return
				}
				if c.matchesFilterFor(hn, k) {
					c.hashKey, c.hashVal = append([]byte(nil), k...), v
					return
				}
			}
		}

		tn := n.t
		if tn.hasValue {
			c.curTrie = tn
			c.curHash = nil
			return
		}
		_, child := tn.firstChild()
		if child == nil {
			nxt := c.tr.ascend(n, c.ceiling)
			c.landOn(nxt)
			return
		}
		n = child
	}
}

func (c *Cursor[V]) landOn(n *node[V]) {
	if n == nil {
		c.setEnd()
		return
	}
	c.descendInto(n)
}

func (c *Cursor[V]) matchesFilterFor(hn *hashNode[V], key []byte) bool {
	if !c.boundaryIsHash || hn != c.ceilingHash {
		return true
	}
	return hasPrefix(key, c.filter)
}

func (c *Cursor[V]) setEnd() {
	c.curTrie = nil
	c.curHash = nil
	c.hashIt = nil
	c.hashKey = nil
}

// ascend climbs from n through parent links looking for the next
// sibling at each level (in child-index order), stopping at ceiling
// (exclusive) or the true root. ceiling itself is never ascended past:
// if n has already reached ceiling, its siblings lie outside the
// bounded subtree, so ascend must return before consulting ceiling's
// parent for them.
func (tr *Trie[V]) ascend(n *node[V], ceiling *trieNode[V]) *node[V] {
	for {
		if ceiling != nil && n.isTrie() && n.t == ceiling {
			return nil
		}
		p := n.parent()
		if p == nil {
			return nil
		}
		edge, _ := n.inEdge()
		if _, sib := p.nextChildAfter(int(edge)); sib != nil {
			return sib
		}
		n = wrapTrie(p)
	}
}

// edgesUpFrom collects the in-edge bytes from n up to (but not
// including) the root, in leaf-to-root order.
func edgesUpFrom[V any](n *node[V]) []byte {
	var edges []byte
	cur := n
	for {
		p := cur.parent()
		if p == nil {
			return edges
		}
		edge, _ := cur.inEdge()
		edges = append(edges, edge)
		cur = wrapTrie(p)
	}
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
