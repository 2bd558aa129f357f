// Package trie implements the HAT-trie engine: a bounded-fanout
// (256-way) trie whose leaves are array-hash tables (internal/arrayhash).
// The public hattrie package is a thin façade over it.
package trie

import "github.com/hattriego/hattrie/internal/arrayhash"

// kind discriminates the two node shapes a child slot may hold. An
// adaptive radix tree typically dispatches on a node-type tag stored
// alongside an unsafe.Pointer; a HAT-trie has only two node shapes (a
// branching trie node and a leaf array-hash), so the tag is a plain
// two-value enum and the payload is two mutually exclusive typed
// pointers rather than an unsafe cast.
type kind uint8

const (
	kindTrie kind = iota
	kindHash
)

// node is the tagged variant every child slot and the trie root holds.
// Traversal code branches explicitly on kind; there is no dynamic
// dispatch of child-type-agnostic routines.
type node[V any] struct {
	kind kind
	t    *trieNode[V]
	h    *hashNode[V]
}

func wrapTrie[V any](t *trieNode[V]) *node[V] { return &node[V]{kind: kindTrie, t: t} }
func wrapHash[V any](h *hashNode[V]) *node[V] { return &node[V]{kind: kindHash, h: h} }

func (n *node[V]) isTrie() bool { return n != nil && n.kind == kindTrie }
func (n *node[V]) isHash() bool { return n != nil && n.kind == kindHash }

// inEdge returns the byte that led from this node's parent to it, and
// whether the node has a parent at all (false only at the root).
func (n *node[V]) inEdge() (byte, bool) {
	switch n.kind {
	case kindTrie:
		if n.t.parent == nil {
			return 0, false
		}
		return n.t.inEdge, true
	case kindHash:
		if n.h.parent == nil {
			return 0, false
		}
		return n.h.inEdge, true
	}
	return 0, false
}

// parent returns the owning trie node, or nil at the root. Parent
// links are weak: they exist only for cursor ascent and empty-node
// collapse and never confer ownership.
func (n *node[V]) parent() *trieNode[V] {
	switch n.kind {
	case kindTrie:
		return n.t.parent
	case kindHash:
		return n.h.parent
	}
	return nil
}

// trieNode is a fixed 256-way branching node with an optional value at
// the node itself (for the key that ends exactly here) and 256 child
// slots, each holding either a trieNode or a hashNode.
//
// Unlike an adaptive radix tree's node4/16/48/256 growth ladder, a
// HAT-trie's internal nodes never grow between fanout classes: they
// are always the full 256-slot table, because the compact-node
// optimization that a growth ladder provides is instead handled by
// the array-hash leaves. See DESIGN.md for the fuller rationale.
type trieNode[V any] struct {
	parent      *trieNode[V]
	inEdge      byte
	hasValue    bool
	value       V
	children    [256]*node[V]
	numChildren int
}

// hashNode is a leaf wrapper around an array-hash table, keyed by the
// suffix of the original key past this node's in-edge byte.
type hashNode[V any] struct {
	parent *trieNode[V]
	inEdge byte
	table  *arrayhash.Table[V]
}

// firstChild returns the lowest-indexed non-nil child and its index,
// or (nil, -1). Ties in iteration break by child-index order, the
// only ordering this container exposes.
func (tn *trieNode[V]) firstChild() (int, *node[V]) {
	for i := 0; i < 256; i++ {
		if tn.children[i] != nil {
			return i, tn.children[i]
		}
	}
	return -1, nil
}

// nextChildAfter returns the lowest-indexed non-nil child strictly
// after idx, or (nil, -1).
func (tn *trieNode[V]) nextChildAfter(idx int) (int, *node[V]) {
	for i := idx + 1; i < 256; i++ {
		if tn.children[i] != nil {
			return i, tn.children[i]
		}
	}
	return -1, nil
}

// empty reports whether this trie node is deletable: it carries no
// value and has no children. A reachable trie node should always have
// a value or a child; empty() is what detects the exception and
// triggers collapse.
func (tn *trieNode[V]) empty() bool {
	return !tn.hasValue && tn.numChildren == 0
}

// setChild installs child at slot c, re-parenting it (if it is a
// hashNode or trieNode) and bumping numChildren when the slot was
// previously empty.
func (tn *trieNode[V]) setChild(c byte, child *node[V]) {
	if tn.children[c] == nil && child != nil {
		tn.numChildren++
	} else if tn.children[c] != nil && child == nil {
		tn.numChildren--
	}
	tn.children[c] = child
	if child == nil {
		return
	}
	switch child.kind {
	case kindTrie:
		child.t.parent = tn
		child.t.inEdge = c
	case kindHash:
		child.h.parent = tn
		child.h.inEdge = c
	}
}
