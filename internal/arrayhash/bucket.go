package arrayhash

import "encoding/binary"

// keySizeMax is the sentinel value (KeySize::MAX in spec terms) that
// terminates a bucket. KeySize is fixed at 16 bits: ample for the
// string keys this library targets, and it keeps entry headers small
// relative to typical bucket sizes.
const keySizeMax = 0xFFFF

// sentinelSize is the width in bytes of the terminating sentinel: one
// KeySize field equal to keySizeMax.
const sentinelSize = 2

// valueIndexSize is the width in bytes of a value-vector index stored
// inside a map-mode entry.
const valueIndexSize = 4

// MaxKeyLen returns the longest key a bucket configured with the given
// null-terminator policy can hold: keySizeMax - e - 1, leaving room for
// the sentinel and, when enabled, the extra null-terminator byte.
func MaxKeyLen(storeNullTerminator bool) int {
	e := 0
	if storeNullTerminator {
		e = 1
	}
	return keySizeMax - e - 1
}

// bucket is a packed variable-record byte buffer: a sequence of
// entries (length, key bytes, optional null pad, optional value
// index) terminated by a sentinel length of keySizeMax. An empty
// bucket is represented by a nil slice, never an allocated buffer
// holding only the sentinel — allocation is freed the moment
// compaction would otherwise leave it empty.
type bucket struct {
	buf []byte
}

// cursor addresses one entry (or the sentinel / end) inside a bucket
// by byte offset.
type cursor struct {
	offset int
}

func entrySize(keyLen int, e int, hasValue bool) int {
	n := 2 + keyLen + e
	if hasValue {
		n += valueIndexSize
	}
	return n
}

// decodeEntry reads the KeySize-prefixed entry at off, returning the
// key slice (aliasing buf), whether off was the sentinel, and the
// offset of the entry following this one. An unallocated (nil) bucket
// reads as a bare sentinel.
func (b *bucket) decodeEntry(off int, e int, hasValue bool) (key []byte, isSentinel bool, next int) {
	if off+2 > len(b.buf) {
		return nil, true, off
	}
	keyLen := int(binary.LittleEndian.Uint16(b.buf[off : off+2]))
	if keyLen == keySizeMax {
		return nil, true, off
	}
	keyStart := off + 2
	key = b.buf[keyStart : keyStart+keyLen]
	next = keyStart + keyLen + e
	if hasValue {
		next += valueIndexSize
	}
	return key, false, next
}

func (b *bucket) valueIndexAt(off int, e int, keyLen int) uint32 {
	start := off + 2 + keyLen + e
	return binary.LittleEndian.Uint32(b.buf[start : start+valueIndexSize])
}

func (b *bucket) setValueIndexAt(off int, e int, keyLen int, idx uint32) {
	start := off + 2 + keyLen + e
	binary.LittleEndian.PutUint32(b.buf[start:start+valueIndexSize], idx)
}

// findOrEnd linearly scans the bucket for key under the given equality
// predicate. On a hit it returns the entry's cursor and true; on a
// miss it returns a cursor positioned at the sentinel and false.
func (b *bucket) findOrEnd(key []byte, e int, hasValue bool, eq Equal) (cursor, bool) {
	if b.buf == nil {
		return cursor{offset: 0}, false
	}
	off := 0
	for {
		k, sentinel, next := b.decodeEntry(off, e, hasValue)
		if sentinel {
			return cursor{offset: off}, false
		}
		if eq(k, key) {
			return cursor{offset: off}, true
		}
		off = next
	}
}

// insertAt appends a new entry holding key (and, for maps, valueIndex)
// immediately before the sentinel, allocating or growing the backing
// buffer as needed. It returns a cursor to the newly inserted entry.
// Fails with ErrKeyTooLong if the key exceeds MaxKeyLen(storeNull).
func (b *bucket) insertAt(key []byte, e int, hasValue bool, valueIndex uint32, storeNull bool) (cursor, error) {
	if len(key) > MaxKeyLen(storeNull) {
		return cursor{}, ErrKeyTooLong
	}
	add := entrySize(len(key), e, hasValue)
	var at int
	if b.buf == nil {
		nb := make([]byte, add+sentinelSize)
		binary.LittleEndian.PutUint16(nb[add:add+2], keySizeMax)
		b.buf = nb
		at = 0
	} else {
		old := len(b.buf)
		nb := make([]byte, old+add)
		copy(nb, b.buf[:old-sentinelSize])
		at = old - sentinelSize
		copy(nb[old+add-sentinelSize:], b.buf[old-sentinelSize:])
		b.buf = nb
	}
	binary.LittleEndian.PutUint16(b.buf[at:at+2], uint16(len(key)))
	copy(b.buf[at+2:at+2+len(key)], key)
	if hasValue {
		binary.LittleEndian.PutUint32(b.buf[at+2+len(key)+e:at+2+len(key)+e+valueIndexSize], valueIndex)
	}
	return cursor{offset: at}, nil
}

// erase removes the entry at c, compacting the tail of the bucket
// leftward over the hole and preserving the terminating sentinel. If
// the bucket becomes empty its backing buffer is freed.
func (b *bucket) erase(c cursor, e int, hasValue bool) {
	_, sentinel, next := b.decodeEntry(c.offset, e, hasValue)
	if sentinel {
		return
	}
	removed := next - c.offset
	tail := len(b.buf) - next
	copy(b.buf[c.offset:], b.buf[next:])
	newLen := len(b.buf) - removed
	b.buf = b.buf[:newLen]
	_ = tail
	if newLen == sentinelSize {
		b.buf = nil
	}
}

// reserve one-shot sizes an empty bucket to hold exactly `bytes` bytes
// of entries plus the sentinel. Only valid on an empty bucket;
// callers must follow with appendInReservedNoCheck.
func (b *bucket) reserve(bytes int) {
	if b.buf != nil {
		panic("arrayhash: reserve called on non-empty bucket")
	}
	if bytes == 0 {
		return
	}
	nb := make([]byte, bytes+sentinelSize)
	binary.LittleEndian.PutUint16(nb[bytes:bytes+2], keySizeMax)
	b.buf = nb
}

// appendInReservedNoCheck appends key/value into space already set
// aside by reserve, without a duplicate check or reallocation. Used
// only during rehash.
func (b *bucket) appendInReservedNoCheck(at int, key []byte, e int, hasValue bool, valueIndex uint32) int {
	binary.LittleEndian.PutUint16(b.buf[at:at+2], uint16(len(key)))
	copy(b.buf[at+2:at+2+len(key)], key)
	if hasValue {
		binary.LittleEndian.PutUint32(b.buf[at+2+len(key)+e:at+2+len(key)+e+valueIndexSize], valueIndex)
	}
	return entrySize(len(key), e, hasValue)
}

// empty reports whether the bucket currently holds no entries.
func (b *bucket) empty() bool {
	return b.buf == nil
}

// forEach walks every live entry in order, calling fn with the key and
// (if hasValue) its value index. Stops early if fn returns false.
func (b *bucket) forEach(e int, hasValue bool, fn func(key []byte, valueIndex uint32) bool) {
	if b.buf == nil {
		return
	}
	off := 0
	for {
		k, sentinel, next := b.decodeEntry(off, e, hasValue)
		if sentinel {
			return
		}
		var vi uint32
		if hasValue {
			vi = b.valueIndexAt(off, e, len(k))
		}
		if !fn(k, vi) {
			return
		}
		off = next
	}
}
