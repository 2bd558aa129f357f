package arrayhash

// valueSlot holds one element of the value vector. Erasure tombstones
// a slot in place (map values aren't physically removed on erase; only
// the bucket entry is) so that live indices already recorded in other
// buckets stay valid until the next compaction.
type valueSlot[V any] struct {
	value      V
	tombstoned bool
}

// Options configures a Table's behavior: hashing, equality, bucket
// growth, and the load factor that triggers a rehash.
type Options struct {
	Hasher              Hasher
	Equal               Equal
	GrowthPolicy        GrowthPolicy
	MaxLoadFactor       float64
	StoreNullTerminator bool
	HasValue            bool
}

func (o Options) withDefaults() Options {
	if o.Hasher == nil {
		o.Hasher = FNV1a
	}
	if o.Equal == nil {
		o.Equal = BytesEqual
	}
	if o.GrowthPolicy == nil {
		o.GrowthPolicy = DefaultGrowthPolicy()
	}
	if o.MaxLoadFactor <= 0 {
		o.MaxLoadFactor = 8.0
	}
	return o
}

// compactRatio is the live/stored ratio below which Erase opportunistically
// compacts the value vector.
const compactRatio = 0.6

// rehashCompactRatio is the (looser) ratio that also triggers an
// opportunistic compaction during Rehash.
const rehashCompactRatio = 0.9

// compactMinElements guards small tables from needless compaction churn.
const compactMinElements = 16

// Table is an open-addressed-of-buckets array-hash. Each bucket
// resolves its own collisions by linear in-bucket scan; Table only
// decides which bucket a key lands in and manages the value vector for
// map mode.
type Table[V any] struct {
	opts        Options
	buckets     []bucket
	values      []valueSlot[V]
	nbElements  int
	liveValues  int
	storeNullE  int
}

// New constructs an empty array-hash table.
func New[V any](opts Options) *Table[V] {
	opts = opts.withDefaults()
	e := 0
	if opts.StoreNullTerminator {
		e = 1
	}
	return &Table[V]{opts: opts, storeNullE: e}
}

// Len reports the number of live keys.
func (t *Table[V]) Len() int { return t.nbElements }

// Empty reports whether the table holds no keys.
func (t *Table[V]) Empty() bool { return t.nbElements == 0 }

func (t *Table[V]) loadFactor() float64 {
	if len(t.buckets) == 0 {
		return 0
	}
	return float64(t.nbElements) / float64(len(t.buckets))
}

func (t *Table[V]) bucketIndex(hash uint64) int {
	if len(t.buckets) == 0 {
		return 0
	}
	return t.opts.GrowthPolicy.BucketForHash(hash, len(t.buckets))
}

// Find returns the value (zero value for sets) stored under key and
// whether key is present.
func (t *Table[V]) Find(key []byte) (V, bool) {
	var zero V
	if len(t.buckets) == 0 {
		return zero, false
	}
	idx := t.bucketIndex(t.opts.Hasher(key))
	b := &t.buckets[idx]
	c, found := b.findOrEnd(key, t.storeNullE, t.opts.HasValue, t.opts.Equal)
	if !found {
		return zero, false
	}
	if !t.opts.HasValue {
		return zero, true
	}
	k, _, _ := b.decodeEntry(c.offset, t.storeNullE, t.opts.HasValue)
	vi := b.valueIndexAt(c.offset, t.storeNullE, len(k))
	return t.values[vi].value, true
}

// Count returns 1 if key is present, else 0: array-hash keys are
// unique, so there's never more than a single match.
func (t *Table[V]) Count(key []byte) int {
	if _, ok := t.Find(key); ok {
		return 1
	}
	return 0
}

func (t *Table[V]) ensureBuckets() {
	if len(t.buckets) == 0 {
		t.buckets = make([]bucket, t.opts.GrowthPolicy.New(1))
	}
}

// Insert adds key->value if key is absent, returning false if it
// already existed (in which case no modification is made, matching
// the array-hash "found -> no overwrite" contract; callers needing
// insert_or_assign must Erase then Insert, or use InsertOrAssign).
func (t *Table[V]) Insert(key []byte, value V) (bool, error) {
	t.ensureBuckets()
	if t.loadFactor() > t.opts.MaxLoadFactor {
		if err := t.Rehash(t.opts.GrowthPolicy.NextBucketCount(len(t.buckets))); err != nil {
			return false, err
		}
	}
	idx := t.bucketIndex(t.opts.Hasher(key))
	b := &t.buckets[idx]
	if _, found := b.findOrEnd(key, t.storeNullE, t.opts.HasValue, t.opts.Equal); found {
		return false, nil
	}

	var valueIndex uint32
	if t.opts.HasValue {
		if len(t.values) >= int(^uint32(0))-1 {
			return false, ErrCapacity
		}
		valueIndex = uint32(len(t.values))
		t.values = append(t.values, valueSlot[V]{value: value})
	}
	if _, err := b.insertAt(key, t.storeNullE, t.opts.HasValue, valueIndex, t.opts.StoreNullTerminator); err != nil {
		if t.opts.HasValue {
			t.values = t.values[:len(t.values)-1]
		}
		return false, err
	}
	t.nbElements++
	t.liveValues++
	return true, nil
}

// InsertOrAssign inserts key->value, overwriting any existing value.
func (t *Table[V]) InsertOrAssign(key []byte, value V) error {
	t.ensureBuckets()
	idx := t.bucketIndex(t.opts.Hasher(key))
	b := &t.buckets[idx]
	if c, found := b.findOrEnd(key, t.storeNullE, t.opts.HasValue, t.opts.Equal); found {
		if t.opts.HasValue {
			k, _, _ := b.decodeEntry(c.offset, t.storeNullE, t.opts.HasValue)
			vi := b.valueIndexAt(c.offset, t.storeNullE, len(k))
			t.values[vi].value = value
		}
		return nil
	}
	_, err := t.Insert(key, value)
	return err
}

// Erase removes key if present, returning whether it was present. Map
// values are tombstoned in place; the bucket entry is removed
// immediately. An opportunistic value-vector compaction runs when the
// live/stored ratio drops below compactRatio.
func (t *Table[V]) Erase(key []byte) bool {
	if len(t.buckets) == 0 {
		return false
	}
	idx := t.bucketIndex(t.opts.Hasher(key))
	b := &t.buckets[idx]
	c, found := b.findOrEnd(key, t.storeNullE, t.opts.HasValue, t.opts.Equal)
	if !found {
		return false
	}
	if t.opts.HasValue {
		k, _, _ := b.decodeEntry(c.offset, t.storeNullE, t.opts.HasValue)
		vi := b.valueIndexAt(c.offset, t.storeNullE, len(k))
		t.values[vi].tombstoned = true
		var zero V
		t.values[vi].value = zero
		t.liveValues--
	}
	b.erase(c, t.storeNullE, t.opts.HasValue)
	t.nbElements--

	if t.opts.HasValue && t.nbElements >= compactMinElements {
		if float64(t.liveValues)/float64(len(t.values)) < compactRatio {
			t.compactValues()
		}
	}
	return true
}

// compactValues rewrites the value vector to contain only live values
// and fixes up every bucket entry's value index to match, reclaiming
// the space tombstoned entries left behind.
func (t *Table[V]) compactValues() {
	if !t.opts.HasValue {
		return
	}
	newValues := make([]valueSlot[V], 0, t.liveValues)
	for bi := range t.buckets {
		b := &t.buckets[bi]
		off := 0
		for {
			k, sentinel, next := b.decodeEntry(off, t.storeNullE, true)
			if sentinel {
				break
			}
			oldIdx := b.valueIndexAt(off, t.storeNullE, len(k))
			newIdx := uint32(len(newValues))
			newValues = append(newValues, t.values[oldIdx])
			b.setValueIndexAt(off, t.storeNullE, len(k), newIdx)
			off = next
		}
	}
	t.values = newValues
	t.liveValues = len(newValues)
}

// Rehash resizes the bucket array to n buckets (rounded up by the
// growth policy as appropriate) and reinserts every live entry. On
// failure the table is left exactly as it was before the call: a fresh
// bucket slice is built and only swapped in once every entry has been
// copied across.
func (t *Table[V]) Rehash(n int) error {
	if n < 1 {
		n = 1
	}
	n = t.opts.GrowthPolicy.New(n)
	newBuckets := make([]bucket, n)
	sizes := make([]int, n)
	type placed struct {
		key []byte
		vi  uint32
		idx int
	}
	var entries []placed

	for bi := range t.buckets {
		b := &t.buckets[bi]
		off := 0
		for {
			k, sentinel, next := b.decodeEntry(off, t.storeNullE, t.opts.HasValue)
			if sentinel {
				break
			}
			var vi uint32
			if t.opts.HasValue {
				vi = b.valueIndexAt(off, t.storeNullE, len(k))
			}
			idx := t.opts.GrowthPolicy.BucketForHash(t.opts.Hasher(k), n)
			sizes[idx] += entrySize(len(k), t.storeNullE, t.opts.HasValue)
			entries = append(entries, placed{key: append([]byte(nil), k...), vi: vi, idx: idx})
			off = next
		}
	}

	for i := range newBuckets {
		if sizes[i] > 0 {
			newBuckets[i].reserve(sizes[i])
		}
	}
	cursors := make([]int, n)
	for _, p := range entries {
		b := &newBuckets[p.idx]
		adv := b.appendInReservedNoCheck(cursors[p.idx], p.key, t.storeNullE, t.opts.HasValue, p.vi)
		cursors[p.idx] += adv
	}

	t.buckets = newBuckets
	if t.opts.HasValue && t.nbElements >= compactMinElements &&
		float64(t.liveValues)/float64(len(t.values)) < rehashCompactRatio {
		t.compactValues()
	}
	return nil
}

// ShrinkToFit compacts the value vector then rehashes to the smallest
// bucket count the growth policy allows for the current element count.
func (t *Table[V]) ShrinkToFit() error {
	t.compactValues()
	want := 1
	if t.opts.MaxLoadFactor > 0 {
		f := float64(t.nbElements) / t.opts.MaxLoadFactor
		want = int(f)
		if float64(want) < f {
			want++
		}
	}
	return t.Rehash(want)
}

// ForEach walks every live key (and, in map mode, value) in bucket/
// entry order. This is the iteration order a hash node exposes to the
// trie driver's cursor machinery and to burst.
func (t *Table[V]) ForEach(fn func(key []byte, value V) bool) {
	for bi := range t.buckets {
		b := &t.buckets[bi]
		cont := true
		b.forEach(t.storeNullE, t.opts.HasValue, func(k []byte, vi uint32) bool {
			var v V
			if t.opts.HasValue {
				v = t.values[vi].value
			}
			if !fn(k, v) {
				cont = false
				return false
			}
			return true
		})
		if !cont {
			return
		}
	}
}

// HistogramFirstByte counts, for every live key, the first byte
// (zero-length keys are counted in emptyCount instead), used by burst
// to size child hash nodes for the partition it's about to build.
func (t *Table[V]) HistogramFirstByte() (hist [256]int, emptyCount int) {
	t.ForEach(func(k []byte, _ V) bool {
		if len(k) == 0 {
			emptyCount++
		} else {
			hist[k[0]]++
		}
		return true
	})
	return
}

// ErasePrefix removes every live key with the given byte prefix and
// returns how many were removed. An empty prefix matches everything.
func (t *Table[V]) ErasePrefix(prefix []byte) int {
	if len(prefix) == 0 {
		n := t.nbElements
		t.buckets = nil
		t.values = nil
		t.nbElements = 0
		t.liveValues = 0
		return n
	}
	count := 0
	for bi := range t.buckets {
		b := &t.buckets[bi]
		for {
			erasedThisPass := false
			off := 0
			for {
				k, sentinel, next := b.decodeEntry(off, t.storeNullE, t.opts.HasValue)
				if sentinel {
					break
				}
				if len(k) >= len(prefix) && BytesEqual(k[:len(prefix)], prefix) {
					if t.opts.HasValue {
						vi := b.valueIndexAt(off, t.storeNullE, len(k))
						t.values[vi].tombstoned = true
						var zero V
						t.values[vi].value = zero
						t.liveValues--
					}
					b.erase(cursor{offset: off}, t.storeNullE, t.opts.HasValue)
					count++
					t.nbElements--
					erasedThisPass = true
					break
				}
				off = next
			}
			if !erasedThisPass {
				break
			}
		}
	}
	if t.opts.HasValue && t.nbElements >= compactMinElements && len(t.values) > 0 &&
		float64(t.liveValues)/float64(len(t.values)) < compactRatio {
		t.compactValues()
	}
	return count
}

// Iterator walks a Table's live entries in bucket/entry order.
type Iterator[V any] struct {
	t         *Table[V]
	bucketIdx int
	off       int
}

// NewIterator returns an iterator positioned before the first entry.
func (t *Table[V]) NewIterator() *Iterator[V] {
	return &Iterator[V]{t: t}
}

// Next advances the iterator and returns the entry it lands on, or
// ok=false once exhausted.
func (it *Iterator[V]) Next() ([]byte, V, bool) {
	var zero V
	for it.bucketIdx < len(it.t.buckets) {
		b := &it.t.buckets[it.bucketIdx]
		if b.buf == nil {
			it.bucketIdx++
			it.off = 0
			continue
		}
		k, sentinel, next := b.decodeEntry(it.off, it.t.storeNullE, it.t.opts.HasValue)
		if sentinel {
			it.bucketIdx++
			it.off = 0
			continue
		}
		var v V
		if it.t.opts.HasValue {
			vi := b.valueIndexAt(it.off, it.t.storeNullE, len(k))
			v = it.t.values[vi].value
		}
		it.off = next
		return k, v, true
	}
	return nil, zero, false
}
