package trie

import (
	"fmt"
	"sort"
	"testing"

	"github.com/hattriego/hattrie/internal/arrayhash"
	"github.com/stretchr/testify/assert"
)

func newMapTrie(burstThreshold int) *Trie[int] {
	return New[int](Config{BurstThreshold: burstThreshold, HasValue: true})
}

func newSetTrie(burstThreshold int) *Trie[struct{}] {
	return New[struct{}](Config{BurstThreshold: burstThreshold, HasValue: false})
}

func collectKeys[V any](tr *Trie[V]) []string {
	var keys []string
	for c := tr.Begin(); c.Valid(); c.Advance() {
		keys = append(keys, string(c.Key()))
	}
	return keys
}

func TestTrieInsertFindBasic(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)

	existed, err := tr.Insert([]byte("hello"), 1)
	assert.NoError(t, err)
	assert.False(t, existed)

	existed, err = tr.Insert([]byte("hello"), 2)
	assert.NoError(t, err)
	assert.True(t, existed, "re-insert reports existed without overwriting")

	v, ok := tr.Find([]byte("hello"))
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = tr.Find([]byte("missing"))
	assert.False(t, ok)
	assert.Equal(t, 1, tr.Len())
}

func TestTrieInsertEmptyKey(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	existed, err := tr.Insert([]byte(""), 42)
	assert.NoError(t, err)
	assert.False(t, existed)
	v, ok := tr.Find([]byte(""))
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestTrieInsertOrAssign(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	assert.NoError(t, tr.InsertOrAssign([]byte("k"), 1))
	v, _ := tr.Find([]byte("k"))
	assert.Equal(t, 1, v)

	assert.NoError(t, tr.InsertOrAssign([]byte("k"), 2))
	v, _ = tr.Find([]byte("k"))
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, tr.Len())
}

func TestTrieBurstPreservesAllEntries(t *testing.T) {
	tr := newMapTrie(MinBurstThreshold)
	n := 200
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("key%03d", i))
		existed, err := tr.Insert(key, i)
		assert.NoError(t, err)
		assert.False(t, existed)
	}
	assert.Equal(t, n, tr.Len())
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("key%03d", i))
		v, ok := tr.Find(key)
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestTrieEraseKeyAndCollapse(t *testing.T) {
	tr := newMapTrie(MinBurstThreshold)
	keys := []string{"k11", "k12", "k13", "k14"}
	for i, k := range keys {
		existed, err := tr.Insert([]byte(k), i+1)
		assert.NoError(t, err)
		assert.False(t, existed)
	}
	_, err := tr.Insert([]byte("k1"), 5)
	assert.NoError(t, err)
	_, err = tr.Insert([]byte("k"), 6)
	assert.NoError(t, err)
	_, err = tr.Insert([]byte(""), 7)
	assert.NoError(t, err)

	assert.True(t, tr.EraseKey([]byte("k11")))
	assert.True(t, tr.EraseKey([]byte("k12")))
	assert.True(t, tr.EraseKey([]byte("k13")))
	assert.True(t, tr.EraseKey([]byte("k14")))
	assert.True(t, tr.EraseKey([]byte("k1")))
	assert.True(t, tr.EraseKey([]byte("k")))
	assert.True(t, tr.EraseKey([]byte("")))
	assert.Equal(t, 0, tr.Len())
	assert.True(t, tr.Empty())
	assert.False(t, tr.EraseKey([]byte("anything")))
}

func TestTrieEraseKeyMissing(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	assert.False(t, tr.EraseKey([]byte("nope")))
	_, _ = tr.Insert([]byte("a"), 1)
	assert.False(t, tr.EraseKey([]byte("b")))
	assert.Equal(t, 1, tr.Len())
}

func TestTrieClear(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	for i := 0; i < 10; i++ {
		_, _ = tr.Insert([]byte(fmt.Sprintf("k%d", i)), i)
	}
	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.True(t, tr.Empty())
	_, ok := tr.Find([]byte("k0"))
	assert.False(t, ok)
}

func TestTrieErasePrefixDropsSubtree(t *testing.T) {
	tr := newMapTrie(MinBurstThreshold)
	for _, pair := range []struct {
		k string
		v int
	}{{"car", 1}, {"cart", 2}, {"carton", 3}, {"cat", 4}, {"dog", 5}} {
		_, err := tr.Insert([]byte(pair.k), pair.v)
		assert.NoError(t, err)
	}
	n := tr.ErasePrefix([]byte("car"))
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, tr.Len())
	_, ok := tr.Find([]byte("cat"))
	assert.True(t, ok)
	_, ok = tr.Find([]byte("dog"))
	assert.True(t, ok)
	_, ok = tr.Find([]byte("car"))
	assert.False(t, ok)
}

func TestTrieErasePrefixEmptyDropsEverything(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	for _, pair := range []struct {
		k string
		v int
	}{{"a", 1}, {"b", 2}, {"c", 3}} {
		_, err := tr.Insert([]byte(pair.k), pair.v)
		assert.NoError(t, err)
	}
	n := tr.ErasePrefix([]byte(""))
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, tr.Len())
}

func TestTrieErasePrefixNoMatch(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	_, _ = tr.Insert([]byte("abc"), 1)
	n := tr.ErasePrefix([]byte("xyz"))
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, tr.Len())
}

func TestTrieLongestPrefix(t *testing.T) {
	tr := newSetTrie(4)
	keys := []string{
		"a", "ab", "abc", "abcd", "b", "bc", "bcd",
		"x", "xy", "xyz", "m", "mn",
	}
	for _, k := range keys {
		_, err := tr.Insert([]byte(k), struct{}{})
		assert.NoError(t, err)
	}

	c, ok := tr.LongestPrefix([]byte("abcde"))
	assert.True(t, ok)
	assert.Equal(t, "abcd", string(c.Key()))

	c, ok = tr.LongestPrefix([]byte("xy"))
	assert.True(t, ok)
	assert.Equal(t, "xy", string(c.Key()))

	_, ok = tr.LongestPrefix([]byte("zzz"))
	assert.False(t, ok)

	_, err := tr.Insert([]byte(""), struct{}{})
	assert.NoError(t, err)
	c, ok = tr.LongestPrefix([]byte("zzz"))
	assert.True(t, ok)
	assert.Equal(t, "", string(c.Key()))
}

func TestTriePrefixRangeAtTrieBoundary(t *testing.T) {
	tr := newMapTrie(4)
	for i := 0; i < 4000; i++ {
		key := []byte(fmt.Sprintf("Key %d", i))
		_, err := tr.Insert(key, i)
		assert.NoError(t, err)
	}

	begin, end := tr.PrefixRange([]byte("Key 2"))
	var got []string
	for c := begin; !c.Equal(end); c.Advance() {
		got = append(got, string(c.Key()))
	}
	assert.Len(t, got, 1111)
	for _, k := range got {
		assert.True(t, hasPrefix([]byte(k), []byte("Key 2")))
	}
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	assert.Equal(t, sorted, got, "prefix range should already be in iteration order")
}

func TestTriePrefixRangeInsideHashNode(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	for _, k := range []string{"apple", "app", "apricot", "banana"} {
		_, err := tr.Insert([]byte(k), len(k))
		assert.NoError(t, err)
	}
	begin, end := tr.PrefixRange([]byte("ap"))
	var got []string
	for c := begin; !c.Equal(end); c.Advance() {
		got = append(got, string(c.Key()))
	}
	sort.Strings(got)
	assert.Equal(t, []string{"app", "apple", "apricot"}, got)
}

func TestTriePrefixRangeNoMatch(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	_, _ = tr.Insert([]byte("abc"), 1)
	begin, end := tr.PrefixRange([]byte("zzz"))
	assert.True(t, begin.Equal(end))
}

// TestTriePrefixRangeStopsAtEmptiedValueNode covers a PrefixRange whose
// boundary trie node kept a value after erasure collapsed away all of
// its children: advancing off that node must not escape into a later
// sibling subtree.
func TestTriePrefixRangeStopsAtEmptiedValueNode(t *testing.T) {
	tr := newMapTrie(4)
	for i, k := range []string{"x", "xy1", "xy2", "xy3", "z1"} {
		_, err := tr.Insert([]byte(k), i)
		assert.NoError(t, err)
	}

	assert.True(t, tr.EraseKey([]byte("xy1")))
	assert.True(t, tr.EraseKey([]byte("xy2")))
	assert.True(t, tr.EraseKey([]byte("xy3")))

	begin, end := tr.PrefixRange([]byte("x"))
	var got []string
	for c := begin; !c.Equal(end); c.Advance() {
		got = append(got, string(c.Key()))
	}
	assert.Equal(t, []string{"x"}, got)

	// "z1" is still reachable through the whole-trie iteration order.
	assert.Equal(t, []string{"x", "z1"}, collectKeys(tr))
}

func TestTrieEqualRangeIsDegenerate(t *testing.T) {
	tr := newMapTrie(4)
	for i, k := range []string{"a", "ab", "abc", "b"} {
		_, err := tr.Insert([]byte(k), i)
		assert.NoError(t, err)
	}

	begin, end := tr.EqualRange([]byte("ab"))
	assert.False(t, begin.Equal(end))
	assert.Equal(t, "ab", string(begin.Key()))
	count := 0
	for c := begin; !c.Equal(end); c.Advance() {
		count++
	}
	assert.Equal(t, 1, count, "equal_range must never hold more than one key")

	begin, end = tr.EqualRange([]byte("missing"))
	assert.True(t, begin.Equal(end))
}

func TestTrieEqualRangeInsideHashNode(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	for _, k := range []string{"apple", "app", "apricot", "banana"} {
		_, err := tr.Insert([]byte(k), len(k))
		assert.NoError(t, err)
	}

	begin, end := tr.EqualRange([]byte("app"))
	assert.False(t, begin.Equal(end))
	count := 0
	for c := begin; !c.Equal(end); c.Advance() {
		count++
	}
	assert.Equal(t, 1, count)

	begin, end = tr.EqualRange([]byte("ap"))
	assert.True(t, begin.Equal(end), "\"ap\" is a prefix of stored keys but was never inserted itself")
}

func TestTrieCursorKeyReconstructionAcrossBurst(t *testing.T) {
	tr := newMapTrie(MinBurstThreshold)
	want := map[string]int{}
	for i := 0; i < 500; i++ {
		k := fmt.Sprintf("prefix-%04d-suffix", i)
		want[k] = i
		_, err := tr.Insert([]byte(k), i)
		assert.NoError(t, err)
	}

	got := map[string]int{}
	for c := tr.Begin(); c.Valid(); c.Advance() {
		got[string(c.Key())] = c.Value()
	}
	assert.Equal(t, want, got)
}

// TestTrieIterationOrderFollowsTrieEdges checks the iteration order: a
// trie node's own value first, then its children in byte order. Keys
// inside one hash node ("apple", "a", "apricot" under 'a') come in
// bucket order, so the whole sequence is not sorted.
func TestTrieIterationOrderFollowsTrieEdges(t *testing.T) {
	tr := newSetTrie(MinBurstThreshold)
	keys := []string{"banana", "apple", "cherry", "apricot", "blueberry", "a", ""}
	for _, k := range keys {
		_, err := tr.Insert([]byte(k), struct{}{})
		assert.NoError(t, err)
	}
	got := collectKeys(tr)
	want := []string{"", "apple", "a", "apricot", "banana", "blueberry", "cherry"}
	assert.Equal(t, want, got)
}

func TestTrieEndCursorNotValid(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	assert.False(t, tr.End().Valid())
	assert.False(t, tr.Begin().Valid(), "empty trie begin == end")
}

func TestTrieMaxKeyLen(t *testing.T) {
	tr := newMapTrie(DefaultBurstThreshold)
	key := make([]byte, tr.MaxKeyLen()+1)
	_, err := tr.Insert(key, 1)
	assert.ErrorIs(t, err, arrayhash.ErrKeyTooLong)
}
