package hattrie

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetInsertContainsErase(t *testing.T) {
	s := NewSet()

	existed, err := s.Insert([]byte("x"))
	assert.NoError(t, err)
	assert.False(t, existed)

	existed, err = s.Insert([]byte("x"))
	assert.NoError(t, err)
	assert.True(t, existed)

	assert.True(t, s.Contains([]byte("x")))
	assert.False(t, s.Contains([]byte("y")))
	assert.Equal(t, 1, s.Count([]byte("x")))

	assert.True(t, s.Erase([]byte("x")))
	assert.False(t, s.Contains([]byte("x")))
	assert.Equal(t, 0, s.Len())
}

func TestSetInsertWithPrefix(t *testing.T) {
	s := NewSet()
	err := s.InsertWithPrefix([]byte("report-"), [][]byte{
		[]byte("2024"), []byte("2025"), []byte("2026"),
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains([]byte("report-2024")))
	assert.True(t, s.Contains([]byte("report-2026")))
	assert.False(t, s.Contains([]byte("report-2027")))
}

func TestSetNewSetFrom(t *testing.T) {
	s := NewSetFrom([]string{"alpha", "beta", "gamma", "alpha"})
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains([]byte("beta")))
}

func TestSetEqual(t *testing.T) {
	s1 := NewSetFrom([]string{"a", "b", "c"})
	s2 := NewSetFrom([]string{"c", "b", "a"})
	assert.True(t, s1.Equal(s2))

	s2.Erase([]byte("c"))
	assert.False(t, s1.Equal(s2))
}

func TestSetForEachAndIterationOrder(t *testing.T) {
	s := NewSetFrom([]string{"banana", "apple", "cherry"})
	var got []string
	s.ForEach(func(key []byte) bool {
		got = append(got, string(key))
		return true
	})
	want := []string{"apple", "banana", "cherry"}
	sort.Strings(got)
	assert.Equal(t, want, got)
}

func TestSetErasePrefix(t *testing.T) {
	s := NewSetFrom([]string{"car", "cart", "carton", "cat", "dog"})
	n := s.ErasePrefix([]byte("car"))
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains([]byte("cat")))
	assert.True(t, s.Contains([]byte("dog")))
}

func TestSetLongestPrefixAndPrefixRange(t *testing.T) {
	s := NewSetFrom([]string{"a", "ab", "abc", "b"})
	c, ok := s.LongestPrefix([]byte("abcd"))
	assert.True(t, ok)
	assert.Equal(t, "abc", string(c.Key()))

	begin, end := s.PrefixRange([]byte("ab"))
	var got []string
	for cur := begin; !cur.Equal(end); cur.Advance() {
		got = append(got, string(cur.Key()))
	}
	sort.Strings(got)
	assert.Equal(t, []string{"ab", "abc"}, got)
}

func TestSetSerializeRoundTrip(t *testing.T) {
	s := NewSetFrom([]string{"one", "two", "three", ""})
	var buf bytes.Buffer
	assert.NoError(t, s.Serialize(&buf, false))

	s2, _, err := DeserializeSet(&buf)
	assert.NoError(t, err)
	assert.True(t, s.Equal(s2))
}

func TestSetBeginEndEmpty(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Begin().Equal(s.End()))
}

func TestSetEqualRangeNeverExceedsLengthOne(t *testing.T) {
	s := NewSet(WithBurstThreshold(4))
	for _, k := range []string{"x", "xy1", "xy2", "xy3", "z1"} {
		existed, err := s.Insert([]byte(k))
		assert.NoError(t, err)
		assert.False(t, existed)
	}

	begin, end := s.EqualRange([]byte("x"))
	assert.False(t, begin.Equal(end))
	count := 0
	for c := begin; !c.Equal(end); c.Advance() {
		count++
	}
	assert.Equal(t, 1, count)

	begin, end = s.EqualRange([]byte("nope"))
	assert.True(t, begin.Equal(end))
}

func TestSetMaxKeySizeRejectsOversizedKey(t *testing.T) {
	s := NewSet()
	key := make([]byte, s.MaxKeySize()+1)
	_, err := s.Insert(key)
	assert.ErrorIs(t, err, ErrKeyTooLong)
}

func TestSetBurstThresholdAndLoadFactorAccessors(t *testing.T) {
	s := NewSet(WithBurstThreshold(2), WithMaxLoadFactor(4.0))
	assert.Equal(t, 4.0, s.MaxLoadFactor())
	assert.GreaterOrEqual(t, s.BurstThreshold(), 2)

	s.SetBurstThreshold(1)
	assert.GreaterOrEqual(t, s.BurstThreshold(), 1)

	s.SetMaxLoadFactor(2.5)
	assert.Equal(t, 2.5, s.MaxLoadFactor())
}
