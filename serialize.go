package hattrie

import (
	"bufio"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
)

// io.Writer and io.Reader already give Serialize and Deserialize the
// (bytes, length) write/read pair they need, so they're used directly
// rather than through bespoke sink/source interfaces.
var magic = [6]byte{'H', 'A', 'T', 'R', 'I', '1'}

// Serialize writes every key/value pair to w. hashCompatible is
// recorded in the stream and returned by Deserialize, but both modes
// deserialize by re-inserting keys under the reading instance's own
// hasher, so hashCompatible=true only promises a verbatim round trip
// when the reader's hasher also matches the writer's.
func (m *Map[V]) Serialize(w io.Writer, hashCompatible bool) error {
	if err := writeHeader(w, hashCompatible, uint64(m.Len())); err != nil {
		return err
	}
	enc := gob.NewEncoder(w)
	for c := m.Begin(); c.Valid(); c.Advance() {
		if err := writeKey(w, c.Key()); err != nil {
			return err
		}
		if err := enc.Encode(c.Value()); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeMap reads a stream written by Map.Serialize and returns
// a freshly constructed map plus the hashCompatible flag recorded at
// serialize time.
func DeserializeMap[V any](r io.Reader, opts ...Option) (*Map[V], bool, error) {
	// gob buffers any reader that is not an io.ByteReader; wrap r once
	// so keys and gob values are read through the same buffer.
	if _, ok := r.(io.ByteReader); !ok {
		r = bufio.NewReader(r)
	}
	hashCompatible, count, err := readHeader(r)
	if err != nil {
		return nil, false, err
	}
	m := NewMap[V](opts...)
	dec := gob.NewDecoder(r)
	for i := uint64(0); i < count; i++ {
		key, err := readKey(r)
		if err != nil {
			return nil, false, err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrDeserialize, err)
		}
		if err := m.InsertOrAssign(key, v); err != nil {
			return nil, false, err
		}
	}
	return m, hashCompatible, nil
}

// Serialize writes every key to w.
func (s *Set) Serialize(w io.Writer, hashCompatible bool) error {
	if err := writeHeader(w, hashCompatible, uint64(s.Len())); err != nil {
		return err
	}
	for c := s.Begin(); c.Valid(); c.Advance() {
		if err := writeKey(w, c.Key()); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeSet reads a stream written by Set.Serialize.
func DeserializeSet(r io.Reader, opts ...Option) (*Set, bool, error) {
	hashCompatible, count, err := readHeader(r)
	if err != nil {
		return nil, false, err
	}
	s := NewSet(opts...)
	for i := uint64(0); i < count; i++ {
		key, err := readKey(r)
		if err != nil {
			return nil, false, err
		}
		if _, err := s.Insert(key); err != nil {
			return nil, false, err
		}
	}
	return s, hashCompatible, nil
}

func writeHeader(w io.Writer, hashCompatible bool, count uint64) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	flag := byte(0)
	if hashCompatible {
		flag = 1
	}
	if _, err := w.Write([]byte{flag}); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, count)
}

func readHeader(r io.Reader) (hashCompatible bool, count uint64, err error) {
	var got [6]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if got != magic {
		return false, 0, fmt.Errorf("%w: bad magic", ErrDeserialize)
	}
	var flag [1]byte
	if _, err := io.ReadFull(r, flag[:]); err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	return flag[0] == 1, count, nil
}

func writeKey(w io.Writer, key []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(key))); err != nil {
		return err
	}
	_, err := w.Write(key)
	return err
}

func readKey(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	key := make([]byte, n)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	return key, nil
}
