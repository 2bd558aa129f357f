package hattrie

import (
	"errors"

	"github.com/hattriego/hattrie/internal/arrayhash"
)

// ErrKeyTooLong and ErrCapacity are re-exported from internal/arrayhash
// so callers never need to import the internal package to use errors.Is.
var (
	ErrKeyTooLong = arrayhash.ErrKeyTooLong
	ErrCapacity   = arrayhash.ErrCapacity
)

// ErrNotFound is returned by At when the key is absent.
var ErrNotFound = errors.New("hattrie: key not found")

// ErrDeserialize is returned by Deserialize on malformed input.
var ErrDeserialize = errors.New("hattrie: malformed serialized data")
