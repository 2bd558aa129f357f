package arrayhash

import "errors"

// ErrKeyTooLong is returned when a key's length exceeds the configured
// KeySize's MaxKeyLen.
var ErrKeyTooLong = errors.New("arrayhash: key too long")

// ErrCapacity is returned when a table's value vector would grow past
// its configured index width.
var ErrCapacity = errors.New("arrayhash: table at capacity")
