package hattrie

import "github.com/hattriego/hattrie/internal/trie"

// Cursor is a forward-only position over a Map or Set's keys. Keys
// under different trie-node children follow child byte order, but the
// keys inside one hash node follow that node's bucket order, so the
// overall order depends on the hasher and is not sorted. It aliases the engine's cursor type directly; internal/trie
// already exposes the full surface a cursor needs (Key, Value, Valid,
// Advance, Equal).
type Cursor[V any] = trie.Cursor[V]
