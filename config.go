package hattrie

import (
	"github.com/hattriego/hattrie/internal/arrayhash"
	"github.com/hattriego/hattrie/internal/trie"
)

// Config is a single configuration record rather than a stack of
// generic parameters, built up through functional options (Option).
type Config struct {
	BurstThreshold      int
	MaxLoadFactor       float64
	StoreNullTerminator bool
	GrowthPolicy        arrayhash.GrowthPolicy
	Hasher              arrayhash.Hasher
	Equal               arrayhash.Equal
}

// Option configures a Map or Set at construction time.
type Option func(*Config)

// Stats is a snapshot of a Map or Set's current size and
// configuration, returned by their Stats methods.
type Stats = trie.Stats

// WithBurstThreshold sets the hash-node size past which it bursts.
// Zero selects trie.DefaultBurstThreshold; other values below
// trie.MinBurstThreshold are raised to it.
func WithBurstThreshold(n int) Option {
	return func(c *Config) { c.BurstThreshold = n }
}

// WithMaxLoadFactor sets the array-hash rehash trigger.
func WithMaxLoadFactor(f float64) Option {
	return func(c *Config) { c.MaxLoadFactor = f }
}

// WithStoreNullTerminator reserves one extra byte per bucket entry so
// stored keys can be handed out as zero-copy C-string-style buffers.
func WithStoreNullTerminator(b bool) Option {
	return func(c *Config) { c.StoreNullTerminator = b }
}

// WithGrowthPolicy overrides the default power-of-two bucket growth
// policy (see internal/arrayhash.ModPolicy for the alternative).
func WithGrowthPolicy(p arrayhash.GrowthPolicy) Option {
	return func(c *Config) { c.GrowthPolicy = p }
}

// WithHasher overrides the default FNV-1a hasher.
func WithHasher(h arrayhash.Hasher) Option {
	return func(c *Config) { c.Hasher = h }
}

// WithEqual overrides the default byte-wise equality predicate. Used,
// for example, to build a case-insensitive map or set.
func WithEqual(e arrayhash.Equal) Option {
	return func(c *Config) { c.Equal = e }
}

func newConfig(opts ...Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Config) trieConfig(hasValue bool) trie.Config {
	return trie.Config{
		BurstThreshold:      c.BurstThreshold,
		MaxLoadFactor:       c.MaxLoadFactor,
		StoreNullTerminator: c.StoreNullTerminator,
		GrowthPolicy:        c.GrowthPolicy,
		Hasher:              c.Hasher,
		Equal:               c.Equal,
		HasValue:            hasValue,
	}
}
