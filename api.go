package filepool

import (
	"os"
	"time"

	c "github.com/unkn0wn-root/filepool/codec"
)

// Producer computes a value for a key on miss.
type Producer[V any] func() (V, error)

// Pool is a lazily loaded, file-backed key-value store with deferred
// persistence. Keys are case-folded and restricted to ASCII alphanumerics
// plus '.', '-' and ':'. A pool is single-writer: it performs no internal
// locking and must not be mutated concurrently.
//
// GetItem, HasItem, Save, SaveDeferred, DeleteItem(s), Clear and Commit
// follow the conventional cache-item-pool contract so a pool drops into
// existing cache-consumer code without adapter glue.
type Pool[V any] interface {
	// Get returns the value for key when present and unexpired, updating
	// the per-key hit/miss counters.
	Get(key string) (V, bool, error)

	// GetOr is Get with a fallback for misses. The fallback is not stored.
	GetOr(key string, fallback V) (V, error)

	// GetOrCompute is Get that invokes produce on miss, stores the result
	// under key and returns it. The stored entry carries no expiry beyond
	// the pool's DefaultExpiry; use GetItem afterwards to set one.
	GetOrCompute(key string, produce Producer[V]) (V, error)

	// GetItem returns the live item for key, or a fresh detached item
	// when absent. An expired stored item has its value cleared before
	// being returned (read-time invalidation). Triggers lazy load.
	GetItem(key string) (*Item[V], error)

	// GetItems is the batch form of GetItem; any load failure aborts.
	GetItems(keys []string) (map[string]*Item[V], error)

	// HasItem reports presence of key in the loaded map regardless of
	// expiry. Expiry is resolved at Get/GetItem time, not here.
	HasItem(key string) (bool, error)

	// DeleteItem removes the entry and its counters. The returned bool is
	// the pool's current has-changes flag, not whether key existed.
	DeleteItem(key string) (bool, error)
	DeleteItems(keys []string) (bool, error)

	// Save is SaveDeferred immediately followed by Commit.
	Save(item *Item[V]) (bool, error)

	// SaveDeferred inserts or replaces the entry keyed by the item's own
	// key and flags the pool as changed. No disk I/O.
	SaveDeferred(item *Item[V]) error

	// Clear empties the map, forgets the stored hash (the next commit
	// always writes) and resets the hit/miss counters.
	Clear()

	// Commit persists the map: purges expired entries, serializes,
	// compares the content hash against the stored one and atomically
	// rewrites the backing file when they differ. Returns whether a write
	// happened. A matching hash skips the write and reports success.
	Commit() (bool, error)

	// ForceCommit is Commit bypassing the unchanged fast path.
	ForceCommit() (bool, error)

	// HasChanges reports whether in-memory state diverged from the last
	// loaded or committed snapshot.
	HasChanges() bool

	// Len returns the number of entries. Triggers lazy load.
	Len() (int, error)

	// Stats returns the per-key hit and miss counters.
	Stats() Stats

	// Close releases the pool. With Autosave set it attempts a final
	// commit; callers use it as the guaranteed scope-exit hook.
	Close() error
}

// Options configure a pool. Codec is required; everything else has
// defaults.
type Options[V any] struct {
	// Path of the backing file. Empty selects the ephemeral in-memory
	// backing: same contract, nothing persisted.
	Path string

	// Name and Generator are embedded in the snapshot header as
	// provenance. Cosmetic, not behaviorally load-bearing.
	Name      string
	Generator string

	// Codec serializes values into snapshot payloads.
	Codec c.Codec[V]

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks

	// Now is the time source for expiry checks and generation stamps.
	// nil => time.Now.
	Now func() time.Time

	// DefaultExpiry applies to entries materialized without their own
	// expiry metadata, measured from materialization. Never persisted.
	// 0 => entries without expiry never expire.
	DefaultExpiry time.Duration

	// Autosave commits on Close and enables the unchanged-commit fast
	// path.
	Autosave bool

	// AlwaysWrite disables the content-hash short-circuit: every commit
	// that reaches the write step writes.
	AlwaysWrite bool

	// FileMode of the backing file. 0 => 0644.
	FileMode os.FileMode
}

// New constructs a pool. The backing file, if any, is not touched until
// the first operation that needs the map.
func New[V any](opts Options[V]) (Pool[V], error) {
	return newPool[V](opts)
}
