// Package bytestore defines the byte-store abstraction behind the memo
// layer: a flat keyspace of opaque []byte values with per-entry TTL.
//
// Implementations must be byte-for-byte transparent: Get returns exactly
// the bytes previously passed to Set for that key, with no added metadata
// and no re-encoding. In-process implementations (ristretto, bigcache)
// trade persistence for eviction; poolbacked trades eviction for a
// snapshot that survives restarts.
package bytestore

import (
	"context"
	"time"
)

// Store is a minimal byte store with TTLs.
type Store interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on
	// miss. IO errors come back as (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL; cost is advisory and may be
	// ignored. ok=false means the store rejected the write under
	// pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key, best effort.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
