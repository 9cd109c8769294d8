// Package memo implements call-result caching on top of a bytestore:
// hash the arguments, look the digest up, compute on miss, store the
// result. It is a thin convenience layer; expiry, eviction and
// persistence are the backing store's concern.
//
// With bytestore/poolbacked behind it, memoized results persist across
// restarts; with ristretto or bigcache they live in process memory.
package memo

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/filepool"
	"github.com/unkn0wn-root/filepool/bytestore"
	c "github.com/unkn0wn-root/filepool/codec"
)

const defaultTTL = 10 * time.Minute

// Memoizer caches results of a computation keyed by its arguments.
type Memoizer[V any] struct {
	ns    string
	store bytestore.Store
	codec c.Codec[V]
	ttl   time.Duration
	log   filepool.Logger
}

// Options tune a Memoizer. Namespace, Store and Codec are required.
type Options[V any] struct {
	// Namespace isolates digests of different computations sharing one
	// store, e.g. "geocode" or "render". Keep it inside the pool key
	// charset when the store is pool-backed.
	Namespace string
	Store     bytestore.Store
	Codec     c.Codec[V]

	TTL    time.Duration // per-result TTL; 0 => 10m
	Logger filepool.Logger
}

func New[V any](opts Options[V]) (*Memoizer[V], error) {
	if opts.Namespace == "" {
		return nil, fmt.Errorf("memo: namespace is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("memo: store is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("memo: codec is required")
	}
	m := &Memoizer[V]{
		ns:    opts.Namespace,
		store: opts.Store,
		codec: opts.Codec,
		ttl:   opts.TTL,
		log:   opts.Logger,
	}
	if m.ttl == 0 {
		m.ttl = defaultTTL
	}
	if m.log == nil {
		m.log = filepool.NopLogger{}
	}
	return m, nil
}

// Do returns the cached result for args, or runs compute, stores its
// result and returns it. Store failures never fail the call; the result
// is simply not cached.
func (m *Memoizer[V]) Do(ctx context.Context, compute func(context.Context) (V, error), args ...any) (V, error) {
	var zero V
	key, err := m.Key(args...)
	if err != nil {
		return zero, err
	}

	raw, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.log.Warn("memo lookup error", filepool.Fields{"key": key, "err": err})
	} else if ok {
		v, err := m.codec.Decode(raw)
		if err == nil {
			return v, nil
		}
		// self-heal: drop the undecodable entry and recompute
		_ = m.store.Del(ctx, key)
		m.log.Debug("memo entry dropped (decode)", filepool.Fields{"key": key})
	}

	v, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	payload, err := m.codec.Encode(v)
	if err != nil {
		m.log.Warn("memo encode failed, result not cached", filepool.Fields{"key": key, "err": err})
		return v, nil
	}
	stored, err := m.store.Set(ctx, key, payload, int64(len(payload)), m.ttl)
	if err != nil {
		m.log.Warn("memo store error", filepool.Fields{"key": key, "err": err})
	} else if !stored {
		m.log.Debug("memo store rejected write", filepool.Fields{"key": key})
	}
	return v, nil
}

// Forget drops the cached result for args.
func (m *Memoizer[V]) Forget(ctx context.Context, args ...any) error {
	key, err := m.Key(args...)
	if err != nil {
		return err
	}
	return m.store.Del(ctx, key)
}

// Key derives the storage key for an argument list: namespace plus the
// xxhash64 digest of the msgpack-encoded arguments. Arguments must be
// msgpack-serializable; map-typed arguments may produce unstable digests
// and should be avoided.
func (m *Memoizer[V]) Key(args ...any) (string, error) {
	d := xxhash.New()
	enc := msgpack.NewEncoder(d)
	for _, a := range args {
		if err := enc.Encode(a); err != nil {
			return "", fmt.Errorf("memo: encode argument: %w", err)
		}
	}
	return fmt.Sprintf("%s:%016x", m.ns, d.Sum64()), nil
}
