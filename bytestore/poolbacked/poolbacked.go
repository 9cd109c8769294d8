// Package poolbacked adapts a filepool.Pool[[]byte] to the bytestore
// interface. Memoized results stored through it land in the pool's
// snapshot and survive process restarts; commit timing follows the pool's
// deferred-persistence model (Autosave, or an explicit Commit by the
// owner).
//
// Keys must satisfy the pool's charset rule. The memo package's derived
// keys (hex digests) always do.
package poolbacked

import (
	"context"
	"time"

	"github.com/unkn0wn-root/filepool"
)

type Store struct {
	p filepool.Pool[[]byte]
}

func New(p filepool.Pool[[]byte]) *Store {
	return &Store{p: p}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	return s.p.Get(key)
}

func (s *Store) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	it, err := s.p.GetItem(key)
	if err != nil {
		return false, err
	}
	it.Set(value)
	if ttl > 0 {
		it.ExpiresAfter(ttl)
	}
	if err := s.p.SaveDeferred(it); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	_, err := s.p.DeleteItem(key)
	return err
}

// Close closes the owning pool, committing first when the pool was built
// with Autosave.
func (s *Store) Close(_ context.Context) error {
	return s.p.Close()
}
