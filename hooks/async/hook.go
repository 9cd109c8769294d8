// Package asynchook decouples hook observers from the pool's call sites.
// The pool invokes Hooks inline on read and commit paths and expects them
// to be cheap; wrap a slow observer (one that writes to a socket, a
// metrics pipeline, a sampled logger) in an async dispatcher and the pool
// only ever pays for a channel send. Events are dropped when the queue is
// full.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ExpiredEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	pool, _ := filepool.New(filepool.Options[User]{
//	    Path:  "/var/cache/app/users.fps",
//	    Codec: codec.JSON[User]{},
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/filepool"
)

type Hooks struct {
	inner filepool.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ filepool.Hooks = (*Hooks)(nil)

func New(inner filepool.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Call it after the
// pool's final commit so late commit events are not lost.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) EntryExpired(key string)   { h.try(func() { h.inner.EntryExpired(key) }) }
func (h *Hooks) CommitSkipped(hash string) { h.try(func() { h.inner.CommitSkipped(hash) }) }
func (h *Hooks) CommitForced(entries int)  { h.try(func() { h.inner.CommitForced(entries) }) }
func (h *Hooks) WriteFailed(path string, err error) {
	h.try(func() { h.inner.WriteFailed(path, err) })
}
func (h *Hooks) SnapshotLoaded(path string, entries int) {
	h.try(func() { h.inner.SnapshotLoaded(path, entries) })
}
