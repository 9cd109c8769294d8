// Package sloghooks is a ready-made filepool.Hooks observer that reports
// pool events through log/slog, with sampling for the one event class
// that can flood: per-entry expiry during reads of a cold pool.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/filepool"
)

type Options struct {
	// ExpiredEvery samples EntryExpired events: log every Nth. 0/1 = log
	// all.
	ExpiredEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	expiredCtr atomic.Uint64
}

var _ filepool.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) EntryExpired(key string) {
	n := h.expiredCtr.Add(1)
	if every := h.opts.ExpiredEvery; every > 1 && n%every != 0 {
		return
	}
	h.l.Debug("cache entry expired on read", "key", key)
}

func (h *Hooks) CommitSkipped(hash string) {
	h.l.Debug("commit skipped, snapshot unchanged", "hash", hash)
}

func (h *Hooks) CommitForced(entries int) {
	h.l.Warn("commit forced", "entries", entries)
}

func (h *Hooks) WriteFailed(path string, err error) {
	h.l.Error("snapshot write failed", "path", path, "err", err)
}

func (h *Hooks) SnapshotLoaded(path string, entries int) {
	h.l.Debug("snapshot loaded", "path", path, "entries", entries)
}
