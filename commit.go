package filepool

import (
	"github.com/unkn0wn-root/filepool/internal/snapshot"
)

func (p *pool[V]) Commit() (bool, error)      { return p.commit(false) }
func (p *pool[V]) ForceCommit() (bool, error) { return p.commit(true) }

// commit is the central algorithm: purge expired entries, serialize,
// short-circuit on a matching content hash, otherwise compose the envelope
// and atomically replace the backing file.
func (p *pool[V]) commit(force bool) (bool, error) {
	// Unchanged fast path, autosave mode only. Outside autosave an
	// unchanged commit still serializes and lets the hash comparison
	// decide.
	if !force && p.autosave && (!p.loaded || len(p.data) == 0 || !p.hasChanges) {
		return false, nil
	}

	if err := p.ensureLoaded(); err != nil {
		return false, err
	}

	if force {
		p.markChanged()
		p.hooks.CommitForced(len(p.data))
		p.log.Warn("forcing commit of unchanged pool", Fields{
			"entries": len(p.data), "path": p.snap.target(),
		})
	}

	// Expired entries are purged, never persisted. Entries that never
	// received a value (read-invalidated and not repopulated, or saved
	// unset) have nothing to cache and are dropped with them.
	purged := 0
	for k, it := range p.data {
		if it.Expired() || !it.assigned {
			delete(p.data, k)
			p.markChanged()
			purged++
		}
	}
	if purged > 0 {
		p.log.Debug("purged expired entries", Fields{"count": purged})
	}

	payload, err := p.encodeRecords()
	if err != nil {
		return false, err
	}
	newHash := snapshot.Hash(payload)

	// Identical content: skip the write and report success. The changed
	// flag is left alone; only a real write resets it.
	if !p.alwaysWrite && newHash == p.hash {
		p.hooks.CommitSkipped(newHash)
		p.log.Debug("commit skipped, content unchanged", Fields{"hash": newHash})
		return false, nil
	}

	hdr := snapshot.NewHeader(p.name, p.generator, p.now(), newHash)
	env, err := snapshot.Encode(hdr, payload)
	if err != nil {
		return false, err
	}

	if err := p.snap.store(env); err != nil {
		// Failing to persist a regenerable cache is not fatal to the
		// host; state stays dirty for a retry.
		p.hooks.WriteFailed(p.snap.target(), err)
		p.log.Error("snapshot write failed", Fields{
			"path": p.snap.target(), "err": err,
		})
		return false, err
	}

	p.hash = newHash
	p.hasChanges = false
	p.log.Debug("snapshot written", Fields{
		"path": p.snap.target(), "entries": len(p.data), "hash": newHash,
	})
	return true, nil
}

func (p *pool[V]) encodeRecords() ([]byte, error) {
	recs := make([]snapshot.Record, 0, len(p.data))
	for k, it := range p.data {
		b, err := p.codec.Encode(it.value)
		if err != nil {
			return nil, &EncodeError{Key: k, Err: err}
		}
		rec := snapshot.Record{Key: k, Value: b}
		if it.explicit {
			rec.Expiry = it.expiry.Unix()
		}
		recs = append(recs, rec)
	}
	return snapshot.EncodeRecords(recs)
}
