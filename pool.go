package filepool

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"

	c "github.com/unkn0wn-root/filepool/codec"
	"github.com/unkn0wn-root/filepool/internal/atomicfile"
	"github.com/unkn0wn-root/filepool/internal/keys"
	"github.com/unkn0wn-root/filepool/internal/snapshot"
)

const (
	defaultName      = "filepool"
	defaultGenerator = "filepool"
	defaultFileMode  = os.FileMode(0o644)
)

type pool[V any] struct {
	name          string
	generator     string
	codec         c.Codec[V]
	log           Logger
	hooks         Hooks
	now           func() time.Time
	defaultExpiry time.Duration
	autosave      bool
	alwaysWrite   bool
	snap          snapshotter

	loaded     bool
	data       map[string]*Item[V]
	hash       string
	hasChanges bool
	hits       map[string]uint64
	misses     map[string]uint64
}

func newPool[V any](opts Options[V]) (*pool[V], error) {
	if opts.Codec == nil {
		return nil, ErrCodecRequired
	}

	p := &pool[V]{
		codec:         opts.Codec,
		defaultExpiry: opts.DefaultExpiry,
		autosave:      opts.Autosave,
		alwaysWrite:   opts.AlwaysWrite,
		hits:          make(map[string]uint64),
		misses:        make(map[string]uint64),
	}

	// defaults
	p.name = coalesce(opts.Name, defaultName)
	p.generator = coalesce(opts.Generator, defaultGenerator)
	p.log = coalesce[Logger](opts.Logger, NopLogger{})
	p.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	p.now = time.Now
	if opts.Now != nil {
		p.now = opts.Now
	}

	if opts.Path == "" {
		p.snap = memorySnapshot{}
	} else {
		p.snap = fileSnapshot{
			path: opts.Path,
			mode: coalesce(opts.FileMode, defaultFileMode),
		}
	}
	return p, nil
}

// snapshotter is the two-case backing behind a pool: a real file or
// nothing. Explicit variants instead of a dynamic union field.
type snapshotter interface {
	// load returns the raw envelope and found=false when no snapshot
	// exists yet.
	load() (raw []byte, found bool, err error)
	// store persists a composed envelope atomically.
	store(raw []byte) error
	// target names the backing for diagnostics.
	target() string
}

type fileSnapshot struct {
	path string
	mode os.FileMode
}

func (s fileSnapshot) load() ([]byte, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		// ENOTDIR: a path component is a regular file. Nothing was ever
		// committed there, so treat it like a missing snapshot; commit
		// will surface the real problem.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s fileSnapshot) store(raw []byte) error {
	return atomicfile.WriteFile(s.path, raw, s.mode)
}

func (s fileSnapshot) target() string { return s.path }

// memorySnapshot backs an ephemeral pool: there is never a prior snapshot
// and persisting is a successful no-op.
type memorySnapshot struct{}

func (memorySnapshot) load() ([]byte, bool, error) { return nil, false, nil }
func (memorySnapshot) store([]byte) error          { return nil }
func (memorySnapshot) target() string              { return "(ephemeral)" }

// ensureLoaded initializes the map from the backing at most once per pool
// lifetime.
func (p *pool[V]) ensureLoaded() error {
	if p.loaded {
		return nil
	}

	raw, found, err := p.snap.load()
	if err != nil {
		return &CorruptError{Path: p.snap.target(), Err: err}
	}
	if !found {
		p.data = make(map[string]*Item[V])
		p.hash = snapshot.InitialHash
		p.loaded = true
		p.hasChanges = false
		return nil
	}

	hdr, payload, err := snapshot.Decode(raw)
	if err != nil {
		return &CorruptError{Path: p.snap.target(), Err: err}
	}
	if got := snapshot.Hash(payload); got != hdr.Hash {
		return &CorruptError{
			Path: p.snap.target(),
			Err:  fmt.Errorf("stored hash %s does not match content %s", hdr.Hash, got),
		}
	}
	recs, err := snapshot.DecodeRecords(payload)
	if err != nil {
		return &CorruptError{Path: p.snap.target(), Err: err}
	}

	data := make(map[string]*Item[V], len(recs))
	for _, rec := range recs {
		it := p.newItem(rec.Key)
		v, err := p.codec.Decode(rec.Value)
		if err != nil {
			return &CorruptError{
				Path: p.snap.target(),
				Err:  fmt.Errorf("entry %q: %w", rec.Key, err),
			}
		}
		it.value = v
		it.assigned = true
		if rec.Expiry > 0 {
			it.expiry = time.Unix(rec.Expiry, 0)
			it.explicit = true
		}
		data[rec.Key] = it
	}

	p.data = data
	p.hash = hdr.Hash
	p.loaded = true
	p.hasChanges = false
	p.hooks.SnapshotLoaded(p.snap.target(), len(recs))
	p.log.Debug("snapshot loaded", Fields{
		"path": p.snap.target(), "entries": len(recs), "hash": hdr.Hash,
	})
	return nil
}

// newItem wires the touch callback and applies DefaultExpiry as an
// implicit expiry.
func (p *pool[V]) newItem(key string) *Item[V] {
	it := &Item[V]{key: key, now: p.now, touch: p.markChanged}
	if p.defaultExpiry > 0 {
		it.expiry = p.now().Add(p.defaultExpiry).Truncate(time.Second)
	}
	return it
}

func (p *pool[V]) markChanged() { p.hasChanges = true }

func (p *pool[V]) key(key string) (string, error) {
	if err := keys.Validate(key); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return keys.Normalize(key), nil
}

// recordHit implements the counter rule: the first hit after a miss (or
// ever) records 0, later consecutive hits increment.
func (p *pool[V]) recordHit(key string) {
	if _, ok := p.hits[key]; ok {
		p.hits[key]++
	} else {
		p.hits[key] = 0
	}
}

// recordMiss increments the miss counter and ends any hit streak.
func (p *pool[V]) recordMiss(key string) {
	delete(p.hits, key)
	p.misses[key]++
}

// live reports whether k maps to an entry that is assigned and unexpired.
func (p *pool[V]) live(k string) (*Item[V], bool) {
	it, ok := p.data[k]
	if !ok || !it.assigned || it.Expired() {
		return nil, false
	}
	return it, true
}

func (p *pool[V]) Get(key string) (V, bool, error) {
	var zero V
	k, err := p.key(key)
	if err != nil {
		return zero, false, err
	}
	if err := p.ensureLoaded(); err != nil {
		return zero, false, err
	}
	if it, ok := p.live(k); ok {
		p.recordHit(k)
		return it.value, true, nil
	}
	p.recordMiss(k)
	return zero, false, nil
}

func (p *pool[V]) GetOr(key string, fallback V) (V, error) {
	v, ok, err := p.Get(key)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}

func (p *pool[V]) GetOrCompute(key string, produce Producer[V]) (V, error) {
	var zero V
	k, err := p.key(key)
	if err != nil {
		return zero, err
	}
	if err := p.ensureLoaded(); err != nil {
		return zero, err
	}
	if it, ok := p.live(k); ok {
		p.recordHit(k)
		return it.value, nil
	}
	p.recordMiss(k)

	v, err := produce()
	if err != nil {
		return zero, err
	}
	it := p.newItem(k)
	it.value = v
	it.assigned = true
	p.data[k] = it
	p.markChanged()
	return v, nil
}

func (p *pool[V]) GetItem(key string) (*Item[V], error) {
	k, err := p.key(key)
	if err != nil {
		return nil, err
	}
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}

	if it, ok := p.data[k]; ok {
		if it.Expired() {
			// Read-time invalidation: hand back the entry emptied, with
			// expiry reset, so a caller re-populating it is not purged by
			// the stale deadline. Untouched, it is dropped on commit.
			var zero V
			it.value = zero
			it.assigned = false
			it.hit = false
			it.expiry = p.newItem(k).expiry
			it.explicit = false
			p.hooks.EntryExpired(k)
			p.log.Debug("entry expired on read", Fields{"key": k})
			return it, nil
		}
		it.hit = it.assigned
		return it, nil
	}

	// Detached until saved; Set and the expiry setters still flag the
	// pool so a later commit is not skipped by the autosave fast path.
	return p.newItem(k), nil
}

func (p *pool[V]) GetItems(ks []string) (map[string]*Item[V], error) {
	out := make(map[string]*Item[V], len(ks))
	for _, key := range ks {
		it, err := p.GetItem(key)
		if err != nil {
			return nil, err
		}
		out[it.Key()] = it
	}
	return out, nil
}

func (p *pool[V]) HasItem(key string) (bool, error) {
	k, err := p.key(key)
	if err != nil {
		return false, err
	}
	if err := p.ensureLoaded(); err != nil {
		return false, err
	}
	// Presence only. An expired entry still reports true until a commit
	// purges it; expiry is resolved on Get/GetItem.
	_, ok := p.data[k]
	return ok, nil
}

func (p *pool[V]) DeleteItem(key string) (bool, error) {
	k, err := p.key(key)
	if err != nil {
		return false, err
	}
	if err := p.ensureLoaded(); err != nil {
		return false, err
	}
	if _, ok := p.data[k]; ok {
		delete(p.data, k)
		delete(p.hits, k)
		delete(p.misses, k)
		p.markChanged()
	}
	return p.hasChanges, nil
}

func (p *pool[V]) DeleteItems(ks []string) (bool, error) {
	changed := false
	for _, key := range ks {
		chg, err := p.DeleteItem(key)
		if err != nil {
			return changed, err
		}
		changed = chg
	}
	return changed, nil
}

func (p *pool[V]) SaveDeferred(item *Item[V]) error {
	if err := p.ensureLoaded(); err != nil {
		return err
	}
	// Adopt the item: mutations after save keep flagging this pool.
	item.now = p.now
	item.touch = p.markChanged
	p.data[item.key] = item
	p.markChanged()
	return nil
}

func (p *pool[V]) Save(item *Item[V]) (bool, error) {
	if err := p.SaveDeferred(item); err != nil {
		return false, err
	}
	return p.Commit()
}

func (p *pool[V]) Clear() {
	p.data = make(map[string]*Item[V])
	p.loaded = true
	p.hash = snapshot.InitialHash
	p.hits = make(map[string]uint64)
	p.misses = make(map[string]uint64)
	p.markChanged()
}

func (p *pool[V]) HasChanges() bool { return p.hasChanges }

func (p *pool[V]) Len() (int, error) {
	if err := p.ensureLoaded(); err != nil {
		return 0, err
	}
	return len(p.data), nil
}

func (p *pool[V]) Close() error {
	if !p.autosave {
		return nil
	}
	_, err := p.Commit()
	return err
}
