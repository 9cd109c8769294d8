package filepool

// Hooks are lightweight callbacks for high-signal pool events.
// Implementations MUST be cheap and non-blocking; the pool calls them
// inline on read and commit paths.
type Hooks interface {
	// An entry was found expired during GetItem; its value was cleared
	// before being handed back.
	EntryExpired(key string)

	// Commit serialized the map but skipped the disk write because the
	// content hash matched the stored hash.
	CommitSkipped(hash string)

	// ForceCommit bypassed the unchanged fast path. entries is the map
	// size about to be written.
	CommitForced(entries int)

	// The atomic write to the backing file failed. Prior file content is
	// intact.
	WriteFailed(path string, err error)

	// Lazy load finished parsing the backing file.
	SnapshotLoaded(path string, entries int)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) EntryExpired(string)        {}
func (NopHooks) CommitSkipped(string)       {}
func (NopHooks) CommitForced(int)           {}
func (NopHooks) WriteFailed(string, error)  {}
func (NopHooks) SnapshotLoaded(string, int) {}
