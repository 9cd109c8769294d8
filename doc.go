// Package filepool implements a single-writer, lazily loaded, file-backed
// key-value pool with deferred persistence. A pool accumulates regenerable
// values in memory during the life of a process and commits the whole map
// to one flat file, skipping the write entirely when the serialized content
// hashes identically to what is already on disk.
//
// Components:
//   - Item[V]: one cached key's value plus expiry and hit metadata.
//   - Pool[V]: the stateful container; lazy load, change tracking, hit/miss
//     counters, commit.
//   - Codec[V]: (de)serializes values (codec package).
//   - internal/snapshot: the self-describing envelope (hash + generation
//     stamp + payload) written to disk.
//
// The pool is deliberately single-writer: no internal locking, no
// multi-process coordination. Two pools over the same file race and the
// last committer wins.
//
// Typical use:
//
//	p, _ := filepool.New(filepool.Options[int]{
//		Path:  "/var/cache/app/counts.fp",
//		Name:  "counts",
//		Codec: codec.JSON[int]{},
//	})
//	defer p.Close() // commits when Autosave is set
//
//	v, _ := p.GetOrCompute("answer", func() (int, error) { return 42, nil })
//	_, _ = p.Commit()
package filepool
