package filepool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey reports a key outside the allowed charset. The pool
	// rejects the key before touching any state.
	ErrInvalidKey = errors.New("filepool: invalid key")

	// ErrCodecRequired is returned by New when Options.Codec is nil.
	ErrCodecRequired = errors.New("filepool: codec is required")
)

// CorruptError reports a backing file that failed to parse during lazy
// load. The file is either damaged or hand-edited; the pool does not retry
// and stays unusable.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("filepool: corrupt snapshot %q: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// EncodeError reports a value the codec could not serialize during commit.
// In-memory state is untouched; the caller may fix or drop the offending
// entry and retry.
type EncodeError struct {
	Key string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("filepool: encode entry %q: %v", e.Key, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
