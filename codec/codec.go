// Package codec defines how pool values are turned into the byte payloads
// stored inside a snapshot.
//
// The pool compares the hash of consecutive serialized snapshots to skip
// redundant writes, so a codec whose output is byte-stable for equal values
// (CBOR in deterministic mode, or JSON, which sorts map keys) gets the full
// benefit of that optimization. A codec with unstable output is still
// correct, it just forfeits some write skips.
package codec

// Codec encodes and decodes values V to and from []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
