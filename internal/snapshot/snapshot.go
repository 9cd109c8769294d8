// Package snapshot implements the on-disk envelope for a pool's persisted
// map. The original file-per-pool layout carried an embedded content hash
// and a generation stamp; the envelope keeps those two load-bearing fields
// plus the cosmetic provenance header in a structured binary form:
//
//	magic(4 "FPSN") | ver(1) | hlen(u32 be) | header(msgpack) | plen(u32 be) | payload
//
// The header hash always describes the exact payload bytes that follow it
// in the same envelope. Anything that does not decode cleanly is corrupt;
// there is no partial recovery.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

const version byte = 1

// InitialHash is the stored-hash sentinel meaning "no snapshot existed at
// load time". It can never collide with a real hash, which is always 16
// hex characters.
const InitialHash = "initial"

// ErrCorrupt reports an envelope that failed structural validation.
var ErrCorrupt = errors.New("snapshot: corrupt envelope")

var magic4 = [...]byte{'F', 'P', 'S', 'N'}

// Header carries the envelope metadata. Name and Generator are provenance
// only; Hash and GeneratedAt are load-bearing.
type Header struct {
	Name        string `msgpack:"name"`
	Generator   string `msgpack:"generator"`
	GeneratedAt int64  `msgpack:"generated_at"`
	Generated   string `msgpack:"generated"`
	Hash        string `msgpack:"hash"`
}

// NewHeader stamps a header for a payload at the given instant. Generated
// is the calendar rendering of GeneratedAt including the zone, mirroring
// the two timestamp forms of the original format.
func NewHeader(name, generator string, now time.Time, hash string) Header {
	return Header{
		Name:        name,
		Generator:   generator,
		GeneratedAt: now.Unix(),
		Generated:   now.Format(time.RFC1123Z),
		Hash:        hash,
	}
}

// Hash returns the content hash of a serialized payload: xxhash64 of the
// exact bytes, fixed-width hex.
func Hash(payload []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

// Encode composes the envelope around an already-serialized payload.
func Encode(h Header, payload []byte) ([]byte, error) {
	hdr, err := msgpack.Marshal(h)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(4 + 1 + 4 + len(hdr) + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(hdr)))
	buf.Write(u4[:])
	buf.Write(hdr)

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])
	buf.Write(payload)

	return buf.Bytes(), nil
}

// Decode splits an envelope into header and payload. Trailing bytes after
// the payload are corruption, not slack.
func Decode(b []byte) (Header, []byte, error) {
	var h Header
	const fixed = 4 + 1 + 4
	if len(b) < fixed || !bytes.Equal(b[:4], magic4[:]) || b[4] != version {
		return h, nil, ErrCorrupt
	}

	off := 5
	hlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if hlen < 0 || hlen > len(b)-off {
		return h, nil, ErrCorrupt
	}
	if err := msgpack.Unmarshal(b[off:off+hlen], &h); err != nil {
		return h, nil, ErrCorrupt
	}
	off += hlen

	if off+4 > len(b) {
		return h, nil, ErrCorrupt
	}
	plen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if plen < 0 || plen != len(b)-off {
		return h, nil, ErrCorrupt
	}

	return h, b[off:], nil
}

// Record is one persisted entry. Value holds the codec-encoded payload so
// the envelope stays agnostic of the pool's value type. Expiry is unix
// seconds and is omitted entirely for entries that never expire.
type Record struct {
	Key    string `msgpack:"k"`
	Value  []byte `msgpack:"v"`
	Expiry int64  `msgpack:"e,omitempty"`
}

// EncodeRecords serializes records sorted by key. Identical input maps
// yield byte-identical output, which is what makes the stored-hash
// comparison in commit meaningful.
func EncodeRecords(recs []Record) ([]byte, error) {
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return msgpack.Marshal(sorted)
}

// DecodeRecords is the inverse of EncodeRecords.
func DecodeRecords(b []byte) ([]Record, error) {
	var recs []Record
	if err := msgpack.Unmarshal(b, &recs); err != nil {
		return nil, ErrCorrupt
	}
	return recs, nil
}
