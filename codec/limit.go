package codec

import "fmt"

// Limit wraps another codec and rejects oversized payloads at Decode time,
// before the inner codec runs. Encode passes through unchanged. A snapshot
// file is hand-editable by operators, so a size cap is a cheap guard when
// loading files the process did not write itself. MaxDecode <= 0 disables
// the check.
type Limit[V any] struct {
	Inner interface {
		Encode(V) ([]byte, error)
		Decode([]byte) (V, error)
	}
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
