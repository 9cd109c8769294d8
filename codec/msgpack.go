package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes values with vmihailenco/msgpack/v5. Compact and fast;
// note that msgpack struct tags differ from JSON tags, use `msgpack:"name"`
// for explicit control. Map-typed values encode in nondeterministic key
// order, which can defeat the pool's no-op write detection; prefer CBOR in
// deterministic mode when values contain maps.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
