package codec

import "encoding/json"

// JSON serializes values with encoding/json. Go's encoder sorts map keys,
// so JSON output is byte-stable for equal values and plays well with the
// pool's hash comparison. The zero value is ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
