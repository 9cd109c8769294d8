package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes proto.Message values. Decode needs a concrete message
// to unmarshal into, so the codec is constructed with a message factory:
//
//	codec.NewProtobuf(func() *mypb.Profile { return &mypb.Profile{} })
//
// proto.Marshal does not guarantee stable byte output across library
// versions; treat hash-based write skipping as best effort for proto
// values.
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
