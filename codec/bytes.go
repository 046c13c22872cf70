package codec

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/streamhttp/stream"
)

// BytesCodec passes []byte payloads through untouched, regardless of media
// type. Decoded elements are individual transport chunks, not the aggregated
// body.
type BytesCodec struct{}

// NewBytesCodec returns the raw byte codec.
func NewBytesCodec() *BytesCodec {
	return &BytesCodec{}
}

func (c *BytesCodec) CanEncode(t reflect.Type, _ MediaType) bool {
	return t == bytesType
}

func (c *BytesCodec) Encode(values stream.Stream[any], _ reflect.Type, _ MediaType) stream.Stream[[]byte] {
	return stream.Map(values, func(_ context.Context, v any) ([]byte, error) {
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("codec: bytes encoder received %T", v)
		}
		return b, nil
	})
}

func (c *BytesCodec) EncodedAs(declared MediaType) MediaType {
	if !declared.IsZero() {
		return declared
	}
	return OctetStream
}

func (c *BytesCodec) CanDecode(t reflect.Type, _ MediaType, _ Hints) bool {
	return t == bytesType
}

func (c *BytesCodec) Decode(body stream.Stream[[]byte], _ reflect.Type, _ MediaType, _ Hints) stream.Stream[any] {
	return stream.Map(body, func(_ context.Context, chunk []byte) (any, error) {
		return chunk, nil
	})
}
