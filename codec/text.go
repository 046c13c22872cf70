package codec

import (
	"bytes"
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/streamhttp/stream"
)

var anyText = MediaType{Type: "text", Subtype: "*"}

// TextCodec handles string payloads for text/* media types. Decode buffers
// the full body and emits it as a single string element; an empty body
// yields zero elements.
type TextCodec struct{}

// NewTextCodec returns the plain text codec.
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

func (c *TextCodec) CanEncode(t reflect.Type, mt MediaType) bool {
	return t == stringType && (mt.IsZero() || anyText.Matches(mt))
}

func (c *TextCodec) Encode(values stream.Stream[any], _ reflect.Type, _ MediaType) stream.Stream[[]byte] {
	return stream.Map(values, func(_ context.Context, v any) ([]byte, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("codec: text encoder received %T", v)
		}
		return []byte(s), nil
	})
}

func (c *TextCodec) EncodedAs(declared MediaType) MediaType {
	if !declared.IsZero() {
		return declared
	}
	return TextPlain
}

func (c *TextCodec) CanDecode(t reflect.Type, mt MediaType, _ Hints) bool {
	return t == stringType && (mt.IsZero() || anyText.Matches(mt))
}

func (c *TextCodec) Decode(body stream.Stream[[]byte], _ reflect.Type, _ MediaType, _ Hints) stream.Stream[any] {
	return &textDecodeStream{body: body}
}

type textDecodeStream struct {
	body stream.Stream[[]byte]
	done bool
	err  error
}

func (s *textDecodeStream) Next(ctx context.Context) (any, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	if s.done {
		return nil, false, nil
	}
	s.done = true
	chunks, err := stream.Collect(ctx, s.body)
	if err != nil {
		s.err = err
		return nil, false, err
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total == 0 {
		return nil, false, nil
	}
	return string(bytes.Join(chunks, nil)), true, nil
}

func (s *textDecodeStream) Close() error { return s.body.Close() }
