package codec

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"reflect"

	"github.com/kbukum/streamhttp/stream"
)

// JSONCodec handles arbitrary Go values as JSON. Encoding marshals each
// stream element into one chunk, so a single value produces exactly its
// canonical JSON bytes. Decoding streams elements without buffering the
// whole body: a top-level array yields its elements one at a time, anything
// else is read as one value per concatenated JSON document.
type JSONCodec struct{}

// NewJSONCodec returns the JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) CanEncode(_ reflect.Type, mt MediaType) bool {
	return mt.IsZero() || JSON.Matches(mt) || hasJSONSuffix(mt)
}

func (c *JSONCodec) Encode(values stream.Stream[any], _ reflect.Type, _ MediaType) stream.Stream[[]byte] {
	return stream.Map(values, func(_ context.Context, v any) ([]byte, error) {
		return json.Marshal(v)
	})
}

func (c *JSONCodec) EncodedAs(declared MediaType) MediaType {
	if !declared.IsZero() {
		return declared
	}
	return JSON
}

func (c *JSONCodec) CanDecode(_ reflect.Type, mt MediaType, _ Hints) bool {
	return mt.IsZero() || JSON.Matches(mt) || hasJSONSuffix(mt)
}

func (c *JSONCodec) Decode(body stream.Stream[[]byte], t reflect.Type, _ MediaType, _ Hints) stream.Stream[any] {
	return &jsonDecodeStream{target: t, r: newChunkReader(body)}
}

type jsonDecodeStream struct {
	target reflect.Type
	r      *chunkReader
	br     *bufio.Reader
	dec    *json.Decoder
	array  bool
	done   bool
	err    error
}

func (s *jsonDecodeStream) Next(ctx context.Context) (any, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	if s.done {
		return nil, false, nil
	}
	s.r.use(ctx)
	if s.dec == nil {
		if err := s.init(); err != nil {
			if err == io.EOF {
				// Empty body decodes to zero elements.
				s.done = true
				return nil, false, nil
			}
			s.err = err
			return nil, false, err
		}
	}
	if s.array {
		return s.nextArrayElement()
	}
	elem := reflect.New(s.target)
	if err := s.dec.Decode(elem.Interface()); err != nil {
		if err == io.EOF {
			s.done = true
			return nil, false, nil
		}
		s.err = err
		return nil, false, err
	}
	return elem.Elem().Interface(), true, nil
}

// init peeks at the first significant byte to choose between array-element
// streaming and concatenated-value reading, then consumes the opening
// bracket in array mode.
func (s *jsonDecodeStream) init() error {
	s.br = bufio.NewReader(s.r)
	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return err
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			continue
		}
		if err := s.br.UnreadByte(); err != nil {
			return err
		}
		s.array = b == '['
		break
	}
	s.dec = json.NewDecoder(s.br)
	if s.array {
		if _, err := s.dec.Token(); err != nil {
			return err
		}
	}
	return nil
}

func (s *jsonDecodeStream) nextArrayElement() (any, bool, error) {
	if !s.dec.More() {
		if _, err := s.dec.Token(); err != nil {
			s.err = err
			return nil, false, err
		}
		s.done = true
		return nil, false, nil
	}
	elem := reflect.New(s.target)
	if err := s.dec.Decode(elem.Interface()); err != nil {
		s.err = err
		return nil, false, err
	}
	return elem.Elem().Interface(), true, nil
}

func (s *jsonDecodeStream) Close() error { return s.r.Close() }
