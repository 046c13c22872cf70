package codec

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"reflect"

	"github.com/kbukum/streamhttp/stream"
)

// NDJSONCodec handles newline-delimited JSON (one document per line) for
// application/x-ndjson and application/stream+json. Unlike the JSON codec it
// never claims an unspecified media type, so it only wins negotiation when
// the content type asks for it.
type NDJSONCodec struct{}

// NewNDJSONCodec returns the newline-delimited JSON codec.
func NewNDJSONCodec() *NDJSONCodec {
	return &NDJSONCodec{}
}

func claimsNDJSON(mt MediaType) bool {
	return NDJSON.Matches(mt) || StreamJSON.Matches(mt)
}

func (c *NDJSONCodec) CanEncode(_ reflect.Type, mt MediaType) bool {
	return claimsNDJSON(mt)
}

func (c *NDJSONCodec) Encode(values stream.Stream[any], _ reflect.Type, _ MediaType) stream.Stream[[]byte] {
	return stream.Map(values, func(_ context.Context, v any) ([]byte, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	})
}

func (c *NDJSONCodec) EncodedAs(declared MediaType) MediaType {
	if !declared.IsZero() {
		return declared
	}
	return NDJSON
}

func (c *NDJSONCodec) CanDecode(_ reflect.Type, mt MediaType, _ Hints) bool {
	return claimsNDJSON(mt)
}

func (c *NDJSONCodec) Decode(body stream.Stream[[]byte], t reflect.Type, _ MediaType, _ Hints) stream.Stream[any] {
	return &ndjsonDecodeStream{target: t, r: newChunkReader(body)}
}

type ndjsonDecodeStream struct {
	target reflect.Type
	r      *chunkReader
	br     *bufio.Reader
	done   bool
	err    error
}

func (s *ndjsonDecodeStream) Next(ctx context.Context) (any, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	if s.done {
		return nil, false, nil
	}
	s.r.use(ctx)
	if s.br == nil {
		s.br = bufio.NewReader(s.r)
	}
	for {
		line, err := s.br.ReadBytes('\n')
		doc := bytes.TrimSpace(line)
		if len(doc) > 0 {
			elem := reflect.New(s.target)
			if uerr := json.Unmarshal(doc, elem.Interface()); uerr != nil {
				s.err = uerr
				return nil, false, uerr
			}
			// A read error alongside the final line surfaces on the
			// next pull; the decoded document is delivered first.
			switch err {
			case nil:
			case io.EOF:
				s.done = true
			default:
				s.err = err
			}
			return elem.Elem().Interface(), true, nil
		}
		if err == io.EOF {
			s.done = true
			return nil, false, nil
		}
		if err != nil {
			s.err = err
			return nil, false, err
		}
	}
}

func (s *ndjsonDecodeStream) Close() error { return s.r.Close() }
