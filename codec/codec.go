package codec

import (
	"context"
	"io"
	"reflect"

	"github.com/kbukum/streamhttp/stream"
)

// Hints carry fixed per-exchange decoding parameters. The engine always
// supplies DefaultHints; the character set is assumed, not negotiated.
type Hints struct {
	// Charset is the text encoding for string payloads. Always "utf-8".
	Charset string
}

// DefaultHints returns the hints applied to every exchange.
func DefaultHints() Hints {
	return Hints{Charset: "utf-8"}
}

// Encoder transforms typed values into a byte stream for transmission.
type Encoder interface {
	// CanEncode reports whether the encoder handles values of type t
	// declared as media type mt. A zero mt means the caller declared none.
	CanEncode(t reflect.Type, mt MediaType) bool
	// Encode transforms a stream of values into a byte stream. The input
	// values are of type t. Encode itself performs no work; bytes are
	// produced as the returned stream is pulled.
	Encode(values stream.Stream[any], t reflect.Type, mt MediaType) stream.Stream[[]byte]
	// EncodedAs returns the media type stamped on the wire for the given
	// declared type. A zero declared type yields the encoder's default.
	EncodedAs(declared MediaType) MediaType
}

// Decoder transforms a response byte stream into a lazy stream of typed
// values.
type Decoder interface {
	// CanDecode reports whether the decoder can produce values of type t
	// from a body of media type mt.
	CanDecode(t reflect.Type, mt MediaType, hints Hints) bool
	// Decode wraps the body in a stream of decoded values. Decode itself
	// reads nothing; bytes are consumed as the returned stream is pulled.
	// Closing the returned stream closes the body.
	Decode(body stream.Stream[[]byte], t reflect.Type, mt MediaType, hints Hints) stream.Stream[any]
}

var (
	bytesType  = reflect.TypeOf([]byte(nil))
	stringType = reflect.TypeOf("")
	eventType  = reflect.TypeOf(Event{})
)

// chunkReader adapts a byte stream to io.Reader for decoders built on
// bufio/encoding readers. The context of the current pull is routed in via
// use before each read batch.
type chunkReader struct {
	src stream.Stream[[]byte]
	ctx context.Context
	buf []byte
	err error
}

func newChunkReader(src stream.Stream[[]byte]) *chunkReader {
	return &chunkReader{src: src, ctx: context.Background()}
}

func (r *chunkReader) use(ctx context.Context) { r.ctx = ctx }

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		chunk, ok, err := r.src.Next(r.ctx)
		if err != nil {
			r.err = err
			return 0, err
		}
		if !ok {
			r.err = io.EOF
			return 0, io.EOF
		}
		r.buf = chunk
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func (r *chunkReader) Close() error { return r.src.Close() }
