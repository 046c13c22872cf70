package codec

import "reflect"

// Registry holds ordered encoder and decoder lists. Resolution walks the
// list in registration order and returns the first match, so more specific
// codecs must be registered before general ones. A Registry is immutable
// after construction and safe for concurrent use.
type Registry struct {
	encoders []Encoder
	decoders []Decoder
}

// NewRegistry builds a registry from explicit codec lists. The slices are
// copied; caller ordering is preserved verbatim.
func NewRegistry(encoders []Encoder, decoders []Decoder) *Registry {
	return &Registry{
		encoders: append([]Encoder(nil), encoders...),
		decoders: append([]Decoder(nil), decoders...),
	}
}

// DefaultRegistry returns a registry with the built-in codecs in default
// order.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultEncoders(), DefaultDecoders())
}

// DefaultEncoders returns the built-in encoders, most specific first.
func DefaultEncoders() []Encoder {
	return []Encoder{NewBytesCodec(), NewTextCodec(), NewNDJSONCodec(), NewJSONCodec()}
}

// DefaultDecoders returns the built-in decoders, most specific first. Event
// precedes Text because text/event-stream would otherwise match text/*.
func DefaultDecoders() []Decoder {
	return []Decoder{NewBytesCodec(), NewEventDecoder(), NewNDJSONCodec(), NewTextCodec(), NewJSONCodec()}
}

// EncoderFor returns the first registered encoder accepting the pair, or
// (nil, false) when none does. Absence is not an error at this layer.
func (r *Registry) EncoderFor(t reflect.Type, mt MediaType) (Encoder, bool) {
	for _, e := range r.encoders {
		if e.CanEncode(t, mt) {
			return e, true
		}
	}
	return nil, false
}

// DecoderFor returns the first registered decoder accepting the triple, or
// (nil, false) when none does.
func (r *Registry) DecoderFor(t reflect.Type, mt MediaType, hints Hints) (Decoder, bool) {
	for _, d := range r.decoders {
		if d.CanDecode(t, mt, hints) {
			return d, true
		}
	}
	return nil, false
}
