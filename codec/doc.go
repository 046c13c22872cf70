// Package codec selects and applies body encoders and decoders by media type.
//
// An Encoder turns a stream of typed values into a byte stream for the wire.
// A Decoder turns a response byte stream into a lazy stream of typed values.
// Both are picked by a Registry: an ordered list walked in registration order,
// where the first codec whose Can predicate accepts the (type, media type)
// pair wins. Ordering is the only tie-break, so more specific codecs must be
// registered before general ones. A registry with no match reports absence
// rather than failing; the caller decides what an unsupported content type
// means.
//
// # Built-in codecs
//
// In default registration order:
//
//   - Bytes: raw []byte pass-through, any media type
//   - Event: Server-Sent Events (text/event-stream), decode only
//   - NDJSON: newline-delimited JSON (application/x-ndjson)
//   - Text: string payloads (text/*)
//   - JSON: any Go value (application/json), streams top-level array
//     elements one at a time
//
// # Usage
//
//	reg := codec.DefaultRegistry()
//	dec, ok := reg.DecoderFor(reflect.TypeOf(""), codec.TextPlain, codec.DefaultHints())
//	if !ok {
//	    // no decoder handles text/plain for string
//	}
//	values := dec.Decode(body, reflect.TypeOf(""), codec.TextPlain, codec.DefaultHints())
package codec
