// Package stream provides pull-based lazy sequences for streaming HTTP
// bodies and decoded elements.
//
// Streams are lazy: no work happens until the consumer calls Next. Each
// stage pulls from the previous stage on demand, providing natural
// backpressure without explicit flow control. A Stream is single-pass:
// once exhausted it stays exhausted, and errors terminate it through the
// same Next return path a value would use.
//
// # Sources
//
//   - Of: a fixed set of values
//   - Empty: an already-exhausted stream
//   - Fail: a stream that yields only an error
//   - Func: a stream backed by a pull function
//   - Defer: a cold stream whose source is materialized on first pull
//   - FromReader: byte chunks pulled from an io.ReadCloser
//
// # Operators and terminals
//
//   - Map: transform each value
//   - Concat: join streams sequentially
//   - Buffer: decouple producer and consumer with a bounded channel
//   - Collect: drain into a slice
//   - First: pull a single value
//   - Drain: pull everything into a sink
//
// # Usage
//
//	src := stream.Of(1, 2, 3)
//	doubled := stream.Map(src, func(_ context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	values, _ := stream.Collect(ctx, doubled) // [2 4 6]
package stream
