package stream

import (
	"context"
	"sync"
)

// Stream provides pull-based sequential access to a lazy sequence of values.
// The consumer calls Next to retrieve values one at a time; no value is
// produced before it is demanded. Close must be called when the consumer
// abandons the stream early so upstream resources can be released.
//
// Next returns (zero, false, nil) when the stream is exhausted. A non-nil
// error terminates the stream; it is delivered through the same return path
// as values, so every stream ends with exactly one terminal signal.
type Stream[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the stream.
	Close() error
}

// Of creates a stream over a fixed set of values.
func Of[T any](values ...T) Stream[T] {
	return &sliceStream[T]{values: values}
}

// Empty creates an already-exhausted stream.
func Empty[T any]() Stream[T] {
	return &sliceStream[T]{}
}

// Fail creates a stream that yields err on every pull and no values.
func Fail[T any](err error) Stream[T] {
	return &failStream[T]{err: err}
}

// Func creates a stream backed by a pull function. closer may be nil.
func Func[T any](next func(ctx context.Context) (T, bool, error), closer func() error) Stream[T] {
	return &funcStream[T]{next: next, closer: closer}
}

// Defer creates a cold stream. source is invoked once, on the first pull;
// until then no work happens. An error from source terminates the stream.
func Defer[T any](source func(ctx context.Context) (Stream[T], error)) Stream[T] {
	return &deferStream[T]{source: source}
}

// Collect pulls all values into a slice and closes the stream.
func Collect[T any](ctx context.Context, s Stream[T]) ([]T, error) {
	defer s.Close()
	var result []T
	for {
		val, ok, err := s.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// First pulls a single value and closes the stream. It reports ok=false
// when the stream was exhausted before yielding anything.
func First[T any](ctx context.Context, s Stream[T]) (T, bool, error) {
	defer s.Close()
	return s.Next(ctx)
}

// Drain pulls all values, passing each to sink, and closes the stream.
func Drain[T any](ctx context.Context, s Stream[T], sink func(context.Context, T) error) error {
	defer s.Close()
	for {
		val, ok, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := sink(ctx, val); err != nil {
			return err
		}
	}
}

// --- Source implementations ---

type sliceStream[T any] struct {
	values []T
	index  int
}

func (s *sliceStream[T]) Next(_ context.Context) (T, bool, error) {
	if s.index >= len(s.values) {
		var zero T
		return zero, false, nil
	}
	val := s.values[s.index]
	s.index++
	return val, true, nil
}

func (s *sliceStream[T]) Close() error { return nil }

type failStream[T any] struct {
	err error
}

func (s *failStream[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, s.err
}

func (s *failStream[T]) Close() error { return nil }

type funcStream[T any] struct {
	next   func(ctx context.Context) (T, bool, error)
	closer func() error
	done   bool
}

func (s *funcStream[T]) Next(ctx context.Context) (T, bool, error) {
	if s.done {
		var zero T
		return zero, false, nil
	}
	val, ok, err := s.next(ctx)
	if err != nil || !ok {
		s.done = err == nil
	}
	return val, ok, err
}

func (s *funcStream[T]) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

type deferStream[T any] struct {
	source func(ctx context.Context) (Stream[T], error)
	once   sync.Once
	inner  Stream[T]
	err    error
}

func (s *deferStream[T]) materialize(ctx context.Context) {
	s.once.Do(func() {
		s.inner, s.err = s.source(ctx)
	})
}

func (s *deferStream[T]) Next(ctx context.Context) (T, bool, error) {
	s.materialize(ctx)
	if s.err != nil {
		var zero T
		return zero, false, s.err
	}
	return s.inner.Next(ctx)
}

func (s *deferStream[T]) Close() error {
	// Closing before the first pull must not trigger the source.
	s.once.Do(func() {})
	if s.inner != nil {
		return s.inner.Close()
	}
	return nil
}
