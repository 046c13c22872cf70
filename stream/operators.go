package stream

import (
	"context"
	"sync"
)

// Map transforms each value using fn.
func Map[I, O any](s Stream[I], fn func(context.Context, I) (O, error)) Stream[O] {
	return &mapStream[I, O]{source: s, fn: fn}
}

// Concat joins streams sequentially. All values from the first stream are
// yielded before the second, and so on.
func Concat[T any](streams ...Stream[T]) Stream[T] {
	return &concatStream[T]{streams: streams}
}

// Buffer decouples the production rate from the consumption rate with a
// bounded channel. The pump goroutine starts on the first pull and inherits
// that pull's context; Close stops it.
func Buffer[T any](s Stream[T], size int) Stream[T] {
	if size <= 0 {
		size = 1
	}
	return &bufferStream[T]{source: s, size: size}
}

// --- Operator implementations ---

type mapStream[I, O any] struct {
	source Stream[I]
	fn     func(context.Context, I) (O, error)
}

func (s *mapStream[I, O]) Next(ctx context.Context) (O, bool, error) {
	val, ok, err := s.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := s.fn(ctx, val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

func (s *mapStream[I, O]) Close() error { return s.source.Close() }

type concatStream[T any] struct {
	streams []Stream[T]
	index   int
}

func (s *concatStream[T]) Next(ctx context.Context) (T, bool, error) {
	for s.index < len(s.streams) {
		val, ok, err := s.streams[s.index].Next(ctx)
		if err != nil {
			var zero T
			return zero, false, err
		}
		if ok {
			return val, true, nil
		}
		_ = s.streams[s.index].Close()
		s.index++
	}
	var zero T
	return zero, false, nil
}

func (s *concatStream[T]) Close() error {
	var firstErr error
	for ; s.index < len(s.streams); s.index++ {
		if err := s.streams[s.index].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// result carries a value or error through the buffer channel.
type result[T any] struct {
	val T
	ok  bool
	err error
}

type bufferStream[T any] struct {
	source Stream[T]
	size   int

	once   sync.Once
	ch     chan result[T]
	cancel context.CancelFunc
	closed bool
}

func (s *bufferStream[T]) start(ctx context.Context) {
	pumpCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.ch = make(chan result[T], s.size)

	go func() {
		defer close(s.ch)
		for {
			val, ok, err := s.source.Next(pumpCtx)
			if err != nil {
				select {
				case s.ch <- result[T]{err: err}:
				case <-pumpCtx.Done():
				}
				return
			}
			if !ok {
				return
			}
			select {
			case s.ch <- result[T]{val: val, ok: true}:
			case <-pumpCtx.Done():
				return
			}
		}
	}()
}

func (s *bufferStream[T]) Next(ctx context.Context) (T, bool, error) {
	s.once.Do(func() { s.start(ctx) })
	select {
	case r, open := <-s.ch:
		if !open {
			var zero T
			return zero, false, nil
		}
		return r.val, r.ok, r.err
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (s *bufferStream[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.once.Do(func() {}) // never started: nothing to stop
	if s.cancel != nil {
		s.cancel()
	}
	return s.source.Close()
}
