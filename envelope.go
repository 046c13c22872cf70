package streamhttp

import (
	"context"
	"net/http"

	"github.com/kbukum/streamhttp/stream"
)

// Envelope pairs a settled response head with the lazily decoded body. The
// body is single-pass: consuming or closing it never re-triggers the
// exchange.
type Envelope[T any] struct {
	status  int
	headers http.Header
	values  stream.Stream[T]
}

// Status returns the response status code.
func (e *Envelope[T]) Status() int { return e.status }

// Headers returns a copy of the response headers.
func (e *Envelope[T]) Headers() http.Header { return e.headers.Clone() }

// Stream returns the decoded body stream.
func (e *Envelope[T]) Stream() stream.Stream[T] { return e.values }

// First pulls the first element and releases the rest of the body.
func (e *Envelope[T]) First(ctx context.Context) (T, bool, error) {
	return stream.First(ctx, e.values)
}

// Collect exhausts the body into a slice.
func (e *Envelope[T]) Collect(ctx context.Context) ([]T, error) {
	return stream.Collect(ctx, e.values)
}

// Close releases the body without consuming it.
func (e *Envelope[T]) Close() error { return e.values.Close() }
