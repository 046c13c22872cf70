package stream

import (
	"context"
	"io"
)

// DefaultChunkSize is the chunk size used by FromReader when none is given.
const DefaultChunkSize = 8 * 1024

// FromReader creates a byte-chunk stream over rc. Each pull reads at most
// chunkSize bytes; nothing is read before it is demanded, so consumer
// backpressure reaches the reader directly. Closing the stream closes rc.
func FromReader(rc io.ReadCloser, chunkSize int) Stream[[]byte] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &readerStream{rc: rc, chunkSize: chunkSize}
}

// NewReader exposes a byte-chunk stream as an io.ReadCloser. Chunks are
// pulled one at a time, only when the previous chunk has been fully read.
// Closing the reader closes the stream.
func NewReader(s Stream[[]byte]) io.ReadCloser {
	return NewReaderContext(context.Background(), s)
}

// NewReaderContext is NewReader with a context governing each pull.
func NewReaderContext(ctx context.Context, s Stream[[]byte]) io.ReadCloser {
	return &streamReader{ctx: ctx, source: s}
}

type readerStream struct {
	rc        io.ReadCloser
	chunkSize int
	pending   error
	done      bool
}

func (s *readerStream) Next(ctx context.Context) ([]byte, bool, error) {
	if s.done {
		return nil, false, nil
	}
	if s.pending != nil {
		err := s.pending
		s.pending = nil
		s.done = true
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	for {
		buf := make([]byte, s.chunkSize)
		n, err := s.rc.Read(buf)
		if n > 0 {
			switch {
			case err == io.EOF:
				s.done = true
			case err != nil:
				// Deliver the data first, the failure on the next pull.
				s.pending = err
			}
			return buf[:n], true, nil
		}
		if err == io.EOF {
			s.done = true
			return nil, false, nil
		}
		if err != nil {
			s.done = true
			return nil, false, err
		}
	}
}

func (s *readerStream) Close() error {
	s.done = true
	return s.rc.Close()
}

type streamReader struct {
	ctx    context.Context
	source Stream[[]byte]
	buf    []byte
	err    error
}

func (r *streamReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		chunk, ok, err := r.source.Next(r.ctx)
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

func (r *streamReader) Close() error {
	return r.source.Close()
}
