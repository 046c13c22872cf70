package nethttp

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/kbukum/streamhttp/stream"
	"github.com/kbukum/streamhttp/transport"
)

// pendingRequest is one in-flight send over an *http.Client.
type pendingRequest struct {
	client    *http.Client
	chunkSize int
	method    string
	target    *url.URL
	headers   http.Header
	body      stream.Stream[[]byte]

	// sent is the one-shot send guard. The transition is a compare-and-swap
	// because completion callbacks and Execute may race.
	sent     atomic.Bool
	notified atomic.Bool

	mu      sync.Mutex
	onSent  []func()
	onError []func(error)
}

func (r *pendingRequest) Headers() http.Header {
	if r.sent.Load() {
		return r.headers.Clone()
	}
	return r.headers
}

func (r *pendingRequest) SetBody(body stream.Stream[[]byte]) {
	if r.sent.Load() {
		return
	}
	r.body = body
}

func (r *pendingRequest) OnSent(onSent func(), onError func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onSent = append(r.onSent, onSent)
	r.onError = append(r.onError, onError)
}

func (r *pendingRequest) Execute(ctx context.Context) (*transport.Response, error) {
	if !r.sent.CompareAndSwap(false, true) {
		return nil, transport.ErrAlreadySent
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.target.String(), nil)
	if err != nil {
		r.notifyError(err)
		return nil, err
	}
	req.Header = r.headers
	if r.body != nil {
		// Unknown length: net/http frames it chunked. Bodyless requests
		// keep Body nil so no framing is requested.
		req.Body = &bodyReader{r: stream.NewReaderContext(ctx, r.body), owner: r}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.notifyError(err)
		return nil, err
	}

	// Response head received: the request, body included, was written.
	r.notifySent()

	return &transport.Response{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    stream.FromReader(resp.Body, r.chunkSize),
	}, nil
}

func (r *pendingRequest) notifySent() {
	if !r.notified.CompareAndSwap(false, true) {
		return
	}
	r.mu.Lock()
	cbs := r.onSent
	r.mu.Unlock()
	for _, fn := range cbs {
		if fn != nil {
			fn()
		}
	}
}

func (r *pendingRequest) notifyError(err error) {
	if !r.notified.CompareAndSwap(false, true) {
		return
	}
	r.mu.Lock()
	cbs := r.onError
	r.mu.Unlock()
	for _, fn := range cbs {
		if fn != nil {
			fn(err)
		}
	}
}

// bodyReader hands the request body stream to the transport and reports the
// transmission outcome to the owning request.
type bodyReader struct {
	r     io.ReadCloser
	owner *pendingRequest
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	switch err {
	case nil:
	case io.EOF:
		b.owner.notifySent()
	default:
		b.owner.notifyError(err)
	}
	return n, err
}

func (b *bodyReader) Close() error { return b.r.Close() }
