package transport

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/kbukum/streamhttp/stream"
)

// ErrAlreadySent is returned by PendingRequest.Execute when the one-shot
// send guard has already tripped.
var ErrAlreadySent = errors.New("transport: request already sent")

// Port materializes pending requests for a network layer.
type Port interface {
	// CreateRequest builds a pending request for the given verb, target,
	// and headers. This is pure assembly; no network I/O happens here.
	CreateRequest(ctx context.Context, method string, target *url.URL, headers http.Header) (PendingRequest, error)
}

// PendingRequest represents one in-flight send.
type PendingRequest interface {
	// Headers returns the request header map. It is live until the request
	// is sent and a frozen copy afterwards.
	Headers() http.Header

	// SetBody attaches a lazy body stream. When SetBody is never called the
	// adapter must not request chunked-transfer framing. The engine calls
	// this at most once per execution.
	SetBody(body stream.Stream[[]byte])

	// OnSent registers callbacks fired exactly once: onSent when the body
	// has been fully handed to the network, onError when transmission
	// fails. Either callback may be nil.
	OnSent(onSent func(), onError func(error))

	// Execute transmits the request and waits for the response head. The
	// response body stays lazy. A second call fails with ErrAlreadySent and
	// the underlying send primitive runs at most once.
	Execute(ctx context.Context) (*Response, error)
}

// Response is a received response head plus its lazy body.
type Response struct {
	Status  int
	Headers http.Header
	// Body yields the response bytes on demand. Closing it releases the
	// underlying connection.
	Body stream.Stream[[]byte]
}
