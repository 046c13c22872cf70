// Package nethttp adapts net/http to the transport port.
//
// Response bodies surface as demand-driven chunk streams, so nothing past
// the response head is read until the consumer pulls. Request bodies are
// transmitted with chunked framing only when a body stream is attached.
package nethttp

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/net/http2"

	"github.com/kbukum/streamhttp/stream"
	"github.com/kbukum/streamhttp/transport"
)

// Transport is the default transport.Port implementation, backed by an
// *http.Client.
type Transport struct {
	client    *http.Client
	chunkSize int
}

// New creates a nethttp transport with the given configuration.
func New(cfg Config) (*Transport, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var rt http.RoundTripper
	if cfg.H2C {
		rt = &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return (&net.Dialer{Timeout: cfg.ResponseTimeout}).DialContext(ctx, network, addr)
			},
		}
	} else {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.ResponseHeaderTimeout = cfg.ResponseTimeout
		t.DisableCompression = cfg.DisableCompression
		rt = t
	}

	return &Transport{
		client:    &http.Client{Transport: rt},
		chunkSize: cfg.ChunkSize,
	}, nil
}

// NewWithClient wraps an existing *http.Client. Useful when the caller
// manages pooling, TLS, or proxies itself.
func NewWithClient(client *http.Client) *Transport {
	return &Transport{client: client, chunkSize: stream.DefaultChunkSize}
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (t *Transport) Unwrap() *http.Client {
	return t.client
}

// CreateRequest builds a pending request handle. No network I/O happens
// until the handle's Execute is called.
func (t *Transport) CreateRequest(_ context.Context, method string, target *url.URL, headers http.Header) (transport.PendingRequest, error) {
	if headers == nil {
		headers = make(http.Header)
	}
	return &pendingRequest{
		client:    t.client,
		chunkSize: t.chunkSize,
		method:    method,
		target:    target,
		headers:   headers,
	}, nil
}
