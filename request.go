package streamhttp

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/kbukum/streamhttp/codec"
	"github.com/kbukum/streamhttp/transport"
)

// Request describes an outbound request: verb, absolute target, headers,
// and an optional typed content payload. Once handed to Perform it must be
// treated as read-only; the engine snapshots headers at build time so later
// caller mutations never affect an in-flight transmission.
type Request struct {
	method      string
	rawTarget   string
	target      *url.URL
	headers     http.Header
	contentType codec.MediaType
	accept      []codec.MediaType
	content     any
	err         *Error
}

// NewRequest creates a request descriptor. A target that does not parse as
// an absolute URL records a malformed-target error, surfaced by Err and by
// the engine on first demand; nothing is ever sent for such a descriptor.
func NewRequest(method, target string) *Request {
	r := &Request{
		method:    method,
		rawTarget: target,
		headers:   make(http.Header),
	}
	u, err := url.Parse(target)
	if err != nil {
		r.err = NewMalformedTargetError(target, err)
		return r
	}
	if u.Scheme == "" || u.Host == "" {
		r.err = NewMalformedTargetError(target, errors.New("target must be an absolute URL"))
		return r
	}
	r.target = u
	return r
}

// Get creates a GET request descriptor.
func Get(target string) *Request { return NewRequest(http.MethodGet, target) }

// Post creates a POST request descriptor.
func Post(target string) *Request { return NewRequest(http.MethodPost, target) }

// Put creates a PUT request descriptor.
func Put(target string) *Request { return NewRequest(http.MethodPut, target) }

// Patch creates a PATCH request descriptor.
func Patch(target string) *Request { return NewRequest(http.MethodPatch, target) }

// Delete creates a DELETE request descriptor.
func Delete(target string) *Request { return NewRequest(http.MethodDelete, target) }

// Head creates a HEAD request descriptor.
func Head(target string) *Request { return NewRequest(http.MethodHead, target) }

// Options creates an OPTIONS request descriptor.
func Options(target string) *Request { return NewRequest(http.MethodOptions, target) }

// Header adds values under the given header name.
func (r *Request) Header(name string, values ...string) *Request {
	for _, v := range values {
		r.headers.Add(name, v)
	}
	return r
}

// ContentType declares the media type of the attached content. The encoder
// decides the final wire type via EncodedAs.
func (r *Request) ContentType(mt codec.MediaType) *Request {
	r.contentType = mt
	return r
}

// Accept appends acceptable response media types and stamps the Accept
// header.
func (r *Request) Accept(mts ...codec.MediaType) *Request {
	r.accept = append(r.accept, mts...)
	parts := make([]string, 0, len(r.accept))
	for _, mt := range r.accept {
		parts = append(parts, mt.String())
	}
	r.headers.Set("Accept", strings.Join(parts, ", "))
	return r
}

// Content attaches a typed payload. A nil value means no body.
func (r *Request) Content(v any) *Request {
	r.content = v
	return r
}

// Method returns the request verb.
func (r *Request) Method() string { return r.method }

// Target returns a copy of the parsed target, or nil when the target was
// malformed.
func (r *Request) Target() *url.URL {
	if r.target == nil {
		return nil
	}
	return r.cloneTarget()
}

// Err reports a descriptor-level failure such as a malformed target.
func (r *Request) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Build materializes a pending request on the port: the descriptor's verb,
// target, and headers merged over the given defaults. Pure assembly, no
// network I/O. Client-level auth and request ids are the engine's concern,
// not Build's.
func (r *Request) Build(ctx context.Context, port transport.Port, defaults http.Header) (transport.PendingRequest, error) {
	if r.err != nil {
		return nil, r.err
	}
	return port.CreateRequest(ctx, r.method, r.cloneTarget(), r.buildHeaders(defaults))
}

// buildHeaders snapshots the descriptor headers over the defaults.
// Descriptor values replace default values for the same name wholesale.
func (r *Request) buildHeaders(defaults http.Header) http.Header {
	headers := make(http.Header, len(r.headers)+len(defaults))
	for name, vals := range defaults {
		headers[http.CanonicalHeaderKey(name)] = append([]string(nil), vals...)
	}
	for name, vals := range r.headers {
		headers[name] = append([]string(nil), vals...)
	}
	return headers
}

func (r *Request) cloneTarget() *url.URL {
	u := *r.target
	return &u
}
