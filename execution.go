package streamhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sync/atomic"

	"github.com/kbukum/streamhttp/codec"
	"github.com/kbukum/streamhttp/stream"
	"github.com/kbukum/streamhttp/transport"
)

// Execution is one deferred exchange. It carries no network state until a
// consumer demands a result; the exchange then runs exactly once. A second
// consumption attempt on the same Execution fails with a double-send error
// without touching the network.
type Execution struct {
	client  *Client
	request *Request
	claimed atomic.Bool
}

// AsSingle performs the exchange and decodes the body into one value of type
// T. Zero decoded elements fail with an empty-body error. Extra elements are
// ignored and the rest of the body is released.
func AsSingle[T any](ctx context.Context, e *Execution) (T, error) {
	var zero T
	ex, err := e.run(ctx, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	v, ok, err := stream.First(ctx, ex.values)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, NewEmptyBodyError()
	}
	t, ok := v.(T)
	if !ok {
		return zero, NewUnsupportedContentError(fmt.Sprintf("decoded %T, want %v", v, reflect.TypeFor[T]()))
	}
	return t, nil
}

// AsStream returns the decoded body as a lazy stream of T. Nothing is sent
// until the first Next; closing before the first pull leaves the network
// untouched.
func AsStream[T any](e *Execution) stream.Stream[T] {
	return stream.Defer(func(ctx context.Context) (stream.Stream[T], error) {
		ex, err := e.run(ctx, reflect.TypeFor[T]())
		if err != nil {
			return nil, err
		}
		return typedStream[T](ex.values), nil
	})
}

// AsEnvelope performs the exchange and returns the envelope as soon as the
// response head arrives. The decoded body inside it stays lazy.
func AsEnvelope[T any](ctx context.Context, e *Execution) (*Envelope[T], error) {
	ex, err := e.run(ctx, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &Envelope[T]{
		status:  ex.status,
		headers: ex.headers,
		values:  typedStream[T](ex.values),
	}, nil
}

// exchange is the raw outcome handed from run to the consumption helpers.
type exchange struct {
	status  int
	headers http.Header
	values  stream.Stream[any]
}

// run claims the execution and drives the exchange through to a decode
// stream. Every failure, local or remote, comes back as a *Error through
// this single return path.
func (e *Execution) run(ctx context.Context, elem reflect.Type) (*exchange, error) {
	if !e.claimed.CompareAndSwap(false, true) {
		return nil, NewDoubleSendError()
	}
	if e.request.err != nil {
		return nil, e.request.err
	}

	ctx, obs := e.client.beginObserve(ctx, e.request)
	ex, err := e.exchangeOnce(ctx, obs, elem)
	if err != nil {
		obs.fail(ctx, err)
		return nil, err
	}
	obs.succeed(ctx)
	return ex, nil
}

func (e *Execution) exchangeOnce(ctx context.Context, obs *exchangeObserver, elem reflect.Type) (*exchange, error) {
	c := e.client
	req := e.request

	headers := req.buildHeaders(c.defaults)
	target := req.cloneTarget()
	if c.config.Auth != nil {
		// Token fetch can hit the network, so its failures are transport
		// class and eligible for retry by a collaborator.
		if err := c.config.Auth.apply(ctx, headers, target); err != nil {
			return nil, NewTransportError(err)
		}
	}
	if name := c.config.RequestIDHeader; name != "" {
		headers.Set(name, obs.execID)
	}

	handle, err := c.port.CreateRequest(ctx, req.method, target, headers)
	if err != nil {
		return nil, NewTransportError(err)
	}

	if req.content != nil {
		contentType := reflect.TypeOf(req.content)
		enc, ok := c.registry.EncoderFor(contentType, req.contentType)
		if !ok {
			return nil, NewUnsupportedContentError(fmt.Sprintf("no encoder for %v as %q", contentType, req.contentType))
		}
		wire := enc.EncodedAs(req.contentType)
		if !wire.IsZero() {
			handle.Headers().Set("Content-Type", wire.String())
		}
		handle.SetBody(enc.Encode(stream.Of(req.content), contentType, wire))
	}

	handle.OnSent(obs.sent, obs.sendFailed)

	resp, err := handle.Execute(ctx)
	if err != nil {
		if errors.Is(err, transport.ErrAlreadySent) {
			return nil, NewDoubleSendError()
		}
		return nil, NewTransportError(err)
	}
	obs.headReceived(resp.Status)

	mt, err := e.responseMediaType(resp.Headers)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	dec, ok := c.registry.DecoderFor(elem, mt, codec.DefaultHints())
	if !ok {
		resp.Body.Close()
		return nil, NewUnsupportedContentError(fmt.Sprintf("no decoder for %q into %v", mt, elem))
	}
	values := dec.Decode(&transportErrStream{s: resp.Body}, elem, mt, codec.DefaultHints())
	return &exchange{status: resp.Status, headers: resp.Headers, values: values}, nil
}

// responseMediaType parses the response Content-Type, substituting the
// configured default when the header is absent.
func (e *Execution) responseMediaType(headers http.Header) (codec.MediaType, error) {
	ct := headers.Get("Content-Type")
	if ct == "" {
		return e.client.config.defaultMediaType(), nil
	}
	mt, err := codec.Parse(ct)
	if err != nil {
		uerr := NewUnsupportedContentError(fmt.Sprintf("unparseable content type %q", ct))
		uerr.Err = err
		return codec.MediaType{}, uerr
	}
	return mt, nil
}

// transportErrStream classifies raw body read failures as transport errors.
// Decoder failures are produced above this wrapper and pass through
// untouched.
type transportErrStream struct {
	s stream.Stream[[]byte]
}

func (t *transportErrStream) Next(ctx context.Context) ([]byte, bool, error) {
	chunk, ok, err := t.s.Next(ctx)
	if err == nil {
		return chunk, ok, nil
	}
	var e *Error
	if errors.As(err, &e) {
		return chunk, ok, err
	}
	return chunk, ok, NewTransportError(err)
}

func (t *transportErrStream) Close() error {
	return t.s.Close()
}

// typedStream narrows decoded elements to T. A decoder that honored
// CanDecode never produces a mismatch; a mismatch is reported as an
// unsupported-content error.
func typedStream[T any](values stream.Stream[any]) stream.Stream[T] {
	return stream.Map(values, func(_ context.Context, v any) (T, error) {
		t, ok := v.(T)
		if !ok {
			var zero T
			return zero, NewUnsupportedContentError(fmt.Sprintf("decoded %T, want %v", v, reflect.TypeFor[T]()))
		}
		return t, nil
	})
}
