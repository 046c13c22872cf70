// Package transport defines the boundary between the execution engine and
// the network layer.
//
// A Port materializes PendingRequest handles: one handle per send, carrying
// the verb, target, headers, and an optional lazy body stream. The handle
// owns the one-shot "sent" guard; a second Execute fails with
// ErrAlreadySent instead of retransmitting. Connection pooling, TLS,
// redirects, and retries all live behind this boundary, never in the
// engine.
//
// The nethttp subpackage provides the default adapter backed by net/http.
package transport
