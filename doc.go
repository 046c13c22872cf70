// Package streamhttp is a non-blocking HTTP client engine. Requests are
// described as immutable descriptors, executed through a pluggable transport
// port, and consumed as demand-driven pull streams, with backpressure
// running from the consumer down to the socket.
//
// Executions are cold. Perform only binds a descriptor to the engine;
// nothing touches the network until a consumer demands a result, and each
// execution sends exactly once:
//
//	client, err := streamhttp.New(streamhttp.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	req := streamhttp.Get("https://api.example.com/items").Accept(codec.JSON)
//	items := streamhttp.AsStream[Item](client.Perform(req))
//	defer items.Close()
//	for {
//	    item, ok, err := items.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    use(item)
//	}
//
// # Consumption modes
//
//   - AsSingle: one decoded value; an empty body fails with an empty-body error
//   - AsStream: lazy stream of decoded values; the exchange runs on first pull
//   - AsEnvelope: response head as soon as it arrives, body still lazy
//
// # Codecs
//
// Bodies are encoded and decoded by ordered codec registries
// (github.com/kbukum/streamhttp/codec). Resolution walks registration order
// and the first codec claiming the type and media type pair wins; when none
// claims it the exchange fails with an unsupported-content error. The
// defaults cover raw bytes, plain text, JSON (arrays streamed element by
// element), NDJSON, and server-sent events.
//
// # Errors
//
// Every failure surfaces as a *Error carrying a stable code: malformed
// target, unsupported content, double send, empty body, or transport.
// Exactly one terminal signal is delivered per execution, through the same
// path as success. Only transport errors are marked retryable, and retrying
// is a collaborator's concern, never this engine's.
package streamhttp
