package streamhttp

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/kbukum/streamhttp/codec"
	"github.com/kbukum/streamhttp/transport"
	"github.com/kbukum/streamhttp/transport/nethttp"
)

// Client is the execution engine. It owns a transport port, immutable codec
// registries, and per-exchange instrumentation. Codecs are fixed at
// construction time and shared read-only across concurrent executions;
// concurrent Performs on one Client are independent.
type Client struct {
	config   Config
	port     transport.Port
	registry *codec.Registry
	defaults http.Header
	logger   zerolog.Logger
	tracer   exchangeTracer
	metrics  *exchangeMetrics
}

// New creates a client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	port := o.port
	if port == nil {
		p, err := nethttp.New(cfg.Transport)
		if err != nil {
			return nil, err
		}
		port = p
	}

	encoders := o.encoders
	if encoders == nil {
		encoders = codec.DefaultEncoders()
	}
	decoders := o.decoders
	if decoders == nil {
		decoders = codec.DefaultDecoders()
	}

	logger := zerolog.Nop()
	if o.logger != nil {
		logger = *o.logger
	}

	defaults := make(http.Header, len(cfg.Headers))
	for name, value := range cfg.Headers {
		defaults.Set(name, value)
	}

	return &Client{
		config:   cfg,
		port:     port,
		registry: codec.NewRegistry(encoders, decoders),
		defaults: defaults,
		logger:   logger,
		tracer:   newExchangeTracer(o.tracerProvider),
		metrics:  newExchangeMetrics(o.meterProvider),
	}, nil
}

// Perform binds the descriptor to the engine and returns a deferred
// execution. Constructing it is side-effect-free on the network; nothing is
// sent until a consumer demands a result via AsSingle, AsStream, or
// AsEnvelope.
func (c *Client) Perform(req *Request) *Execution {
	return &Execution{client: c, request: req}
}

// Registry returns the client's codec registry.
func (c *Client) Registry() *codec.Registry {
	return c.registry
}
