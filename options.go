package streamhttp

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamhttp/codec"
	"github.com/kbukum/streamhttp/transport"
)

// Option configures a Client beyond its Config.
type Option func(*options)

type options struct {
	port           transport.Port
	encoders       []codec.Encoder
	decoders       []codec.Decoder
	logger         *zerolog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithPort injects a custom transport port. The default is the nethttp
// adapter built from Config.Transport.
func WithPort(port transport.Port) Option {
	return func(o *options) { o.port = port }
}

// WithEncoders replaces the default encoder list. Registration order is the
// negotiation tie-break: more specific encoders belong first.
func WithEncoders(encoders ...codec.Encoder) Option {
	return func(o *options) { o.encoders = encoders }
}

// WithDecoders replaces the default decoder list. Registration order is the
// negotiation tie-break: more specific decoders belong first.
func WithDecoders(decoders ...codec.Decoder) Option {
	return func(o *options) { o.decoders = decoders }
}

// WithLogger sets the engine logger. The default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = &logger }
}

// WithTracerProvider overrides the global tracer provider for exchange
// spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider overrides the global meter provider for exchange
// metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}
