package streamhttp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/streamhttp"

type exchangeTracer struct {
	tracer trace.Tracer
}

func newExchangeTracer(tp trace.TracerProvider) exchangeTracer {
	if tp == nil {
		return exchangeTracer{tracer: otel.Tracer(instrumentationName)}
	}
	return exchangeTracer{tracer: tp.Tracer(instrumentationName)}
}

// exchangeMetrics holds the engine's per-exchange instruments.
type exchangeMetrics struct {
	exchanges metric.Int64Counter
	duration  metric.Float64Histogram
}

func newExchangeMetrics(mp metric.MeterProvider) *exchangeMetrics {
	meter := otel.Meter(instrumentationName)
	if mp != nil {
		meter = mp.Meter(instrumentationName)
	}
	exchanges, err := meter.Int64Counter("streamhttp.client.exchanges",
		metric.WithDescription("Exchanges by method and outcome."))
	if err != nil {
		otel.Handle(err)
	}
	duration, err := meter.Float64Histogram("streamhttp.client.duration",
		metric.WithDescription("Time from first demand to response head."),
		metric.WithUnit("ms"))
	if err != nil {
		otel.Handle(err)
	}
	return &exchangeMetrics{exchanges: exchanges, duration: duration}
}

func (m *exchangeMetrics) record(ctx context.Context, method string, status int, err error, elapsed time.Duration) {
	attrs := []attribute.KeyValue{attribute.String("method", method)}
	if err != nil {
		code := "unknown"
		var e *Error
		if errors.As(err, &e) {
			code = e.Code.String()
		}
		attrs = append(attrs, attribute.String("error", code))
	} else {
		attrs = append(attrs, attribute.Int("status", status))
	}
	set := metric.WithAttributeSet(attribute.NewSet(attrs...))
	m.exchanges.Add(ctx, 1, set)
	m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), set)
}

// exchangeObserver carries the log, span, and metric state of one exchange
// from first demand to the decode stream handoff.
type exchangeObserver struct {
	execID  string
	log     zerolog.Logger
	span    trace.Span
	metrics *exchangeMetrics
	method  string
	start   time.Time
	status  int
	head    time.Time
}

func (c *Client) beginObserve(ctx context.Context, req *Request) (context.Context, *exchangeObserver) {
	execID := uuid.NewString()
	target := req.rawTarget
	if req.target != nil {
		target = req.target.String()
	}
	log := c.logger.With().
		Str("execution_id", execID).
		Str("method", req.method).
		Str("url", target).
		Logger()
	ctx, span := c.tracer.tracer.Start(ctx, "streamhttp.exchange",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.method),
			attribute.String("url.full", target),
		),
	)
	log.Debug().Msg("exchange demanded")
	return ctx, &exchangeObserver{
		execID:  execID,
		log:     log,
		span:    span,
		metrics: c.metrics,
		method:  req.method,
		start:   time.Now(),
	}
}

// sent and sendFailed are the transmission taps registered via OnSent; the
// transport fires exactly one of them, at most once.
func (o *exchangeObserver) sent() {
	o.log.Debug().Msg("request transmitted")
}

func (o *exchangeObserver) sendFailed(err error) {
	o.log.Debug().Err(err).Msg("request transmission failed")
}

func (o *exchangeObserver) headReceived(status int) {
	o.status = status
	o.head = time.Now()
	o.log.Debug().Int("status", status).Msg("response head received")
	o.span.SetAttributes(attribute.Int("http.response.status_code", status))
}

// succeed settles the exchange once the decode stream is handed to the
// consumer. Body consumption happens at the consumer's pace and is not part
// of the span.
func (o *exchangeObserver) succeed(ctx context.Context) {
	o.span.End()
	o.metrics.record(ctx, o.method, o.status, nil, o.head.Sub(o.start))
	o.log.Debug().Msg("decode stream ready")
}

func (o *exchangeObserver) fail(ctx context.Context, err error) {
	o.span.RecordError(err)
	o.span.SetStatus(codes.Error, err.Error())
	o.span.End()
	o.metrics.record(ctx, o.method, o.status, err, time.Since(o.start))
	o.log.Debug().Err(err).Msg("exchange failed")
}
