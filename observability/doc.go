// Package observability bootstraps OpenTelemetry providers for engine
// instrumentation.
//
// The engine emits a span and metrics per exchange through whatever
// providers it is given; this package builds OTLP HTTP backed providers and
// installs them globally:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("orders-sync"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("orders-sync"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mp.Shutdown(ctx)
//
//	client, err := streamhttp.New(cfg,
//	    streamhttp.WithTracerProvider(tp),
//	    streamhttp.WithMeterProvider(mp),
//	)
//
// Both inits also set the corresponding global otel provider, so engines
// constructed without explicit providers pick them up as well.
package observability
