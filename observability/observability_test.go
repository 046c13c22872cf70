package observability

import (
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want sdktrace.Sampler
	}{
		{1.0, sdktrace.AlwaysSample()},
		{1.5, sdktrace.AlwaysSample()},
		{0, sdktrace.NeverSample()},
		{-0.2, sdktrace.NeverSample()},
		{0.25, sdktrace.TraceIDRatioBased(0.25)},
	}
	for _, tt := range tests {
		got := sampler(tt.rate)
		if got.Description() != tt.want.Description() {
			t.Errorf("sampler(%v) = %s, want %s", tt.rate, got.Description(), tt.want.Description())
		}
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("orders-sync", "2.1.0", "staging")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := map[string]string{}
	for _, attr := range res.Attributes() {
		found[string(attr.Key)] = attr.Value.AsString()
	}
	if found["service.name"] != "orders-sync" {
		t.Errorf("service.name = %q, want orders-sync", found["service.name"])
	}
	if found["service.version"] != "2.1.0" {
		t.Errorf("service.version = %q, want 2.1.0", found["service.version"])
	}
	if found["environment"] != "staging" {
		t.Errorf("environment = %q, want staging", found["environment"])
	}
}

func TestTracerAndMeter_Named(t *testing.T) {
	if Tracer("streamhttp-test") == nil {
		t.Error("Tracer should never return nil")
	}
	if Meter("streamhttp-test") == nil {
		t.Error("Meter should never return nil")
	}
}
