package streamhttp

import (
	"testing"
	"time"

	"github.com/kbukum/streamhttp/stream"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.DefaultContentType != "application/octet-stream" {
		t.Errorf("DefaultContentType = %q, want application/octet-stream", cfg.DefaultContentType)
	}
	if cfg.Transport.ResponseTimeout != 30*time.Second {
		t.Errorf("ResponseTimeout = %v, want 30s", cfg.Transport.ResponseTimeout)
	}
	if cfg.Transport.ChunkSize != stream.DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", cfg.Transport.ChunkSize, stream.DefaultChunkSize)
	}
}

func TestConfig_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{DefaultContentType: "application/json"}
	cfg.Transport.ChunkSize = 1024
	cfg.ApplyDefaults()

	if cfg.DefaultContentType != "application/json" {
		t.Errorf("DefaultContentType = %q, want application/json", cfg.DefaultContentType)
	}
	if cfg.Transport.ChunkSize != 1024 {
		t.Errorf("ChunkSize = %d, want 1024", cfg.Transport.ChunkSize)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(*Config) {}, false},
		{"content type without slash", func(c *Config) { c.DefaultContentType = "garbage" }, true},
		{"content type missing subtype", func(c *Config) { c.DefaultContentType = "text/" }, true},
		{"non-ascii request id header", func(c *Config) { c.RequestIDHeader = "X-Réquest" }, true},
		{"plain request id header", func(c *Config) { c.RequestIDHeader = "X-Request-Id" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate_ChecksTransport(t *testing.T) {
	cfg := Config{DefaultContentType: "application/json"}
	// Transport timeout and chunk size are zero without ApplyDefaults.
	if err := cfg.Validate(); err == nil {
		t.Error("expected a transport validation error")
	}
}

func TestConfig_DefaultMediaType(t *testing.T) {
	cfg := Config{DefaultContentType: "application/json"}
	mt := cfg.defaultMediaType()
	if mt.Type != "application" || mt.Subtype != "json" {
		t.Errorf("got %v", mt)
	}

	// Unparseable values fall back to octet-stream rather than breaking
	// negotiation mid-exchange.
	bad := Config{DefaultContentType: "garbage"}
	if got := bad.defaultMediaType(); got.Subtype != "octet-stream" {
		t.Errorf("got %v, want octet-stream fallback", got)
	}
}
