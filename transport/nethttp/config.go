package nethttp

import (
	"fmt"
	"time"

	"github.com/kbukum/streamhttp/stream"
)

const defaultResponseTimeout = 30 * time.Second

// Config configures the net/http transport adapter.
type Config struct {
	// ResponseTimeout bounds connection establishment and the wait for the
	// response head. The body stream is demand-driven and stays open as
	// long as the consumer keeps pulling. Defaults to 30s.
	ResponseTimeout time.Duration `yaml:"response_timeout" mapstructure:"response_timeout"`

	// ChunkSize is the read size for response body chunks. Defaults to
	// stream.DefaultChunkSize.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`

	// DisableCompression turns off transparent gzip decompression.
	DisableCompression bool `yaml:"disable_compression" mapstructure:"disable_compression"`

	// H2C enables cleartext HTTP/2. Required for HTTP/2 upstreams without
	// TLS; plain HTTP/1.1 servers will not answer h2c requests.
	H2C bool `yaml:"h2c" mapstructure:"h2c"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.ResponseTimeout <= 0 {
		c.ResponseTimeout = defaultResponseTimeout
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = stream.DefaultChunkSize
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.ResponseTimeout <= 0 {
		return fmt.Errorf("nethttp: response timeout must be positive")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("nethttp: chunk size must be positive")
	}
	return nil
}
