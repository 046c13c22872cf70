package streamhttp

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/streamhttp/codec"
	"github.com/kbukum/streamhttp/transport/nethttp"
)

const defaultContentType = "application/octet-stream"

// Config configures the execution engine.
type Config struct {
	// DefaultContentType substitutes for responses that omit Content-Type
	// before decoder negotiation. Defaults to application/octet-stream.
	DefaultContentType string `yaml:"default_content_type" mapstructure:"default_content_type" validate:"omitempty,contains=/"`

	// Headers are default headers applied under request-specific headers;
	// a request header with the same name wins.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RequestIDHeader, when set, stamps the per-execution id onto outgoing
	// requests under this header name.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header" validate:"omitempty,printascii"`

	// Auth configures default authentication applied to all requests.
	Auth *AuthConfig `yaml:"-" mapstructure:"-" validate:"-"`

	// Transport configures the default nethttp adapter, used unless a
	// custom port is injected via WithPort.
	Transport nethttp.Config `yaml:"transport" mapstructure:"transport" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.DefaultContentType == "" {
		c.DefaultContentType = defaultContentType
	}
	c.Transport.ApplyDefaults()
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := structValidator().Struct(c); err != nil {
		return fmt.Errorf("streamhttp: config: %w", err)
	}
	if _, err := codec.Parse(c.DefaultContentType); err != nil {
		return fmt.Errorf("streamhttp: config: default content type: %w", err)
	}
	return c.Transport.Validate()
}

// defaultMediaType returns the parsed substitution media type.
func (c *Config) defaultMediaType() codec.MediaType {
	mt, err := codec.Parse(c.DefaultContentType)
	if err != nil {
		return codec.OctetStream
	}
	return mt
}
