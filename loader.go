package streamhttp

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption adjusts how LoadConfig resolves its sources.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	envFile   string
	envPrefix string
}

// WithEnvFile loads a .env file into the process environment before reading
// configuration.
func WithEnvFile(path string) LoaderOption {
	return func(lo *loaderOptions) { lo.envFile = path }
}

// WithEnvPrefix namespaces environment lookups; prefix "APP" maps
// APP_TRANSPORT_H2C onto transport.h2c.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lo *loaderOptions) { lo.envPrefix = prefix }
}

// LoadConfig populates cfg from an optional YAML file plus the environment.
// Environment variables override file values; an empty path skips the file.
// The loaded configuration is defaulted and validated before returning.
func LoadConfig(path string, cfg *Config, opts ...LoaderOption) error {
	var lo loaderOptions
	for _, opt := range opts {
		opt(&lo)
	}
	if lo.envFile != "" {
		if err := godotenv.Load(lo.envFile); err != nil {
			return fmt.Errorf("streamhttp: config: load env file %s: %w", lo.envFile, err)
		}
	}

	v := viper.New()
	if lo.envPrefix != "" {
		v.SetEnvPrefix(lo.envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv resolves only keys viper already knows about, so bind
	// every key up front to make env-only values visible to Unmarshal.
	for _, key := range []string{
		"default_content_type",
		"request_id_header",
		"transport.response_timeout",
		"transport.chunk_size",
		"transport.disable_compression",
		"transport.h2c",
	} {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("streamhttp: config: bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("streamhttp: config: read %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("streamhttp: config: unmarshal: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg.Validate()
}
