package config

import (
	"fmt"
	"time"

	redisclient "github.com/vietddude/wsprobe/internal/infra/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Endpoint EndpointConfig     `yaml:"endpoint"`
	Logging  LoggingConfig      `yaml:"logging"`
	Redis    redisclient.Config `yaml:"redis"`
}

// ServerConfig holds the health/metrics HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// EndpointConfig holds settings for the probed WebSocket endpoint.
type EndpointConfig struct {
	URL              string   `yaml:"url"`
	ReconnectDelay   Duration `yaml:"reconnect_delay"`
	HandshakeTimeout Duration `yaml:"handshake_timeout"`
	MaxFrameSize     int64    `yaml:"max_frame_size"` // 0 = unbounded
}

// Duration is a time.Duration that unmarshals from human-readable YAML
// values like "100ms" or "5s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
