package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Defaults preserve the original probe constants: the access-point endpoint
// and the 100ms reconnect delay.
const (
	DefaultEndpointURL    = "ws://192.168.4.1:80/ws"
	DefaultReconnectDelay = 100 * time.Millisecond
)

// Load reads configuration from a YAML file. A missing file is not an error:
// the probe is a diagnostic tool and runs on defaults alone.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Set defaults if necessary
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Endpoint.URL == "" {
		cfg.Endpoint.URL = DefaultEndpointURL
	}
	if cfg.Endpoint.ReconnectDelay == 0 {
		cfg.Endpoint.ReconnectDelay = Duration(DefaultReconnectDelay)
	}
	if cfg.Endpoint.HandshakeTimeout == 0 {
		cfg.Endpoint.HandshakeTimeout = Duration(10 * time.Second)
	}
	if cfg.Redis.HistorySize == 0 {
		cfg.Redis.HistorySize = 1000
	}

	// Zero means "use the default" above; negative durations are config errors.
	if cfg.Endpoint.ReconnectDelay < 0 {
		return nil, fmt.Errorf("reconnect_delay must be positive, got %s", cfg.Endpoint.ReconnectDelay.Std())
	}
	if cfg.Endpoint.HandshakeTimeout < 0 {
		return nil, fmt.Errorf("handshake_timeout must be positive, got %s", cfg.Endpoint.HandshakeTimeout.Std())
	}

	return &cfg, nil
}
