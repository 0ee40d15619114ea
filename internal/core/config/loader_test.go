package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_EnvSubstitution(t *testing.T) {
	// Setup env var
	os.Setenv("TEST_WS_URL", "ws://10.0.0.7:9001/ws")
	defer os.Unsetenv("TEST_WS_URL")

	// Create temp config file
	configContent := `
endpoint:
  url: ${TEST_WS_URL}
`
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	// Load config
	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Endpoint.URL != "ws://10.0.0.7:9001/ws" {
		t.Errorf("Expected URL ws://10.0.0.7:9001/ws, got %s", cfg.Endpoint.URL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// A missing file is fine: the probe runs on defaults alone.
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Endpoint.URL != DefaultEndpointURL {
		t.Errorf("Expected default URL %s, got %s", DefaultEndpointURL, cfg.Endpoint.URL)
	}
	if cfg.Endpoint.ReconnectDelay.Std() != DefaultReconnectDelay {
		t.Errorf("Expected default delay %s, got %s", DefaultReconnectDelay, cfg.Endpoint.ReconnectDelay.Std())
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Redis.HistorySize != 1000 {
		t.Errorf("Expected default history size 1000, got %d", cfg.Redis.HistorySize)
	}
}

func TestLoad_DurationParsing(t *testing.T) {
	configContent := `
endpoint:
  url: ws://localhost:8081/ws
  reconnect_delay: 250ms
  handshake_timeout: 3s
`
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Endpoint.ReconnectDelay.Std() != 250*time.Millisecond {
		t.Errorf("Expected 250ms reconnect delay, got %s", cfg.Endpoint.ReconnectDelay.Std())
	}
	if cfg.Endpoint.HandshakeTimeout.Std() != 3*time.Second {
		t.Errorf("Expected 3s handshake timeout, got %s", cfg.Endpoint.HandshakeTimeout.Std())
	}
}

func TestLoad_NegativeDelay(t *testing.T) {
	configContent := `
endpoint:
  reconnect_delay: -50ms
`
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	if _, err := Load(tmpFile.Name()); err == nil {
		t.Fatal("Expected error for negative reconnect delay, got nil")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configContent := `
endpoint:
  reconnect_delay: soon
`
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	if _, err := Load(tmpFile.Name()); err == nil {
		t.Fatal("Expected error for invalid duration, got nil")
	}
}
