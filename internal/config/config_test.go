package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != 42069 {
		t.Errorf("Expected port 42069, got %d", cfg.Port)
	}
	if cfg.HandshakeTimeout != 120*time.Second {
		t.Errorf("Expected 120s handshake timeout, got %v", cfg.HandshakeTimeout)
	}
	if cfg.DownloadDir == "" {
		t.Error("Expected a download directory")
	}
	if cfg.HistoryEnabled() {
		t.Error("Expected history disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"no download dir", func(c *Config) { c.DownloadDir = "" }},
		{"zero timeout", func(c *Config) { c.HandshakeTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestHistoryEnabled(t *testing.T) {
	cfg := Default()
	cfg.HistoryPath = "history.sqlite3"

	if !cfg.HistoryEnabled() {
		t.Error("Expected history enabled when a path is set")
	}
}
