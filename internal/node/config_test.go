package node

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config

	if got := cfg.listenAddr(); got != ":42069" {
		t.Errorf("Expected listen address :42069, got %s", got)
	}
	if got := cfg.dialPort(); got != 42069 {
		t.Errorf("Expected dial port 42069, got %d", got)
	}
	if got := cfg.handshakeTimeout(); got != DefaultHandshakeTimeout {
		t.Errorf("Expected %v handshake timeout, got %v", DefaultHandshakeTimeout, got)
	}
}

func TestConfigOverrides(t *testing.T) {
	cfg := Config{Port: 5000, HandshakeTimeout: time.Second}

	if got := cfg.listenAddr(); got != ":5000" {
		t.Errorf("Expected listen address :5000, got %s", got)
	}
	if got := cfg.handshakeTimeout(); got != time.Second {
		t.Errorf("Expected 1s handshake timeout, got %v", got)
	}
}

func TestDialAddr(t *testing.T) {
	n := &Node{config: Config{Port: 6000}}

	tests := []struct {
		target   string
		expected string
	}{
		{"192.168.1.4", "192.168.1.4:6000"},
		{"192.168.1.4:7000", "192.168.1.4:7000"},
		{"::1", "[::1]:6000"},
		{"[::1]:7000", "[::1]:7000"},
		{"peer.local", "peer.local:6000"},
	}

	for _, tt := range tests {
		if got := n.dialAddr(tt.target); got != tt.expected {
			t.Errorf("dialAddr(%q) = %q, want %q", tt.target, got, tt.expected)
		}
	}
}
