package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rudransh-shrivastava/papercups/internal/downloads"
	"github.com/rudransh-shrivastava/papercups/internal/protocol"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Port             int
	DownloadDir      string
	HistoryPath      string
	HandshakeTimeout time.Duration
	LogFile          string
	Debug            bool
}

func Default() Config {
	return Config{
		Port:             protocol.DefaultPort,
		DownloadDir:      downloads.DefaultDir(),
		HandshakeTimeout: 120 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.DownloadDir == "" {
		return fmt.Errorf("%w: download directory is empty", ErrInvalidConfig)
	}
	if c.HandshakeTimeout <= 0 {
		return fmt.Errorf("%w: handshake timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// HistoryEnabled reports whether transfers should be recorded.
func (c Config) HistoryEnabled() bool {
	return c.HistoryPath != ""
}
