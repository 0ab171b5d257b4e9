package node

import (
	"net"
	"strconv"
	"time"

	"github.com/rudransh-shrivastava/papercups/internal/protocol"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultHandshakeTimeout bounds how long an inbound connection may take
	// to deliver its 9 handshake bytes.
	DefaultHandshakeTimeout = 120 * time.Second

	// sendChunkSize is the write granularity for outgoing frames, so
	// progress writers see steady updates on large files.
	sendChunkSize = 32 * 1024
)

type Config struct {
	// Port to listen on when Listener is nil. Zero means protocol.DefaultPort.
	Port int

	// Listener, when set, is used instead of binding Port.
	Listener net.Listener

	HandshakeTimeout time.Duration

	// PeerID is the handshake token for this process. Zero draws a random one.
	PeerID protocol.PeerID

	Logger *logrus.Logger
}

func (c Config) listenAddr() string {
	port := c.Port
	if port == 0 {
		port = protocol.DefaultPort
	}
	return net.JoinHostPort("", strconv.Itoa(port))
}

func (c Config) dialPort() int {
	if c.Port == 0 {
		return protocol.DefaultPort
	}
	return c.Port
}

func (c Config) handshakeTimeout() time.Duration {
	if c.HandshakeTimeout <= 0 {
		return DefaultHandshakeTimeout
	}
	return c.HandshakeTimeout
}
