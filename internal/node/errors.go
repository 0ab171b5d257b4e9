package node

import "errors"

var (
	ErrAlreadyConnected  = errors.New("a peer is already connected or awaiting approval")
	ErrConnectionFailed  = errors.New("connection failed")
	ErrHandshakeRejected = errors.New("handshake rejected by peer")
	ErrNotConnected      = errors.New("not connected to a peer")
)
