package node

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/rudransh-shrivastava/papercups/internal/protocol"
)

// Initiate dials target, sends our handshake and expects it echoed back
// unchanged. target is an IP or host, optionally with a port.
//
// On success the link is handed to the network goroutine and the node is
// Connected. A different echo yields ErrHandshakeRejected; dial and read
// failures yield ErrConnectionFailed. Neither changes the node state.
func (n *Node) Initiate(ctx context.Context, target string) error {
	if n.State() != Listening {
		return ErrAlreadyConnected
	}

	addr := n.dialAddr(target)
	n.logger.Infof("Connecting to %s", addr)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	own := protocol.NewHandshake(n.id)
	echo, err := exchangeHandshake(ctx, conn, own)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	if echo != own {
		_ = conn.Close()
		n.logger.Warnf("Handshake from %s carried %s, expected %s", addr, echo.ID, own.ID)
		return ErrHandshakeRejected
	}

	pc := newPeerConn(conn, 0)
	if !n.attach(pc) {
		_ = conn.Close()
		return ErrAlreadyConnected
	}

	n.lifecycle(pc, Connected).Info("Connected to peer")
	return nil
}

func exchangeHandshake(ctx context.Context, conn net.Conn, own protocol.Handshake) (protocol.Handshake, error) {
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(nowFunc()) })
	defer stop()

	if _, err := conn.Write(protocol.EncodeHandshake(own)); err != nil {
		return protocol.Handshake{}, err
	}

	raw := make([]byte, protocol.HandshakeSize)
	if _, err := io.ReadFull(conn, raw); err != nil {
		if ctx.Err() != nil {
			return protocol.Handshake{}, ctx.Err()
		}
		return protocol.Handshake{}, err
	}
	return protocol.DecodeHandshake(raw)
}

// attach installs an outbound link. The first link to reach Connected wins.
// Commands queued before the link existed would otherwise tear it down on
// the first pass of serve.
func (n *Node) attach(pc *peerConn) bool {
	n.mu.Lock()
	if n.state != Listening {
		n.mu.Unlock()
		return false
	}
	if stale := n.link.PurgeCommands(); len(stale) > 0 {
		n.logger.Debugf("Discarded %d stale commands", len(stale))
	}
	n.state = Connected
	n.peer = pc
	n.stats.addLink()
	n.mu.Unlock()

	select {
	case n.wake <- struct{}{}:
	default:
	}
	return true
}

func (n *Node) dialAddr(target string) string {
	if _, _, err := net.SplitHostPort(target); err == nil {
		return target
	}
	return net.JoinHostPort(target, strconv.Itoa(n.config.dialPort()))
}
