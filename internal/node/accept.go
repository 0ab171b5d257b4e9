package node

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/rudransh-shrivastava/papercups/internal/channel"
	"github.com/rudransh-shrivastava/papercups/internal/protocol"
)

type inboundRequest struct {
	conn      net.Conn
	handshake protocol.Handshake
	raw       []byte
}

// acceptLoop takes one connection per turn and reads its handshake under a
// deadline, so a silent initiator never stalls the network goroutine.
func (n *Node) acceptLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.acceptTurn:
		}

		req, err := n.acceptHandshake(ctx)
		if err != nil {
			if ctx.Err() == nil {
				n.logger.Errorf("Accept failed: %v", err)
			}
			return
		}

		select {
		case n.requests <- req:
		case <-ctx.Done():
			_ = req.conn.Close()
			return
		}
	}
}

// acceptHandshake retries until one inbound connection delivers a decodable
// handshake. Malformed or slow initiators are dropped without a retry limit.
func (n *Node) acceptHandshake(ctx context.Context) (inboundRequest, error) {
	for {
		conn, err := n.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return inboundRequest{}, err
			}
			n.logger.Warnf("Error accepting connection: %v", err)
			continue
		}

		req, err := n.readHandshake(conn)
		if err != nil {
			n.logger.Warnf("Dropping %s: %v", conn.RemoteAddr(), err)
			_ = conn.Close()
			continue
		}
		return req, nil
	}
}

func (n *Node) readHandshake(conn net.Conn) (inboundRequest, error) {
	if err := conn.SetReadDeadline(nowFunc().Add(n.config.handshakeTimeout())); err != nil {
		return inboundRequest{}, err
	}

	raw := make([]byte, protocol.HandshakeSize)
	if _, err := io.ReadFull(conn, raw); err != nil {
		return inboundRequest{}, err
	}

	h, err := protocol.DecodeHandshake(raw)
	if err != nil {
		return inboundRequest{}, err
	}

	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return inboundRequest{}, err
	}
	return inboundRequest{conn: conn, handshake: h, raw: raw}, nil
}

// handleInbound surfaces a ConnectRequest and blocks until the interactive
// side decides. Returned errors are fatal to Run.
func (n *Node) handleInbound(ctx context.Context, req inboundRequest) error {
	pc := newPeerConn(req.conn, req.handshake.ID)

	if stale := n.link.PurgeCommands(); len(stale) > 0 {
		n.logger.Debugf("Discarded %d stale commands", len(stale))
	}

	n.mu.Lock()
	if n.state != Listening {
		n.mu.Unlock()
		n.logger.Infof("Dropping %s, a link is already up", pc.remote)
		_ = req.conn.Close()
		return nil
	}
	n.state = AwaitingApproval
	n.pending = Status{State: AwaitingApproval, Remote: pc.remote, PeerID: pc.id}
	n.mu.Unlock()

	n.lifecycle(pc, AwaitingApproval).Info("Connection request")

	if err := n.emit(channel.ConnectRequest{ID: pc.id, IP: pc.remote.Addr()}); err != nil {
		_ = req.conn.Close()
		n.setListening()
		return err
	}

	cmd, err := n.link.AwaitDecision(ctx)
	if err != nil {
		_ = req.conn.Close()
		n.setListening()
		return err
	}

	switch cmd {
	case channel.CmdConnectAccept:
		if _, err := req.conn.Write(req.raw); err != nil {
			n.logger.Warnf("Echoing handshake to %s failed: %v", pc.remote, err)
			_ = req.conn.Close()
			n.setListening()
			return n.emit(channel.Disconnect{})
		}
		if !n.setConnected(pc) {
			_ = req.conn.Close()
			return nil
		}
		n.lifecycle(pc, Connected).Info("Accepted inbound peer")
	default:
		n.lifecycle(pc, Listening).Info("Rejected inbound peer")
		_ = req.conn.Close()
		n.setListening()
	}
	return nil
}
