package node

import (
	"fmt"
	"io"

	"github.com/rudransh-shrivastava/papercups/internal/protocol"
)

// Send writes one encoded frame to the peer. It blocks until the frame is
// handed to the socket.
func (n *Node) Send(msg protocol.Message) error {
	return n.SendWithProgress(msg, nil)
}

// SendWithProgress is Send with every written chunk mirrored to progress.
func (n *Node) SendWithProgress(msg protocol.Message, progress io.Writer) error {
	frame, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	n.mu.Lock()
	pc := n.peer
	connected := n.state == Connected
	n.mu.Unlock()
	if !connected || pc == nil {
		return ErrNotConnected
	}

	var w io.Writer = pc.conn
	if progress != nil {
		w = io.MultiWriter(pc.conn, progress)
	}

	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()

	for off := 0; off < len(frame); off += sendChunkSize {
		end := min(off+sendChunkSize, len(frame))
		if _, err := w.Write(frame[off:end]); err != nil {
			return fmt.Errorf("sending %s frame to %s: %w", msg.Type(), pc.remote, err)
		}
	}

	n.stats.addSent(len(frame))
	n.logger.Debugf("Sent %s frame (%d bytes)", msg.Type(), len(frame))
	return nil
}
