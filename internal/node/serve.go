package node

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rudransh-shrivastava/papercups/internal/channel"
	"github.com/rudransh-shrivastava/papercups/internal/protocol"
)

var nowFunc = time.Now

// serve is the steady-state loop for one link. It returns nil once the link
// is gone and the node is Listening again; a non-nil error means the
// interactive side is gone and Run must stop.
func (n *Node) serve(ctx context.Context, pc *peerConn) error {
	stop := context.AfterFunc(ctx, func() { _ = pc.conn.SetReadDeadline(nowFunc()) })
	defer stop()

	for {
		if n.disconnectRequested() {
			n.logger.Infof("Disconnect requested, dropping %s", pc.remote)
			n.teardown(pc)
			return nil
		}

		msg, err := n.readFrame(pc)
		if err == nil {
			if err := n.deliver(msg); err != nil {
				n.teardown(pc)
				return err
			}
			continue
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if isTimeout(err) {
			// woken by Disconnect; the command is already queued
			if n.disconnectRequested() {
				n.logger.Infof("Disconnect requested, dropping %s", pc.remote)
				n.teardown(pc)
				return nil
			}
			_ = pc.conn.SetReadDeadline(time.Time{})
			if errors.Is(err, errPartialFrame) {
				n.logger.Warnf("Read interrupted mid-frame from %s", pc.remote)
				n.teardown(pc)
				return n.emit(channel.Disconnect{})
			}
			continue
		}

		if errors.Is(err, io.EOF) {
			n.logger.Infof("Peer %s closed the connection", pc.remote)
		} else {
			n.logger.Warnf("Dropping %s: %v", pc.remote, err)
		}
		n.teardown(pc)
		return n.emit(channel.Disconnect{})
	}
}

var errPartialFrame = errors.New("partial frame")

// readFrame peeks the header without consuming it, then reads the whole
// frame. A clean EOF before any byte of a header is returned as io.EOF;
// everything else is fatal for the link.
func (n *Node) readFrame(pc *peerConn) (protocol.Message, error) {
	header, err := pc.reader.Peek(protocol.HeaderSize)
	if err != nil {
		switch {
		case errors.Is(err, io.EOF) && len(header) == 0:
			return nil, io.EOF
		case errors.Is(err, io.EOF):
			return nil, fmt.Errorf("truncated frame header: %w", io.ErrUnexpectedEOF)
		default:
			return nil, err
		}
	}

	length := binary.BigEndian.Uint32(header[protocol.TagSize:protocol.HeaderSize])
	frame := make([]byte, protocol.HeaderSize+int(length))
	if _, err := io.ReadFull(pc.reader, frame); err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", errPartialFrame, err)
		}
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading %d byte frame: %w", len(frame), err)
	}

	msg, err := protocol.Decode(frame)
	if err != nil {
		return nil, err
	}
	n.stats.addRecv(len(frame))
	return msg, nil
}

func (n *Node) deliver(msg protocol.Message) error {
	switch m := msg.(type) {
	case *protocol.Chat:
		return n.emit(channel.Message{Text: m.Text})
	case *protocol.File:
		n.logger.Infof("Received file %q (%d bytes)", m.Name, len(m.Data))
		return n.emit(channel.File{Name: m.Name, Data: m.Data})
	default:
		return fmt.Errorf("%w: %T", protocol.ErrUnknownFrameType, msg)
	}
}

// disconnectRequested drains pending commands without blocking. Only
// Disconnect means anything while a link is up.
func (n *Node) disconnectRequested() bool {
	found := false
	for {
		cmd, ok := n.link.Commands.TryRecv()
		if !ok {
			return found
		}
		if cmd == channel.CmdDisconnect {
			found = true
		} else {
			n.logger.Debugf("Ignoring %s while connected", cmd)
		}
	}
}
