package node

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"sync"

	"github.com/rudransh-shrivastava/papercups/internal/channel"
	"github.com/rudransh-shrivastava/papercups/internal/logger"
	"github.com/rudransh-shrivastava/papercups/internal/protocol"
	"github.com/sirupsen/logrus"
)

// Node owns the listening socket and at most one peer socket. All socket
// reads and lifecycle transitions happen on the goroutine running Run;
// other goroutines talk to it through the Link or the exported methods.
type Node struct {
	config   Config
	id       protocol.PeerID
	logger   *logrus.Logger
	link     *channel.Link
	listener net.Listener

	// acceptTurn lets the accept goroutine take one connection off the
	// listener. Only granted while Listening, so later arrivals wait in the
	// OS backlog.
	acceptTurn chan struct{}
	requests   chan inboundRequest
	wake       chan struct{}

	mu      sync.Mutex
	state   State
	peer    *peerConn
	pending Status

	stats stats
}

type peerConn struct {
	conn   net.Conn
	remote netip.AddrPort
	id     protocol.PeerID
	reader *bufio.Reader

	writeMu sync.Mutex
}

func newPeerConn(conn net.Conn, id protocol.PeerID) *peerConn {
	return &peerConn{
		conn:   conn,
		remote: remoteAddrPort(conn),
		id:     id,
		reader: bufio.NewReaderSize(conn, sendChunkSize),
	}
}

// New binds the listener. A port that is already bound is returned as an
// error; the caller cannot continue without it.
func New(cfg Config) (*Node, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.NewLogger(io.Discard, false)
	}

	id := cfg.PeerID
	if id == 0 {
		id = protocol.NewPeerID()
	}

	ln := cfg.Listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", cfg.listenAddr())
		if err != nil {
			return nil, fmt.Errorf("listening on %s: %w", cfg.listenAddr(), err)
		}
	}

	return &Node{
		config:     cfg,
		id:         id,
		logger:     log,
		link:       channel.NewLink(),
		listener:   ln,
		acceptTurn: make(chan struct{}, 1),
		requests:   make(chan inboundRequest),
		wake:       make(chan struct{}, 1),
		state:      Listening,
	}, nil
}

func (n *Node) ID() protocol.PeerID { return n.id }

func (n *Node) Addr() net.Addr { return n.listener.Addr() }

// Link returns the event and command queues shared with the interactive side.
func (n *Node) Link() *channel.Link { return n.link }

func (n *Node) Stats() Stats { return n.stats.snapshot() }

func (n *Node) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *Node) Status() Status {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case Connected:
		return Status{State: Connected, Remote: n.peer.remote, PeerID: n.peer.id}
	case AwaitingApproval:
		return n.pending
	default:
		return Status{State: Listening}
	}
}

// Run drives the connection lifecycle until ctx is cancelled or the
// interactive side closes the link. It must be called once.
func (n *Node) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n.logger.Infof("Listening on %s (peer id %s)", n.listener.Addr(), n.id)

	stopListener := context.AfterFunc(ctx, func() { _ = n.listener.Close() })
	defer stopListener()
	defer n.shutdown()

	go n.acceptLoop(ctx)

	armed := false
	for {
		if pc := n.currentPeer(); pc != nil {
			if err := n.serve(ctx, pc); err != nil {
				return err
			}
			continue
		}

		if !armed {
			n.acceptTurn <- struct{}{}
			armed = true
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-n.requests:
			armed = false
			if err := n.handleInbound(ctx, req); err != nil {
				return err
			}
		case <-n.wake:
		}
	}
}

// Disconnect asks the network goroutine to drop the current peer, or to
// reject a connection awaiting approval. No Disconnect event follows.
// While Listening there is nothing to drop and no command is queued.
func (n *Node) Disconnect() error {
	if n.State() == Listening {
		return nil
	}
	if err := n.link.Commands.Send(channel.CmdDisconnect); err != nil {
		return err
	}

	// a blocked peek only notices the command once its read returns
	if pc := n.currentPeer(); pc != nil {
		_ = pc.conn.SetReadDeadline(nowFunc())
	}
	return nil
}

func (n *Node) currentPeer() *peerConn {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.peer
}

func (n *Node) setConnected(pc *peerConn) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state == Connected {
		return false
	}
	n.state = Connected
	n.peer = pc
	n.pending = Status{}
	n.stats.addLink()
	return true
}

func (n *Node) setListening() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state = Listening
	n.peer = nil
	n.pending = Status{}
}

func (n *Node) teardown(pc *peerConn) {
	if tcp, ok := pc.conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
		_ = tcp.CloseRead()
	}
	_ = pc.conn.Close()
	n.setListening()

	st := n.stats.snapshot()
	n.lifecycle(pc, Listening).WithFields(logrus.Fields{
		"frames_sent": st.FramesSent,
		"frames_recv": st.FramesRecv,
		"bytes_sent":  st.BytesSent,
		"bytes_recv":  st.BytesRecv,
	}).Info("Link closed")
}

func (n *Node) lifecycle(pc *peerConn, state State) *logrus.Entry {
	fields := logrus.Fields{"peer": pc.remote.String(), "state": state.String()}
	if pc.id != 0 {
		fields["peer_id"] = pc.id.String()
	}
	return n.logger.WithFields(fields)
}

func (n *Node) shutdown() {
	if pc := n.currentPeer(); pc != nil {
		n.teardown(pc)
	}
	n.logger.Info("Node stopped")
}

func (n *Node) emit(e channel.Event) error {
	if err := n.link.Events.Send(e); err != nil {
		return fmt.Errorf("emitting %s: %w", channel.EventName(e), err)
	}
	n.logger.Debugf("Emitted %s event", channel.EventName(e))
	return nil
}

func remoteAddrPort(conn net.Conn) netip.AddrPort {
	if tcp, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		ap := tcp.AddrPort()
		return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())
	}
	ap, err := netip.ParseAddrPort(conn.RemoteAddr().String())
	if err != nil {
		return netip.AddrPort{}
	}
	return ap
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
