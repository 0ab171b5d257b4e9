// Package session holds the interactive side's view of the link: the
// connection entry, the message log and the queue of pending decisions.
// A Session is used from one goroutine; network calls that block are split
// into a call the caller may run elsewhere and a result applied here.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rudransh-shrivastava/papercups/internal/channel"
	"github.com/rudransh-shrivastava/papercups/internal/db"
	"github.com/rudransh-shrivastava/papercups/internal/gate"
	"github.com/rudransh-shrivastava/papercups/internal/logger"
	"github.com/rudransh-shrivastava/papercups/internal/node"
	"github.com/rudransh-shrivastava/papercups/internal/protocol"
	"github.com/rudransh-shrivastava/papercups/internal/store"
	"github.com/sirupsen/logrus"
)

// Network is the part of node.Node the interactive side drives.
type Network interface {
	Initiate(ctx context.Context, target string) error
	SendWithProgress(msg protocol.Message, progress io.Writer) error
	Disconnect() error
	Link() *channel.Link
	Status() node.Status
	Stats() node.Stats
}

type FileSaver interface {
	Save(name string, data []byte) (string, error)
}

type History interface {
	store.TransferRepository
	store.ConnectionRepository
}

type Config struct {
	Network Network
	Saver   FileSaver
	// History is optional.
	History History
	Logger  *logrus.Logger
}

type Session struct {
	ctx     context.Context
	network Network
	saver   FileSaver
	history History
	logger  *logrus.Logger

	gate gate.Gate
	log  []Entry
	peer string
	quit bool

	now func() time.Time
}

func New(ctx context.Context, cfg Config) *Session {
	log := cfg.Logger
	if log == nil {
		log = logger.NewLogger(io.Discard, false)
	}

	return &Session{
		ctx:     ctx,
		network: cfg.Network,
		saver:   cfg.Saver,
		history: cfg.History,
		logger:  log,
		now:     time.Now,
	}
}

func (s *Session) Network() Network { return s.network }

// Peer is the connection entry: the address of the linked peer, or "".
func (s *Session) Peer() string { return s.peer }

func (s *Session) Log() []Entry { return s.log }

func (s *Session) Pending() (gate.Decision, bool) { return s.gate.Current() }

func (s *Session) PendingCount() int { return s.gate.Len() }

func (s *Session) Quit() bool { return s.quit }

func (s *Session) RequestQuit() { s.quit = true }

// StatusLine describes the connection for display.
func (s *Session) StatusLine() string {
	if s.peer != "" {
		st := s.network.Stats()
		return fmt.Sprintf("Connected to %s  ↑%s ↓%s", s.peer,
			humanize.IBytes(uint64(st.BytesSent)), humanize.IBytes(uint64(st.BytesRecv)))
	}
	return s.network.Status().String()
}

// Poll drains every pending event without blocking. It reports whether
// anything changed. ErrChannelClosed means the network side is gone.
func (s *Session) Poll() (bool, error) {
	link := s.network.Link()
	events := link.PollEvents()

	for _, e := range events {
		s.apply(e)
	}

	if len(events) == 0 && link.Events.Closed() {
		return false, channel.ErrChannelClosed
	}
	return len(events) > 0, nil
}

func (s *Session) apply(e channel.Event) {
	s.logger.Debugf("Handling %s event", channel.EventName(e))

	switch ev := e.(type) {
	case channel.ConnectRequest:
		s.gate.Push(gate.NewConnectApproval(ev.ID, ev.IP))
	case channel.Message:
		s.append(Received, ev.Text)
		s.recordChat(db.Received, ev.Text)
	case channel.File:
		s.append(System, fmt.Sprintf("received a file: %s (%s)", ev.Name, humanize.IBytes(uint64(len(ev.Data)))))
		s.gate.Push(gate.NewFileApproval(ev.Name, ev.Data))
	case channel.Disconnect:
		if s.peer != "" {
			s.append(System, "peer disconnected")
		}
		s.peer = ""
	}
}

// Resolve answers the decision at the head of the gate and performs its
// side effect. It reports false when nothing was pending.
func (s *Session) Resolve(yes bool) (bool, error) {
	res, ok := s.gate.Resolve(yes)
	if !ok {
		return false, nil
	}

	d := res.Decision
	switch d.Kind {
	case gate.ConnectApproval:
		return true, s.resolveConnect(d, res.Yes)
	case gate.FileApproval:
		return true, s.resolveFile(d, res.Yes)
	default:
		return true, nil
	}
}

func (s *Session) resolveConnect(d gate.Decision, yes bool) error {
	link := s.network.Link()
	if !yes {
		s.append(System, fmt.Sprintf("rejected connection from %s", d.IP))
		return link.Commands.Send(channel.CmdDisconnect)
	}

	if err := link.Commands.Send(channel.CmdConnectAccept); err != nil {
		return err
	}
	s.peer = d.IP.String()
	s.append(System, fmt.Sprintf("connected to %s", s.peer))

	if s.history != nil {
		if err := s.history.RecordConnection(s.ctx, s.peer, d.PeerID.String(), true); err != nil {
			s.logger.Warnf("Error recording connection: %v", err)
		}
	}
	return nil
}

// resolveFile only touches the disk; the bytes are already in memory, so it
// is safe after the link that carried them is gone.
func (s *Session) resolveFile(d gate.Decision, yes bool) error {
	if !yes {
		s.append(System, fmt.Sprintf("discarded %s", d.FileName))
		return nil
	}

	path, err := s.saver.Save(d.FileName, d.FileData)
	if err != nil {
		s.logger.Warnf("Error saving %s: %v", d.FileName, err)
		s.gate.Push(gate.NewNotice("Save failed", err.Error()))
		return nil
	}

	s.append(System, fmt.Sprintf("saved %s to %s", d.FileName, path))
	if s.history != nil {
		if err := s.history.RecordFile(s.ctx, db.Received, s.peer, d.FileName, d.FileData, path); err != nil {
			s.logger.Warnf("Error recording file: %v", err)
		}
	}
	return nil
}

// Connect runs Initiate and applies its outcome. Callers that must not
// block call Network().Initiate themselves and pass the result to
// ConnectResult.
func (s *Session) Connect(ctx context.Context, target string) error {
	s.append(System, fmt.Sprintf("connecting to %s...", target))
	err := s.network.Initiate(ctx, target)
	s.ConnectResult(target, err)
	return err
}

func (s *Session) ConnectResult(target string, err error) {
	switch {
	case err == nil:
		s.peer = target
		s.append(System, fmt.Sprintf("connected to %s", target))
		if s.history != nil {
			if herr := s.history.RecordConnection(s.ctx, target, "", false); herr != nil {
				s.logger.Warnf("Error recording connection: %v", herr)
			}
		}
	case errors.Is(err, node.ErrHandshakeRejected):
		s.gate.Push(gate.NewNotice("Handshake rejected", fmt.Sprintf("%s did not echo our handshake", target)))
	case errors.Is(err, node.ErrAlreadyConnected):
		s.gate.Push(gate.NewNotice("Already connected", "disconnect before connecting elsewhere"))
	default:
		s.gate.Push(gate.NewNotice("Connection failed", err.Error()))
	}
}

// SendText sends one chat line. Chat lines are small, so callers send them
// inline.
func (s *Session) SendText(text string) error {
	if err := s.network.SendWithProgress(&protocol.Chat{Text: text}, nil); err != nil {
		s.sendFailed(err)
		return err
	}
	s.append(Sent, text)
	s.recordChat(db.Sent, text)
	return nil
}

// LoadFile reads path into a file frame named after its base name.
func LoadFile(path string) (*protocol.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	if len(name) > protocol.FileNameSize {
		return nil, fmt.Errorf("%w: %s", protocol.ErrNameTooLong, name)
	}
	return &protocol.File{Name: name, Data: data}, nil
}

// SendFile loads and sends path, mirroring progress if set.
func (s *Session) SendFile(path string, progress io.Writer) error {
	f, err := LoadFile(path)
	if err != nil {
		s.FileResult(nil, err)
		return err
	}
	err = s.network.SendWithProgress(f, progress)
	s.FileResult(f, err)
	return err
}

// FileResult applies the outcome of sending f.
func (s *Session) FileResult(f *protocol.File, err error) {
	if err != nil {
		s.sendFailed(err)
		return
	}

	s.append(Sent, fmt.Sprintf("sent a file: %s (%s)", f.Name, humanize.IBytes(uint64(len(f.Data)))))
	if s.history != nil {
		if herr := s.history.RecordFile(s.ctx, db.Sent, s.peer, f.Name, f.Data, ""); herr != nil {
			s.logger.Warnf("Error recording file: %v", herr)
		}
	}
}

func (s *Session) Disconnect() error {
	if err := s.network.Disconnect(); err != nil {
		return err
	}
	if s.peer != "" {
		s.append(System, fmt.Sprintf("disconnected from %s", s.peer))
	}
	s.peer = ""
	return nil
}

// Note adds a system line to the log.
func (s *Session) Note(text string) {
	s.append(System, text)
}

func (s *Session) sendFailed(err error) {
	if errors.Is(err, node.ErrNotConnected) {
		s.append(System, "not connected; use ?connect <ip>")
		return
	}
	s.append(System, "send failed: "+err.Error())
}

func (s *Session) recordChat(dir db.Direction, text string) {
	if s.history == nil {
		return
	}
	if err := s.history.RecordChat(s.ctx, dir, s.peer, text); err != nil {
		s.logger.Warnf("Error recording chat: %v", err)
	}
}

func (s *Session) append(dir Direction, text string) {
	s.log = append(s.log, Entry{Direction: dir, Text: text, At: s.now()})
}
