package channel

import (
	"net/netip"

	"github.com/rudransh-shrivastava/papercups/internal/protocol"
)

// Event flows from the network goroutine to the interactive side.
type Event interface {
	eventName() string
}

// ConnectRequest is emitted once an inbound peer has sent a valid handshake.
// The network goroutine then waits for exactly one Command.
type ConnectRequest struct {
	ID protocol.PeerID
	IP netip.Addr
}

type Message struct {
	Text string
}

type File struct {
	Name string
	Data []byte
}

// Disconnect reports that the peer went away or the link failed. It is not
// emitted for a teardown the interactive side asked for.
type Disconnect struct{}

func (ConnectRequest) eventName() string { return "connect_request" }
func (Message) eventName() string        { return "message" }
func (File) eventName() string           { return "file" }
func (Disconnect) eventName() string     { return "disconnect" }

// EventName is used for log fields.
func EventName(e Event) string {
	if e == nil {
		return "none"
	}
	return e.eventName()
}

// Command flows from the interactive side to the network goroutine.
type Command int

const (
	CmdConnectAccept Command = iota
	CmdDisconnect
)

func (c Command) String() string {
	switch c {
	case CmdConnectAccept:
		return "CONNECT_ACCEPT"
	case CmdDisconnect:
		return "DISCONNECT"
	default:
		return "UNKNOWN"
	}
}
