package node

import (
	"net/netip"

	"github.com/rudransh-shrivastava/papercups/internal/protocol"
)

type State int

const (
	Listening State = iota
	AwaitingApproval
	Connected
)

func (s State) String() string {
	switch s {
	case Listening:
		return "Listening"
	case AwaitingApproval:
		return "Awaiting approval"
	case Connected:
		return "Connected"
	default:
		return "Unknown"
	}
}

// Status is a snapshot of the connection lifecycle. PeerID is only known
// for inbound links; an outbound peer merely echoes our own id.
type Status struct {
	State  State
	Remote netip.AddrPort
	PeerID protocol.PeerID
}

func (s Status) String() string {
	switch s.State {
	case Connected, AwaitingApproval:
		return s.State.String() + " " + s.Remote.Addr().String()
	default:
		return s.State.String()
	}
}
