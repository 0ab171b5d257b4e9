// Package gate queues decisions that need the user before anything happens:
// letting an inbound peer in, keeping an inbound file, or acknowledging a
// failure. Decisions are plain data; the caller switches on Kind to act.
package gate

import (
	"fmt"
	"net/netip"

	"github.com/dustin/go-humanize"
	"github.com/rudransh-shrivastava/papercups/internal/protocol"
)

type Kind int

const (
	ConnectApproval Kind = iota
	FileApproval
	Notice
)

func (k Kind) String() string {
	switch k {
	case ConnectApproval:
		return "connect_approval"
	case FileApproval:
		return "file_approval"
	case Notice:
		return "notice"
	default:
		return "unknown"
	}
}

// Mode tells the front-end which answers to offer.
type Mode int

const (
	YesNo Mode = iota
	Acknowledge
)

// Decision is one pending modal. Only the fields for its Kind are set.
type Decision struct {
	Kind Kind

	PeerID protocol.PeerID
	IP     netip.Addr

	FileName string
	FileData []byte

	Title string
	Text  string
}

func NewConnectApproval(id protocol.PeerID, ip netip.Addr) Decision {
	return Decision{Kind: ConnectApproval, PeerID: id, IP: ip}
}

func NewFileApproval(name string, data []byte) Decision {
	return Decision{Kind: FileApproval, FileName: name, FileData: data}
}

func NewNotice(title, text string) Decision {
	return Decision{Kind: Notice, Title: title, Text: text}
}

func (d Decision) Mode() Mode {
	if d.Kind == Notice {
		return Acknowledge
	}
	return YesNo
}

// Prompt is the text shown in the modal.
func (d Decision) Prompt() string {
	switch d.Kind {
	case ConnectApproval:
		return fmt.Sprintf("Accept connection from %s (peer %s)?", d.IP, d.PeerID)
	case FileApproval:
		return fmt.Sprintf("Save file %q (%s)?", d.FileName, humanize.IBytes(uint64(len(d.FileData))))
	default:
		if d.Title == "" {
			return d.Text
		}
		return d.Title + ": " + d.Text
	}
}

// Gate is a FIFO of decisions. Only the head is shown; resolving it reveals
// the next. Not safe for concurrent use; it lives on the interactive side.
type Gate struct {
	queue []Decision
}

func (g *Gate) Push(d Decision) {
	g.queue = append(g.queue, d)
}

// Current returns the decision awaiting the user, if any.
func (g *Gate) Current() (Decision, bool) {
	if len(g.queue) == 0 {
		return Decision{}, false
	}
	return g.queue[0], true
}

// Resolve pops the head and returns it with the answer attached. For
// Acknowledge decisions the answer is always true.
func (g *Gate) Resolve(yes bool) (Resolution, bool) {
	d, ok := g.Current()
	if !ok {
		return Resolution{}, false
	}
	g.queue[0] = Decision{}
	g.queue = g.queue[1:]

	if d.Mode() == Acknowledge {
		yes = true
	}
	return Resolution{Decision: d, Yes: yes}, true
}

func (g *Gate) Len() int { return len(g.queue) }

type Resolution struct {
	Decision Decision
	Yes      bool
}
