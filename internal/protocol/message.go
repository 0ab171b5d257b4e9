package protocol

import (
	"fmt"
	"math/rand"
)

// Message is a decoded frame payload.
type Message interface {
	Type() MessageType
}

type Chat struct {
	Text string
}

func (Chat) Type() MessageType { return MsgChat }

type File struct {
	Name string
	Data []byte
}

func (File) Type() MessageType { return MsgFile }

// PeerID is the per-process token carried by the handshake. It is never 0.
type PeerID uint32

func (id PeerID) String() string {
	return fmt.Sprintf("%08x", uint32(id))
}

// NewPeerID draws a random non-zero id. Callers generate it once at startup.
func NewPeerID() PeerID {
	return newPeerID(rand.Uint32)
}

func newPeerID(next func() uint32) PeerID {
	for {
		if v := next(); v != 0 {
			return PeerID(v)
		}
	}
}

// Handshake is the fixed 9-byte frame exchanged before a link is usable.
// Two handshakes are equal when they carry the same id.
type Handshake struct {
	ID PeerID
}

func NewHandshake(id PeerID) Handshake {
	return Handshake{ID: id}
}
