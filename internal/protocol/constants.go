package protocol

const (
	// DefaultPort is the well-known TCP port every peer listens on.
	DefaultPort = 42069

	FileNameSize  = 96
	HandshakeSize = 9
	HeaderSize    = 8
	MaxFrameSize  = 1<<32 - 1
	PeerIDSize    = 4
	TagSize       = 4
)

const handshakeMagic = "Hello"

// MessageType is the 4-byte ASCII tag that opens every frame.
type MessageType string

const (
	MsgChat MessageType = "chat"
	MsgFile MessageType = "file"
)

func (t MessageType) String() string {
	switch t {
	case MsgChat:
		return "CHAT"
	case MsgFile:
		return "FILE"
	default:
		return "UNKNOWN"
	}
}
