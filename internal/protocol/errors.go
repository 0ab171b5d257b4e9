package protocol

import "errors"

var (
	ErrFrameTooLarge      = errors.New("frame payload exceeds 32-bit length")
	ErrInvalidUTF8        = errors.New("payload is not valid UTF-8")
	ErrMalformedHandshake = errors.New("malformed handshake")
	ErrNameTooLong        = errors.New("file name longer than 96 bytes")
	ErrShortBuffer        = errors.New("short buffer")
	ErrUnknownFrameType   = errors.New("unknown frame type")
)
