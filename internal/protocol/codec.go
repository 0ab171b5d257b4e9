package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// EncodeHandshake returns "Hello" followed by the big-endian id.
func EncodeHandshake(h Handshake) []byte {
	buf := make([]byte, HandshakeSize)
	copy(buf, handshakeMagic)
	binary.BigEndian.PutUint32(buf[len(handshakeMagic):], uint32(h.ID))
	return buf
}

// DecodeHandshake reads the id out of the first 9 bytes of data; anything
// after them is ignored. The magic is not checked, only the width.
func DecodeHandshake(data []byte) (Handshake, error) {
	if len(data) < HandshakeSize {
		return Handshake{}, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedHandshake, len(data), HandshakeSize)
	}
	return Handshake{ID: PeerID(binary.BigEndian.Uint32(data[len(handshakeMagic):]))}, nil
}

// Encode serializes a chat or file message into a tagged, length-prefixed frame.
func Encode(msg Message) ([]byte, error) {
	switch m := msg.(type) {
	case *Chat:
		return encodeChat(m)
	case Chat:
		return encodeChat(&m)
	case *File:
		return encodeFile(m)
	case File:
		return encodeFile(&m)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownFrameType, msg)
	}
}

// Decode parses one complete frame. The declared length must match the
// number of bytes after the header exactly.
func Decode(data []byte) (Message, error) {
	msgType, length, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[HeaderSize:]
	if uint64(len(payload)) != uint64(length) {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, have %d", ErrShortBuffer, length, len(payload))
	}

	switch msgType {
	case MsgChat:
		return decodeChat(payload)
	case MsgFile:
		return decodeFile(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrameType, string(msgType))
	}
}

// DecodeHeader splits the first 8 bytes of a frame into its tag and payload
// length. It does not validate the tag.
func DecodeHeader(data []byte) (MessageType, uint32, error) {
	if len(data) < HeaderSize {
		return "", 0, fmt.Errorf("%w: frame header needs %d bytes, have %d", ErrShortBuffer, HeaderSize, len(data))
	}
	return MessageType(data[:TagSize]), binary.BigEndian.Uint32(data[TagSize:HeaderSize]), nil
}

func encodeChat(m *Chat) ([]byte, error) {
	if !utf8.ValidString(m.Text) {
		return nil, ErrInvalidUTF8
	}
	if uint64(len(m.Text)) > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}

	buf := make([]byte, HeaderSize+len(m.Text))
	putHeader(buf, MsgChat, uint32(len(m.Text)))
	copy(buf[HeaderSize:], m.Text)
	return buf, nil
}

func encodeFile(m *File) ([]byte, error) {
	if len(m.Name) > FileNameSize {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrNameTooLong, m.Name, len(m.Name))
	}
	if !utf8.ValidString(m.Name) {
		return nil, ErrInvalidUTF8
	}
	if uint64(len(m.Data))+FileNameSize > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}

	buf := make([]byte, HeaderSize+FileNameSize+len(m.Data))
	putHeader(buf, MsgFile, uint32(FileNameSize+len(m.Data)))

	// name is right-aligned in its field, zero bytes pad the left
	nameField := buf[HeaderSize : HeaderSize+FileNameSize]
	copy(nameField[FileNameSize-len(m.Name):], m.Name)

	copy(buf[HeaderSize+FileNameSize:], m.Data)
	return buf, nil
}

func decodeChat(payload []byte) (*Chat, error) {
	if !utf8.Valid(payload) {
		return nil, ErrInvalidUTF8
	}
	return &Chat{Text: string(payload)}, nil
}

func decodeFile(payload []byte) (*File, error) {
	if len(payload) < FileNameSize {
		return nil, fmt.Errorf("%w: file frame needs %d name bytes, have %d", ErrShortBuffer, FileNameSize, len(payload))
	}

	name := bytes.TrimLeft(payload[:FileNameSize], "\x00")
	if !utf8.Valid(name) {
		return nil, fmt.Errorf("%w: file name", ErrInvalidUTF8)
	}

	data := make([]byte, len(payload)-FileNameSize)
	copy(data, payload[FileNameSize:])
	return &File{Name: string(name), Data: data}, nil
}

func putHeader(buf []byte, msgType MessageType, length uint32) {
	copy(buf[:TagSize], msgType)
	binary.BigEndian.PutUint32(buf[TagSize:HeaderSize], length)
}
