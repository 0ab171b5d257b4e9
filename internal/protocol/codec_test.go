package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeHandshakeLayout(t *testing.T) {
	got := EncodeHandshake(NewHandshake(0x01020304))
	want := []byte{'H', 'e', 'l', 'l', 'o', 0x01, 0x02, 0x03, 0x04}

	if !bytes.Equal(got, want) {
		t.Errorf("EncodeHandshake = %v, want %v", got, want)
	}
}

func TestDecodeHandshake(t *testing.T) {
	h, err := DecodeHandshake([]byte{'H', 'e', 'l', 'l', 'o', 0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("DecodeHandshake failed: %v", err)
	}

	if h.ID != 0xdeadbeef {
		t.Errorf("Expected id 0xdeadbeef, got %s", h.ID)
	}

	if h != NewHandshake(0xdeadbeef) {
		t.Errorf("Expected structural equality with NewHandshake")
	}
}

func TestDecodeHandshakeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"magic only", []byte("Hello")},
		{"one byte short", []byte{'H', 'e', 'l', 'l', 'o', 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeHandshake(tt.data)
			if !errors.Is(err, ErrMalformedHandshake) {
				t.Errorf("Expected ErrMalformedHandshake, got %v", err)
			}
		})
	}
}

func TestDecodeHandshakeIgnoresTrailingBytes(t *testing.T) {
	data := append(EncodeHandshake(NewHandshake(0x01020304)), 'c', 'h', 'a', 't')

	h, err := DecodeHandshake(data)
	if err != nil {
		t.Fatalf("DecodeHandshake failed: %v", err)
	}

	if h != NewHandshake(0x01020304) {
		t.Errorf("Expected id 0x01020304, got %s", h.ID)
	}
}

func TestEncodeChatLayout(t *testing.T) {
	data, err := Encode(&Chat{Text: "hi"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := []byte{'c', 'h', 'a', 't', 0, 0, 0, 2, 'h', 'i'}
	if !bytes.Equal(data, want) {
		t.Errorf("Encode = %v, want %v", data, want)
	}
}

func TestChatRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"hi",
		"héllo wörld",
		"日本語のテキスト",
		"emoji 🚀 and\nnewlines\t",
		strings.Repeat("x", 70000),
	}

	for _, text := range texts {
		data, err := Encode(Chat{Text: text})
		if err != nil {
			t.Fatalf("Encode(%q) failed: %v", text, err)
		}

		decoded, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}

		chat, ok := decoded.(*Chat)
		if !ok {
			t.Fatalf("Expected *Chat, got %T", decoded)
		}

		if chat.Text != text {
			t.Errorf("Round trip mismatch: got %q, want %q", chat.Text, text)
		}
	}
}

func TestDecodeChatInvalidUTF8(t *testing.T) {
	data := []byte{'c', 'h', 'a', 't', 0, 0, 0, 2, 0xff, 0xfe}

	_, err := Decode(data)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}

func TestEncodeFileLayout(t *testing.T) {
	data, err := Encode(&File{Name: "a.txt", Data: []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if len(data) != HeaderSize+FileNameSize+3 {
		t.Fatalf("Expected %d bytes, got %d", HeaderSize+FileNameSize+3, len(data))
	}

	if string(data[:4]) != "file" {
		t.Errorf("Expected tag 'file', got %q", data[:4])
	}

	if !bytes.Equal(data[4:8], []byte{0, 0, 0, 99}) {
		t.Errorf("Expected length 99, got %v", data[4:8])
	}

	nameField := data[HeaderSize : HeaderSize+FileNameSize]
	if !bytes.Equal(nameField[:FileNameSize-5], make([]byte, FileNameSize-5)) {
		t.Error("Expected zero padding on the left of the name field")
	}
	if string(nameField[FileNameSize-5:]) != "a.txt" {
		t.Errorf("Expected name right-aligned, got %q", nameField[FileNameSize-5:])
	}

	if !bytes.Equal(data[HeaderSize+FileNameSize:], []byte{1, 2, 3}) {
		t.Errorf("File data mismatch")
	}
}

func TestFileRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{"empty data", File{Name: "empty.bin", Data: []byte{}}},
		{"small", File{Name: "notes.txt", Data: []byte("some notes")}},
		{"unicode name", File{Name: "résumé-日本.pdf", Data: []byte{0, 1, 2, 0}}},
		{"max name", File{Name: strings.Repeat("n", FileNameSize), Data: []byte("x")}},
		{"large", File{Name: "blob", Data: bytes.Repeat([]byte{0xab}, 1<<20)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(&tt.file)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			file, ok := decoded.(*File)
			if !ok {
				t.Fatalf("Expected *File, got %T", decoded)
			}

			if file.Name != tt.file.Name {
				t.Errorf("Name mismatch: got %q, want %q", file.Name, tt.file.Name)
			}
			if !bytes.Equal(file.Data, tt.file.Data) {
				t.Errorf("Data mismatch: got %d bytes, want %d", len(file.Data), len(tt.file.Data))
			}
		})
	}
}

func TestEncodeFileNameTooLong(t *testing.T) {
	_, err := Encode(&File{Name: strings.Repeat("n", FileNameSize+1)})
	if !errors.Is(err, ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestDecodeFileShortBuffer(t *testing.T) {
	data := append([]byte{'f', 'i', 'l', 'e', 0, 0, 0, 10}, make([]byte, 10)...)

	_, err := Decode(data)
	if !errors.Is(err, ErrShortBuffer) {
		t.Errorf("Expected ErrShortBuffer, got %v", err)
	}
}

func TestDecodeFileInvalidName(t *testing.T) {
	data := make([]byte, HeaderSize+FileNameSize)
	copy(data, "file")
	data[7] = FileNameSize
	data[HeaderSize+FileNameSize-1] = 0xff

	_, err := Decode(data)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"header only", []byte{'c', 'h', 'a', 't'}},
		{"declared longer", []byte{'c', 'h', 'a', 't', 0, 0, 0, 5, 'h', 'i'}},
		{"declared shorter", []byte{'c', 'h', 'a', 't', 0, 0, 0, 1, 'h', 'i'}},
		{"unknown tag and wrong length", []byte{'p', 'i', 'n', 'g', 0, 0, 0, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, ErrShortBuffer) {
				t.Errorf("Expected ErrShortBuffer, got %v", err)
			}
		})
	}
}

func TestDecodeUnknownFrameType(t *testing.T) {
	_, err := Decode([]byte{'p', 'i', 'n', 'g', 0, 0, 0, 1, 'x'})
	if !errors.Is(err, ErrUnknownFrameType) {
		t.Errorf("Expected ErrUnknownFrameType, got %v", err)
	}
}

func TestDecodeHeader(t *testing.T) {
	msgType, length, err := DecodeHeader([]byte{'f', 'i', 'l', 'e', 0, 1, 0, 0})
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}

	if msgType != MsgFile {
		t.Errorf("Expected MsgFile, got %v", msgType)
	}
	if length != 65536 {
		t.Errorf("Expected length 65536, got %d", length)
	}
}

func TestMessageTypeString(t *testing.T) {
	tests := []struct {
		expected string
		msgType  MessageType
	}{
		{"CHAT", MsgChat},
		{"FILE", MsgFile},
		{"UNKNOWN", MessageType("ping")},
	}

	for _, tt := range tests {
		if got := tt.msgType.String(); got != tt.expected {
			t.Errorf("%q.String() = %s, want %s", string(tt.msgType), got, tt.expected)
		}
	}
}

func TestNewPeerIDNeverZero(t *testing.T) {
	for i := 0; i < 10000; i++ {
		if NewPeerID() == 0 {
			t.Fatalf("NewPeerID returned 0 on sample %d", i)
		}
	}
}

func TestNewPeerIDRetriesZero(t *testing.T) {
	draws := []uint32{0, 0, 0, 7}
	calls := 0

	id := newPeerID(func() uint32 {
		v := draws[calls]
		calls++
		return v
	})

	if id != 7 {
		t.Errorf("Expected id 7, got %d", id)
	}
	if calls != 4 {
		t.Errorf("Expected 4 draws, got %d", calls)
	}
}
