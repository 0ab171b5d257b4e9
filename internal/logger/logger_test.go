package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestPrettyFormatterPlain(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false)

	log.WithField("peer", "10.0.0.2").WithField("bytes", 12).Info("Received file")

	line := buf.String()
	if strings.Contains(line, "\033[") {
		t.Errorf("Expected no colour codes for a non-terminal writer, got %q", line)
	}
	if !strings.Contains(line, "INFO  Received file bytes=12 peer=10.0.0.2") {
		t.Errorf("Unexpected line: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("Expected trailing newline")
	}
}

func TestPrettyFormatterColor(t *testing.T) {
	f := &PrettyFormatter{Color: true}
	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.WarnLevel
	entry.Message = "slow peer"

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), colorYellow+"WARN ") {
		t.Errorf("Expected yellow WARN, got %q", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected debug suppressed at info level, got %q", buf.String())
	}

	NewLogger(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "DEBUG shown") {
		t.Errorf("Expected debug line, got %q", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papercups.log")

	log, closer, err := NewFileLogger(path, false)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	log.Info("hello")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "INFO  hello") {
		t.Errorf("Unexpected log contents: %q", data)
	}
}

func TestNewFileLoggerDiscard(t *testing.T) {
	log, closer, err := NewFileLogger("", false)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	log.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
