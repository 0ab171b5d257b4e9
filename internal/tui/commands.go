package tui

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rudransh-shrivastava/papercups/internal/protocol"
	"github.com/rudransh-shrivastava/papercups/internal/session"
)

// pollInterval is one redraw cycle; events are drained once per cycle.
const pollInterval = 50 * time.Millisecond

type tickMsg time.Time

type connectResultMsg struct {
	target string
	err    error
}

type fileSentMsg struct {
	file *protocol.File
	err  error
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func connectCmd(ctx context.Context, network session.Network, target string) tea.Cmd {
	return func() tea.Msg {
		return connectResultMsg{target: target, err: network.Initiate(ctx, target)}
	}
}

// transfer tracks an outgoing file frame. written is updated from the
// sending goroutine and read by View.
type transfer struct {
	name    string
	total   int64
	written atomic.Int64
}

func newTransfer(f *protocol.File) *transfer {
	return &transfer{
		name:  f.Name,
		total: int64(protocol.HeaderSize + protocol.FileNameSize + len(f.Data)),
	}
}

func (t *transfer) Write(p []byte) (int, error) {
	t.written.Add(int64(len(p)))
	return len(p), nil
}

func (t *transfer) percent() float64 {
	if t.total == 0 {
		return 1
	}
	return float64(t.written.Load()) / float64(t.total)
}

func sendFileCmd(network session.Network, f *protocol.File, t *transfer) tea.Cmd {
	return func() tea.Msg {
		return fileSentMsg{file: f, err: network.SendWithProgress(f, t)}
	}
}
