package session

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rudransh-shrivastava/papercups/internal/gate"
	"github.com/rudransh-shrivastava/papercups/internal/node"
	"github.com/stretchr/testify/require"
)

func startNode(t *testing.T) *node.Node {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	n, err := node.New(node.Config{Listener: ln})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = n.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return n
}

// pollUntil polls s until cond holds, as a redraw loop would.
func pollUntil(t *testing.T, s *Session, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		if _, err := s.Poll(); err != nil {
			return false
		}
		return cond()
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSessionsOverLoopback(t *testing.T) {
	a, b := startNode(t), startNode(t)
	alice := New(context.Background(), Config{Network: a, Saver: &memSaver{}})
	bob := New(context.Background(), Config{Network: b, Saver: &memSaver{}})

	result := make(chan error, 1)
	go func() { result <- a.Initiate(context.Background(), b.Addr().String()) }()

	pollUntil(t, bob, func() bool { return bob.PendingCount() == 1 })
	d, _ := bob.Pending()
	require.Equal(t, gate.ConnectApproval, d.Kind)

	_, err := bob.Resolve(true)
	require.NoError(t, err)

	alice.ConnectResult(b.Addr().String(), <-result)
	require.NotEmpty(t, alice.Peer())

	require.Eventually(t, func() bool { return b.State() == node.Connected }, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, alice.SendText("hi bob"))

	pollUntil(t, bob, func() bool {
		log := bob.Log()
		return len(log) > 0 && log[len(log)-1].Text == "hi bob"
	})

	require.NoError(t, bob.Disconnect())
	pollUntil(t, alice, func() bool { return alice.Peer() == "" })
}
