package cli

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rudransh-shrivastava/papercups/internal/config"
	"github.com/rudransh-shrivastava/papercups/internal/db"
	"github.com/rudransh-shrivastava/papercups/internal/downloads"
	"github.com/rudransh-shrivastava/papercups/internal/node"
	"github.com/rudransh-shrivastava/papercups/internal/session"
	"github.com/rudransh-shrivastava/papercups/internal/store"
	"github.com/sirupsen/logrus"
)

// runtime is one running node with the interactive session wrapped around it.
type runtime struct {
	node    *node.Node
	session *session.Session

	cancel  context.CancelFunc
	done    chan error
	closers []func() error
}

// start binds the node (on ln when given), opens history if configured and
// runs the node in the background. When Run ends the link is closed, which
// the interactive side sees as ErrChannelClosed.
func start(ctx context.Context, cfg config.Config, log *logrus.Logger, ln net.Listener) (*runtime, error) {
	rt := &runtime{done: make(chan error, 1)}

	var history session.History
	if cfg.HistoryEnabled() {
		gdb, err := db.Open(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func() error { return db.Close(gdb) })
		history = store.NewHistoryStore(gdb)
	}

	n, err := node.New(node.Config{
		Port:             cfg.Port,
		Listener:         ln,
		HandshakeTimeout: cfg.HandshakeTimeout,
		Logger:           log,
	})
	if err != nil {
		_ = rt.close()
		return nil, err
	}
	rt.node = n

	rt.session = session.New(ctx, session.Config{
		Network: n,
		Saver:   downloads.NewSaver(cfg.DownloadDir),
		History: history,
		Logger:  log,
	})

	runCtx, cancel := context.WithCancel(ctx)
	rt.cancel = cancel
	go func() {
		err := n.Run(runCtx)
		n.Link().Close()
		rt.done <- err
	}()

	return rt, nil
}

// stop shuts the node down and returns the error that ended it, if it
// ended for a reason other than stop itself.
func (rt *runtime) stop() error {
	rt.cancel()
	err := <-rt.done
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, rt.close())
}

func (rt *runtime) close() error {
	var errs []error
	for _, c := range rt.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func ephemeralListener() (net.Listener, error) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		return nil, fmt.Errorf("binding local port: %w", err)
	}
	return ln, nil
}
