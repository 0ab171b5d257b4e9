package store

import (
	"context"

	"github.com/rudransh-shrivastava/papercups/internal/db"
)

// TransferRepository records chat lines and files that crossed the link.
type TransferRepository interface {
	RecordChat(ctx context.Context, dir db.Direction, peer, text string) error
	RecordFile(ctx context.Context, dir db.Direction, peer, name string, data []byte, savedPath string) error
	ListTransfers(ctx context.Context, limit int) ([]db.Transfer, error)
}

// ConnectionRepository records links that reached Connected.
type ConnectionRepository interface {
	RecordConnection(ctx context.Context, ip, peerID string, inbound bool) error
	ListConnections(ctx context.Context, limit int) ([]db.Connection, error)
}
