// Package store provides history access for transfers and connections.
package store

import (
	"context"
	"time"

	"github.com/rudransh-shrivastava/papercups/internal/db"
	"github.com/rudransh-shrivastava/papercups/internal/downloads"
	"gorm.io/gorm"
)

type HistoryStore struct {
	DB *gorm.DB

	now func() time.Time
}

var (
	_ TransferRepository   = (*HistoryStore)(nil)
	_ ConnectionRepository = (*HistoryStore)(nil)
)

func NewHistoryStore(gdb *gorm.DB) *HistoryStore {
	return &HistoryStore{DB: gdb, now: time.Now}
}

func (hs *HistoryStore) RecordChat(ctx context.Context, dir db.Direction, peer, text string) error {
	return hs.DB.WithContext(ctx).Create(&db.Transfer{
		Direction: dir,
		Kind:      db.KindChat,
		Peer:      peer,
		Body:      text,
		Size:      int64(len(text)),
		CreatedAt: hs.now().Unix(),
	}).Error
}

func (hs *HistoryStore) RecordFile(ctx context.Context, dir db.Direction, peer, name string, data []byte, savedPath string) error {
	return hs.DB.WithContext(ctx).Create(&db.Transfer{
		Direction: dir,
		Kind:      db.KindFile,
		Peer:      peer,
		FileName:  name,
		Size:      int64(len(data)),
		Checksum:  downloads.HashBytes(data),
		SavedPath: savedPath,
		CreatedAt: hs.now().Unix(),
	}).Error
}

// ListTransfers returns the newest transfers first. limit <= 0 means all.
func (hs *HistoryStore) ListTransfers(ctx context.Context, limit int) ([]db.Transfer, error) {
	transfers := []db.Transfer{}
	q := hs.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&transfers).Error
	return transfers, err
}

func (hs *HistoryStore) RecordConnection(ctx context.Context, ip, peerID string, inbound bool) error {
	return hs.DB.WithContext(ctx).Create(&db.Connection{
		IPAddress:   ip,
		PeerID:      peerID,
		Inbound:     inbound,
		ConnectedAt: hs.now().Unix(),
	}).Error
}

func (hs *HistoryStore) ListConnections(ctx context.Context, limit int) ([]db.Connection, error) {
	conns := []db.Connection{}
	q := hs.DB.WithContext(ctx).Order("connected_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&conns).Error
	return conns, err
}
