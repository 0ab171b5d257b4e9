package store_test

import (
	"context"
	"testing"

	"github.com/rudransh-shrivastava/papercups/internal/db"
	"github.com/rudransh-shrivastava/papercups/internal/downloads"
	"github.com/rudransh-shrivastava/papercups/internal/store"
)

func setupTestDB(t *testing.T) *store.HistoryStore {
	t.Helper()
	gdb, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return store.NewHistoryStore(gdb)
}

func TestHistoryStore_RecordChat(t *testing.T) {
	hs := setupTestDB(t)
	ctx := context.Background()

	if err := hs.RecordChat(ctx, db.Sent, "10.0.0.2", "hello"); err != nil {
		t.Fatalf("RecordChat failed: %v", err)
	}

	transfers, err := hs.ListTransfers(ctx, 0)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(transfers))
	}

	tr := transfers[0]
	if tr.Kind != db.KindChat || tr.Direction != db.Sent {
		t.Errorf("unexpected kind/direction: %s/%s", tr.Kind, tr.Direction)
	}
	if tr.Body != "hello" || tr.Size != 5 {
		t.Errorf("unexpected body %q size %d", tr.Body, tr.Size)
	}
}

func TestHistoryStore_RecordFile(t *testing.T) {
	hs := setupTestDB(t)
	ctx := context.Background()
	data := []byte("file bytes")

	if err := hs.RecordFile(ctx, db.Received, "10.0.0.3", "a.bin", data, "/tmp/a.bin"); err != nil {
		t.Fatalf("RecordFile failed: %v", err)
	}

	transfers, err := hs.ListTransfers(ctx, 0)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(transfers))
	}

	tr := transfers[0]
	if tr.FileName != "a.bin" {
		t.Errorf("expected name 'a.bin', got %q", tr.FileName)
	}
	if tr.Checksum != downloads.HashBytes(data) {
		t.Errorf("checksum mismatch: %q", tr.Checksum)
	}
	if tr.SavedPath != "/tmp/a.bin" {
		t.Errorf("expected saved path '/tmp/a.bin', got %q", tr.SavedPath)
	}
}

func TestHistoryStore_ListTransfersNewestFirst(t *testing.T) {
	hs := setupTestDB(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		if err := hs.RecordChat(ctx, db.Received, "peer", text); err != nil {
			t.Fatalf("RecordChat failed: %v", err)
		}
	}

	transfers, err := hs.ListTransfers(ctx, 2)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(transfers))
	}
	if transfers[0].Body != "three" || transfers[1].Body != "two" {
		t.Errorf("unexpected order: %q, %q", transfers[0].Body, transfers[1].Body)
	}
}

func TestHistoryStore_Connections(t *testing.T) {
	hs := setupTestDB(t)
	ctx := context.Background()

	if err := hs.RecordConnection(ctx, "192.168.0.5", "0000abcd", true); err != nil {
		t.Fatalf("RecordConnection failed: %v", err)
	}
	if err := hs.RecordConnection(ctx, "192.168.0.6", "", false); err != nil {
		t.Fatalf("RecordConnection failed: %v", err)
	}

	conns, err := hs.ListConnections(ctx, 0)
	if err != nil {
		t.Fatalf("ListConnections failed: %v", err)
	}
	if len(conns) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(conns))
	}
	if conns[0].IPAddress != "192.168.0.6" || conns[0].Inbound {
		t.Errorf("expected newest outbound connection first, got %+v", conns[0])
	}
}

func TestHistoryStore_Empty(t *testing.T) {
	hs := setupTestDB(t)

	transfers, err := hs.ListTransfers(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	if len(transfers) != 0 {
		t.Errorf("expected no transfers, got %d", len(transfers))
	}
}
