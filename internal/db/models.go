package db

type Direction string

const (
	Sent     Direction = "sent"
	Received Direction = "received"
)

type TransferKind string

const (
	KindChat TransferKind = "chat"
	KindFile TransferKind = "file"
)

// Transfer is one chat line or file that crossed the link.
type Transfer struct {
	ID        uint         `gorm:"primaryKey"`
	Direction Direction    `gorm:"index;not null"`
	Kind      TransferKind `gorm:"index;not null"`
	Peer      string
	Body      string
	FileName  string
	Size      int64
	Checksum  string
	SavedPath string
	CreatedAt int64 `gorm:"index"`
}

// Connection records a link that reached Connected.
type Connection struct {
	ID          uint `gorm:"primaryKey"`
	IPAddress   string
	PeerID      string
	Inbound     bool
	ConnectedAt int64
}
