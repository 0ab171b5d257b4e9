package node

import "sync/atomic"

type stats struct {
	links      atomic.Int64
	framesSent atomic.Int64
	framesRecv atomic.Int64
	bytesSent  atomic.Int64
	bytesRecv  atomic.Int64
}

// Stats counts traffic since the node was created. Byte counts include
// frame headers.
type Stats struct {
	Links      int64
	FramesSent int64
	FramesRecv int64
	BytesSent  int64
	BytesRecv  int64
}

func (s *stats) addLink()      { s.links.Add(1) }
func (s *stats) addSent(n int) { s.framesSent.Add(1); s.bytesSent.Add(int64(n)) }
func (s *stats) addRecv(n int) { s.framesRecv.Add(1); s.bytesRecv.Add(int64(n)) }

func (s *stats) snapshot() Stats {
	return Stats{
		Links:      s.links.Load(),
		FramesSent: s.framesSent.Load(),
		FramesRecv: s.framesRecv.Load(),
		BytesSent:  s.bytesSent.Load(),
		BytesRecv:  s.bytesRecv.Load(),
	}
}
