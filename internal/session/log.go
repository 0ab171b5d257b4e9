package session

import "time"

type Direction int

const (
	Sent Direction = iota
	Received
	System
)

func (d Direction) String() string {
	switch d {
	case Sent:
		return "you"
	case Received:
		return "peer"
	default:
		return "*"
	}
}

// Entry is one line of the message log.
type Entry struct {
	Direction Direction
	Text      string
	At        time.Time
}
