package channel

import "context"

// Link is the pair of one-directional queues joining the network goroutine
// and the interactive side.
type Link struct {
	Events   *Queue[Event]
	Commands *Queue[Command]
}

func NewLink() *Link {
	return &Link{
		Events:   NewQueue[Event](),
		Commands: NewQueue[Command](),
	}
}

func (l *Link) Close() {
	l.Events.Close()
	l.Commands.Close()
}

// AwaitDecision is the rendezvous point of the accept path: it blocks until
// exactly one command arrives and returns it. Nothing else is consumed.
func (l *Link) AwaitDecision(ctx context.Context) (Command, error) {
	return l.Commands.Recv(ctx)
}

// PurgeCommands drops commands that were queued before a new decision is
// requested, so a late Disconnect aimed at an earlier link cannot be read
// as a rejection.
func (l *Link) PurgeCommands() []Command {
	return l.Commands.Drain()
}

// PollEvents drains pending events without blocking.
func (l *Link) PollEvents() []Event {
	return l.Events.Drain()
}
