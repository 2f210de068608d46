package match

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slideduel/slideduel/game/history"
	"github.com/slideduel/slideduel/protocol"
)

// NumPlayers is the number of seats per session.
const NumPlayers = 2

// outboxSize bounds the per-player queue of pending server messages. The
// write pump drains it continuously; it only fills when a connection has
// effectively stalled.
const outboxSize = 64

// Event is one occurrence on a player's connection, as seen by whichever
// loop currently owns the player's seat: the pool while waiting, the
// session coordinator once paired.
type Event struct {
	Player int
	Msg    protocol.ClientMessage
	// Gone means the connection closed or failed; Msg is meaningless. A
	// connection loop delivers it exactly once, on exit.
	Gone bool
}

// Seat is a connection's assignment in a pending session.
type Seat struct {
	// Player is the session-local id, 0 or 1.
	Player int
	// Events receives everything that happens on the connection.
	Events chan<- Event
	// Outbox delivers the server messages to write to the connection. It is
	// closed when the session ends or the seat is withdrawn.
	Outbox <-chan protocol.ServerMessage
	// Done is closed when nothing consumes Events anymore. Senders must
	// select on it to avoid blocking on an abandoned channel.
	Done <-chan struct{}
}

type joinRequest struct {
	reply chan Seat
}

// Pool assigns arriving connections to session seats and spawns a session
// coordinator whenever both seats fill.
type Pool struct {
	joins chan joinRequest
	log   *zap.SugaredLogger
	rec   history.Recorder
}

// NewPool creates a pool. Finished matches are appended to rec; pass
// history.Discard to keep no history. Run must be started for Join to
// make progress.
func NewPool(log *zap.SugaredLogger, rec history.Recorder) *Pool {
	if rec == nil {
		rec = history.Discard
	}
	return &Pool{
		joins: make(chan joinRequest),
		log:   log,
		rec:   rec,
	}
}

// Join registers a new connection and blocks until the pool assigns it a
// seat. It fails only when ctx is cancelled first.
func (p *Pool) Join(ctx context.Context) (Seat, error) {
	req := joinRequest{reply: make(chan Seat, 1)}
	select {
	case p.joins <- req:
	case <-ctx.Done():
		return Seat{}, ctx.Err()
	}
	select {
	case seat := <-req.reply:
		return seat, nil
	case <-ctx.Done():
		return Seat{}, ctx.Err()
	}
}

// Run processes joins and waiting-state events sequentially until ctx is
// cancelled. Each filled pair is handed to a session goroutine together
// with the cycle's event channel, and the pool starts a fresh cycle.
func (p *Pool) Run(ctx context.Context) {
	c := newCycle()
	p.log.Info("waiting for players")

	for {
		select {
		case <-ctx.Done():
			close(c.done)
			return

		case ev := <-c.events:
			if !ev.Gone && ev.Msg.Kind == protocol.ClientPing {
				p.log.Debugf("ping from waiting player %d", ev.Player)
				continue
			}
			if !ev.Gone {
				p.log.Warnf("unexpected message from waiting player %d", ev.Player)
			}
			p.log.Infof("freeing id %d", ev.Player)
			c.release(ev.Player)

		case req := <-p.joins:
			seat := c.assign()
			p.log.Infof("assigning id %d", seat.Player)
			req.reply <- seat

			if !c.full() {
				continue
			}

			id := uuid.NewString()
			p.log.Infow("starting session", "session", id)
			go runSession(ctx, p.log.With("session", id), id, NewGame(), p.rec, c.events, c.outboxes, c.done)

			c = newCycle()
			p.log.Info("waiting for players")
		}
	}
}

// cycle is the pool's state for one pending session: the event channel all
// of its connections share, the per-seat outboxes, and the free-id stack.
type cycle struct {
	events   chan Event
	done     chan struct{}
	outboxes [NumPlayers]chan protocol.ServerMessage
	free     []int
}

func newCycle() *cycle {
	return &cycle{
		events: make(chan Event, NumPlayers*2),
		done:   make(chan struct{}),
		free:   []int{0, 1},
	}
}

// assign pops a free id and opens an outbox for it. The pool dispatches a
// full cycle before accepting another join, so running out of ids here is
// an invariant violation, not a runtime condition.
func (c *cycle) assign() Seat {
	if len(c.free) == 0 {
		panic("match: pool over capacity")
	}
	id := c.free[len(c.free)-1]
	c.free = c.free[:len(c.free)-1]

	out := make(chan protocol.ServerMessage, outboxSize)
	c.outboxes[id] = out
	return Seat{Player: id, Events: c.events, Outbox: out, Done: c.done}
}

// release returns a waiting seat's id to the free stack and closes its
// outbox, which makes the connection's write pump wind the connection down.
// Releasing an id that is not currently assigned is a no-op.
func (c *cycle) release(id int) {
	if id < 0 || id >= NumPlayers || c.outboxes[id] == nil {
		return
	}
	close(c.outboxes[id])
	c.outboxes[id] = nil
	c.free = append(c.free, id)
}

func (c *cycle) full() bool {
	return len(c.free) == 0
}
