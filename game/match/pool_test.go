package match

import (
	"context"
	"testing"
	"time"

	"github.com/slideduel/slideduel/game/board"
	"github.com/slideduel/slideduel/game/history"
	"github.com/slideduel/slideduel/protocol"
)

func startPool(t *testing.T) (*Pool, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	p := NewPool(testLogger(), history.Discard)
	go p.Run(ctx)
	return p, ctx
}

func join(t *testing.T, p *Pool, ctx context.Context) Seat {
	t.Helper()
	joinCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	seat, err := p.Join(joinCtx)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	return seat
}

func TestPoolPairsTwoConnections(t *testing.T) {
	p, ctx := startPool(t)

	first := join(t, p, ctx)
	second := join(t, p, ctx)

	if first.Player == second.Player {
		t.Fatalf("both seats got player id %d", first.Player)
	}
	for _, seat := range []Seat{first, second} {
		if seat.Player != 0 && seat.Player != 1 {
			t.Fatalf("unexpected player id %d", seat.Player)
		}
		// a session was spawned with both seats' channels
		msg := recvMsg(t, seat.Outbox)
		if msg.Kind != protocol.ServerGameStart {
			t.Fatalf("expected GameStart, got kind %d", msg.Kind)
		}
	}
}

func TestPoolThirdConnectionStartsNewCycle(t *testing.T) {
	p, ctx := startPool(t)

	join(t, p, ctx)
	join(t, p, ctx)
	third := join(t, p, ctx)

	// the third arrival waits in a fresh cycle, not in the running session
	select {
	case msg := <-third.Outbox:
		t.Fatalf("third connection received %+v before an opponent arrived", msg)
	case <-time.After(100 * time.Millisecond):
	}

	fourth := join(t, p, ctx)
	if msg := recvMsg(t, third.Outbox); msg.Kind != protocol.ServerGameStart {
		t.Fatalf("expected GameStart for third connection, got kind %d", msg.Kind)
	}
	if msg := recvMsg(t, fourth.Outbox); msg.Kind != protocol.ServerGameStart {
		t.Fatalf("expected GameStart for fourth connection, got kind %d", msg.Kind)
	}
}

func TestPoolFreesWaitingSeatOnDisconnect(t *testing.T) {
	p, ctx := startPool(t)

	first := join(t, p, ctx)
	first.Events <- Event{Player: first.Player, Gone: true}

	// the withdrawn seat's outbox closes, and its id goes back to the pool
	expectClosed(t, first.Outbox)

	second := join(t, p, ctx)
	third := join(t, p, ctx)
	if second.Player == third.Player {
		t.Fatalf("both seats got player id %d", second.Player)
	}
	recvMsg(t, second.Outbox)
	recvMsg(t, third.Outbox)
}

func TestPoolFreesWaitingSeatOnUnexpectedMessage(t *testing.T) {
	p, ctx := startPool(t)

	first := join(t, p, ctx)
	first.Events <- Event{Player: first.Player, Msg: protocol.ClientMessage{
		Kind: protocol.ClientClick,
		Pos:  board.Position{Row: 2, Col: 0},
	}}

	expectClosed(t, first.Outbox)
}

func TestPoolIgnoresPingFromWaitingSeat(t *testing.T) {
	p, ctx := startPool(t)

	first := join(t, p, ctx)
	first.Events <- Event{Player: first.Player, Msg: protocol.ClientMessage{Kind: protocol.ClientPing}}

	// the seat must still be live: a second join completes the pair
	second := join(t, p, ctx)
	recvMsg(t, first.Outbox)
	recvMsg(t, second.Outbox)
}
