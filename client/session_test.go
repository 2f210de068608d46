package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/slideduel/slideduel/game/board"
	"github.com/slideduel/slideduel/game/history"
	"github.com/slideduel/slideduel/game/match"
	transport "github.com/slideduel/slideduel/transport/websocket"
)

func gameServer(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zap.NewNop().Sugar()
	pool := match.NewPool(log, history.Discard)
	go pool.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/connect", transport.NewHandler(ctx, pool, log))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/connect"
}

func dialSession(t *testing.T, url string) *Session {
	t.Helper()
	s, err := Dial(context.Background(), url, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// waitFor polls the session snapshot until cond holds or the deadline
// passes. Updates only signals, so polling on it is the intended shape.
func waitFor(t *testing.T, s *Session, what string, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if snap := s.Snapshot(); cond(snap) {
			return snap
		}
		select {
		case <-s.Updates():
		case <-s.Done():
			if snap := s.Snapshot(); cond(snap) {
				return snap
			}
			t.Fatalf("session ended while waiting for %s (state %v)", what, s.Snapshot().State)
		case <-deadline:
			t.Fatalf("timed out waiting for %s (state %v)", what, s.Snapshot().State)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSessionsReachPlaying(t *testing.T) {
	url := gameServer(t)

	a := dialSession(t, url)

	snap := a.Snapshot()
	if snap.State != WaitingForOpponent {
		t.Fatalf("expected WaitingForOpponent before a peer arrives, got %v", snap.State)
	}

	b := dialSession(t, url)

	snapA := waitFor(t, a, "playing", func(s Snapshot) bool { return s.State == Playing })
	snapB := waitFor(t, b, "playing", func(s Snapshot) bool { return s.State == Playing })

	if snapA.Target != snapB.Target {
		t.Error("sessions disagree on the target")
	}
	if snapA.Own == nil || snapA.Opponent == nil {
		t.Fatal("boards missing after GameStart")
	}
	if snapA.Own.Hole != (board.Position{Row: 2, Col: 2}) {
		t.Errorf("expected hole at the center, got %v", snapA.Own.Hole)
	}
}

func TestClickPropagatesToOpponentMirror(t *testing.T) {
	url := gameServer(t)

	a := dialSession(t, url)
	b := dialSession(t, url)

	waitFor(t, a, "playing", func(s Snapshot) bool { return s.State == Playing })
	waitFor(t, b, "playing", func(s Snapshot) bool { return s.State == Playing })

	pos := board.Position{Row: 2, Col: 0}
	a.Click(pos)

	snapA := waitFor(t, a, "local slide", func(s Snapshot) bool {
		return s.Own != nil && s.Own.Hole == pos
	})
	if snapA.State != Playing && snapA.State != WaitGameEnd {
		t.Fatalf("unexpected state %v after a click", snapA.State)
	}

	waitFor(t, b, "opponent mirror update", func(s Snapshot) bool {
		return s.Opponent != nil && s.Opponent.Hole == pos
	})
}

func TestPeerCloseEndsSession(t *testing.T) {
	url := gameServer(t)

	a := dialSession(t, url)
	b := dialSession(t, url)

	waitFor(t, a, "playing", func(s Snapshot) bool { return s.State == Playing })
	waitFor(t, b, "playing", func(s Snapshot) bool { return s.State == Playing })

	b.Close()

	snap := waitFor(t, a, "opponent departure", func(s Snapshot) bool { return s.State.Terminal() })
	if snap.State != OpponentLeft {
		t.Fatalf("expected OpponentLeft, got %v", snap.State)
	}

	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not shut down after a terminal state")
	}
}

func TestDialFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := Dial(ctx, "ws://127.0.0.1:1/connect", zap.NewNop().Sugar()); err == nil {
		t.Fatal("expected dial to an unbound port to fail")
	}
}
