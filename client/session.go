package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/slideduel/slideduel/game/board"
	"github.com/slideduel/slideduel/protocol"
)

const (
	// pingInterval is how often the keepalive Ping message is sent. It is
	// advisory; nothing times out on its absence.
	pingInterval = 50 * time.Second

	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second
)

// Snapshot is an immutable copy of the session state for rendering.
type Snapshot struct {
	State    State
	IsWin    bool
	Target   board.Target
	Own      *board.TileBoard
	Opponent *board.TileBoard
}

// Session drives one client connection: the state machine, the outbound
// queue with keepalive, and the inbound decode loop.
type Session struct {
	ws     *websocket.Conn
	log    *zap.SugaredLogger
	cancel context.CancelFunc

	clicks  chan board.Position
	inbound chan protocol.ServerMessage
	outbox  chan protocol.ClientMessage
	updates chan struct{}
	done    chan struct{}

	mu   sync.Mutex
	game *game
}

// Dial connects to the server's game endpoint and starts the session
// loops. The session lives until a terminal state is reached, Close is
// called, or ctx is cancelled.
func Dial(ctx context.Context, serverURL string, log *zap.SugaredLogger) (*Session, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverURL, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ws:      ws,
		log:     log,
		cancel:  cancel,
		clicks:  make(chan board.Position, 8),
		inbound: make(chan protocol.ServerMessage, 8),
		outbox:  make(chan protocol.ClientMessage, 8),
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
		game:    newGame(log),
	}

	// cancelling the session context is the one shutdown broadcast; closing
	// the socket here unblocks the receive loop's pending read
	context.AfterFunc(ctx, func() { s.ws.Close() })

	go s.receiveLoop(ctx)
	go s.sendLoop(ctx)
	go s.run(ctx)
	return s, nil
}

// Click submits a local click, typically from an input handler. Clicks
// are dropped once the session is over.
func (s *Session) Click(pos board.Position) {
	select {
	case s.clicks <- pos:
	case <-s.done:
	}
}

// Close triggers the session-wide shutdown broadcast. It is safe to call
// from any goroutine, any number of times.
func (s *Session) Close() {
	s.cancel()
}

// Done is closed once the session's event loop has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Updates signals after every state change. The channel carries no data;
// read the current state with Snapshot.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// Snapshot returns a copy of the current session state. The boards are
// deep-copied so the caller can render without racing the event loop.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:  s.game.state,
		IsWin:  s.game.isWin,
		Target: s.game.target,
	}
	if s.game.own != nil {
		own := *s.game.own
		snap.Own = &own
	}
	if s.game.opponent != nil {
		opp := *s.game.opponent
		snap.Opponent = &opp
	}
	return snap
}

// run is the event loop: the single goroutine that mutates the state
// machine. It exits on a terminal state or on the shutdown broadcast.
func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case msg := <-s.inbound:
			s.mu.Lock()
			s.game.handleServerMessage(msg)
			terminal := s.game.state.Terminal()
			s.mu.Unlock()
			s.notify()
			if terminal {
				s.cancel()
				return
			}

		case pos := <-s.clicks:
			s.mu.Lock()
			msg := s.game.click(pos)
			s.mu.Unlock()
			if msg == nil {
				continue
			}
			select {
			case s.outbox <- *msg:
			case <-ctx.Done():
				return
			}
			s.notify()

		case <-ctx.Done():
			return
		}
	}
}

// receiveLoop reads frames off the connection and feeds decoded messages to
// the event loop. Any failure — read error, non-binary data frame, decode
// error — is a connection error unless the shutdown broadcast already
// fired.
func (s *Session) receiveLoop(ctx context.Context) {
	s.log.Debug("entering receive loop")
	defer s.log.Debug("exiting receive loop")

	for {
		frameType, data, err := s.ws.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				s.log.Warnf("receive failed: %v", err)
				s.fail()
			}
			return
		}
		if frameType != websocket.BinaryMessage {
			s.log.Warnf("unexpected frame type %d", frameType)
			s.fail()
			return
		}

		msg, err := protocol.DecodeServerMessage(data)
		if err != nil {
			s.log.Warnf("undecodable message: %v", err)
			s.fail()
			return
		}

		select {
		case s.inbound <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// sendLoop writes queued messages and the periodic keepalive Ping. A write
// failure is equivalent to a disconnect.
func (s *Session) sendLoop(ctx context.Context) {
	s.log.Debug("entering send loop")
	defer s.log.Debug("exiting send loop")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.outbox:
			if !s.write(msg) {
				return
			}
		case <-ticker.C:
			if !s.write(protocol.ClientMessage{Kind: protocol.ClientPing}) {
				return
			}
		case <-ctx.Done():
			s.ws.SetWriteDeadline(time.Now().Add(writeWait))
			s.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (s *Session) write(msg protocol.ClientMessage) bool {
	s.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.ws.WriteMessage(websocket.BinaryMessage, protocol.EncodeClientMessage(msg)); err != nil {
		s.log.Warnf("send failed: %v", err)
		s.fail()
		return false
	}
	return true
}

// fail records a transport fault and fires the shutdown broadcast. A
// session that already reached a terminal state keeps it.
func (s *Session) fail() {
	s.mu.Lock()
	if !s.game.state.Terminal() {
		s.game.state = ConnectionError
	}
	s.mu.Unlock()
	s.cancel()
	s.notify()
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
