package client

import (
	"go.uber.org/zap"

	"github.com/slideduel/slideduel/game/board"
	"github.com/slideduel/slideduel/protocol"
)

// State is the client session state.
type State int

const (
	// WaitingForOpponent is the initial state, before GameStart arrives.
	WaitingForOpponent State = iota
	// Playing means both boards are live and input is accepted.
	Playing
	// WaitGameEnd means the local board matches the target and the client
	// is waiting for the authoritative outcome. Input is frozen.
	WaitGameEnd
	// GameEnd is terminal; IsWin on the snapshot carries the outcome.
	GameEnd
	// OpponentLeft is terminal: the opponent disconnected mid-game.
	OpponentLeft
	// ConnectionError is terminal: the transport failed or sent garbage.
	ConnectionError
)

// String returns a short human-readable state name.
func (s State) String() string {
	switch s {
	case WaitingForOpponent:
		return "waiting-for-opponent"
	case Playing:
		return "playing"
	case WaitGameEnd:
		return "wait-game-end"
	case GameEnd:
		return "game-end"
	case OpponentLeft:
		return "opponent-left"
	case ConnectionError:
		return "connection-error"
	default:
		return "invalid"
	}
}

// Terminal reports whether no further transitions can occur from s.
func (s State) Terminal() bool {
	return s == GameEnd || s == OpponentLeft || s == ConnectionError
}

// game is the client-side state machine. It is not safe for concurrent
// use; Session serializes access to it.
type game struct {
	state    State
	isWin    bool
	target   board.Target
	own      *board.TileBoard
	opponent *board.TileBoard
	log      *zap.SugaredLogger
}

func newGame(log *zap.SugaredLogger) *game {
	return &game{state: WaitingForOpponent, log: log}
}

// handleServerMessage applies one inbound message, gated by the current
// state. Messages that do not fit the state are logged and dropped rather
// than crashing: network delivery can race local transitions.
func (g *game) handleServerMessage(msg protocol.ServerMessage) {
	switch msg.Kind {
	case protocol.ServerGameStart:
		if g.state != WaitingForOpponent {
			g.log.Warnf("got game start while %v, ignoring", g.state)
			return
		}
		g.target = msg.Target
		g.own = board.NewTileBoard(msg.Board)
		g.opponent = board.NewTileBoard(msg.OpponentBoard)
		g.state = Playing

	case protocol.ServerOpponentClick:
		if g.state != Playing {
			g.log.Warnf("got opponent click while %v, ignoring", g.state)
			return
		}
		if !g.opponent.AttemptSlide(msg.Pos) {
			g.log.Warnf("opponent click at (%d, %d) moved no tile", msg.Pos.Row, msg.Pos.Col)
		}

	case protocol.ServerOpponentLeft:
		if g.state.Terminal() {
			return
		}
		g.state = OpponentLeft

	case protocol.ServerGameEnd:
		if g.state != Playing && g.state != WaitGameEnd {
			g.log.Warnf("got game end while %v, ignoring", g.state)
			return
		}
		g.state = GameEnd
		g.isWin = msg.IsWin

	default:
		g.log.Warnf("unknown server message kind %d, ignoring", msg.Kind)
	}
}

// click applies a local click and returns the message to transmit, or nil
// when nothing should be sent: input is frozen outside Playing, and a click
// the board rejects must never leave the client, since the server treats an
// un-actionable click as a protocol violation.
func (g *game) click(pos board.Position) *protocol.ClientMessage {
	if g.state != Playing {
		return nil
	}
	if !g.own.AttemptSlide(pos) {
		return nil
	}
	if g.own.MatchesTarget(g.target) {
		// freeze input while the authoritative GameEnd is in flight
		g.state = WaitGameEnd
	}
	return &protocol.ClientMessage{Kind: protocol.ClientClick, Pos: pos}
}
