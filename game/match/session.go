package match

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/slideduel/slideduel/game/board"
	"github.com/slideduel/slideduel/game/history"
	"github.com/slideduel/slideduel/protocol"
)

// Game owns the authoritative state for one session: both players' boards
// and the shared target.
type Game struct {
	Target board.Target
	Boards [NumPlayers]*board.Board
}

// NewGame generates a fresh target and an independent board per player.
func NewGame() *Game {
	return &Game{
		Target: board.GenerateTarget(),
		Boards: [NumPlayers]*board.Board{board.GenerateBoard(), board.GenerateBoard()},
	}
}

// runSession is the session coordinator. It pushes GameStart to both
// players, then consumes events in arrival order until a terminal event:
// a win, a disconnect, or a protocol violation. On exit it closes both
// outboxes and the done channel, which tears the connections down and tells
// their loops to stop delivering events, and appends the match's record to
// the history.
func runSession(
	ctx context.Context,
	log *zap.SugaredLogger,
	id string,
	game *Game,
	rec history.Recorder,
	events <-chan Event,
	outboxes [NumPlayers]chan protocol.ServerMessage,
	done chan struct{},
) {
	log.Info("entering game loop")
	defer log.Info("exiting game loop")
	defer close(done)
	defer func() {
		for _, out := range outboxes {
			close(out)
		}
	}()

	result := history.Record{
		ID:        id,
		Outcome:   history.OutcomeShutdown,
		Winner:    -1,
		StartedAt: time.Now(),
	}
	defer func() {
		result.EndedAt = time.Now()
		if err := rec.Append(result); err != nil {
			log.Warnf("recording match failed: %v", err)
		}
	}()

	send := func(id int, msg protocol.ServerMessage) {
		select {
		case outboxes[id] <- msg:
		default:
			// the write pump has stalled; dropping beats wedging the session
			log.Warnf("outbox full for player %d, dropping message", id)
		}
	}

	for id := range outboxes {
		send(id, protocol.ServerMessage{
			Kind:          protocol.ServerGameStart,
			Target:        game.Target,
			Board:         game.Boards[id].Grid,
			OpponentBoard: game.Boards[1-id].Grid,
		})
	}

	for {
		var ev Event
		select {
		case <-ctx.Done():
			return
		case ev = <-events:
		}

		if ev.Gone {
			log.Infof("player %d disconnected", ev.Player)
			send(1-ev.Player, protocol.ServerMessage{Kind: protocol.ServerOpponentLeft})
			result.Outcome = history.OutcomeDisconnect
			return
		}

		switch ev.Msg.Kind {
		case protocol.ClientPing:
			log.Debugf("ping from player %d", ev.Player)

		case protocol.ClientClick:
			pos := ev.Msg.Pos
			if !pos.InBounds() {
				log.Warnf("player %d clicked out of bounds at (%d, %d)", ev.Player, pos.Row, pos.Col)
				result.Outcome = history.OutcomeViolation
				return
			}
			// clients validate clicks locally before transmitting, so a
			// click that moves nothing is a protocol violation
			if !game.Boards[ev.Player].AttemptSlide(pos) {
				log.Warnf("player %d click at (%d, %d) moved no tile", ev.Player, pos.Row, pos.Col)
				result.Outcome = history.OutcomeViolation
				return
			}
			result.Moves++

			other := 1 - ev.Player
			send(other, protocol.ServerMessage{Kind: protocol.ServerOpponentClick, Pos: pos})

			if !game.Boards[ev.Player].MatchesTarget(game.Target) {
				continue
			}

			log.Infof("player %d wins", ev.Player)
			send(ev.Player, protocol.ServerMessage{Kind: protocol.ServerGameEnd, IsWin: true})
			send(other, protocol.ServerMessage{Kind: protocol.ServerGameEnd, IsWin: false})
			result.Outcome = history.OutcomeWin
			result.Winner = ev.Player
			return

		default:
			log.Warnf("unknown message kind %d from player %d", ev.Msg.Kind, ev.Player)
			result.Outcome = history.OutcomeViolation
			return
		}
	}
}
