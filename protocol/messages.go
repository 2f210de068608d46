package protocol

import "github.com/slideduel/slideduel/game/board"

// ClientKind discriminates client-to-server messages.
type ClientKind uint32

const (
	// ClientClick reports a validated click on the player's own board.
	ClientClick ClientKind = iota
	// ClientPing is a keepalive with no payload and no observable effect.
	ClientPing
)

// ClientMessage is a message sent from a player to the server. Pos is only
// meaningful for ClientClick.
type ClientMessage struct {
	Kind ClientKind
	Pos  board.Position
}

// ServerKind discriminates server-to-client messages.
type ServerKind uint32

const (
	// ServerGameStart delivers the shared target and both initial boards.
	ServerGameStart ServerKind = iota
	// ServerOpponentLeft tells the remaining player the session is over.
	ServerOpponentLeft
	// ServerOpponentClick relays a click the opponent made on their board.
	ServerOpponentClick
	// ServerGameEnd is the authoritative outcome for the receiving player.
	ServerGameEnd
)

// ServerMessage is a message sent from the server to a player. Which fields
// are meaningful depends on Kind.
type ServerMessage struct {
	Kind          ServerKind
	Target        board.Target   // GameStart
	Board         board.Grid     // GameStart: the receiving player's board
	OpponentBoard board.Grid     // GameStart
	Pos           board.Position // OpponentClick
	IsWin         bool           // GameEnd
}
