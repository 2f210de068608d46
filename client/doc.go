// Package client mirrors the server-authoritative game state on the
// player's side of a Slide Duel connection.
//
// Session owns the connection and three loops: a receive loop decoding
// inbound frames, a send loop draining queued client messages and emitting
// a keepalive Ping every 50 seconds, and an event loop applying inbound
// messages and local clicks to the state machine. A context derived at dial
// time is the session-wide shutdown broadcast: it is cancelled on any
// terminal state, on transport failure, and by Close, and every loop
// selects on it.
//
// State Machine:
//
//	WaitingForOpponent -> Playing -> WaitGameEnd -> GameEnd
//	                               \-> GameEnd | OpponentLeft | ConnectionError
//
// Inbound messages are gated by the current state; a message that does not
// fit (a GameStart while already playing, an OpponentClick before the game
// starts) is logged and dropped, since delivery can race local transitions.
// Local clicks are accepted only while Playing and are validated against
// the local board first — a click that moves nothing is never transmitted.
// When a local move completes the target the session enters WaitGameEnd
// immediately, freezing input until the authoritative GameEnd arrives.
//
// The player's own board and the opponent's mirror are two independent
// TileBoard values, each mutated by a single source (local clicks and
// relayed opponent clicks respectively), both only from the event loop.
package client
