// Package protocol defines the messages exchanged between a Slide Duel
// client and server, and their binary wire encoding.
//
// The message set is small and fixed:
//
//	client -> server: Click{pos}, Ping
//	server -> client: GameStart{target, board, opponentBoard},
//	                  OpponentLeft, OpponentClick{pos}, GameEnd{isWin}
//
// Wire Format:
//
// Messages are compact binary, carried in single websocket binary frames.
// Enum discriminants and colors are little-endian uint32, coordinates are
// little-endian uint64, optional cells are a one-byte occupancy tag
// followed by the color, booleans are a single byte. Fields are laid out in
// declaration order with no framing of their own; the websocket frame
// delimits the message.
//
// Decoding is strict: an unknown discriminant, a truncated buffer, or
// trailing bytes all fail, and the connection layer treats any decode
// failure as fatal for that connection.
package protocol
