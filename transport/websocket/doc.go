// Package websocket runs the server side of a Slide Duel connection over a
// gorilla/websocket transport.
//
// Each accepted connection is joined to the matchmaking pool and then
// driven by two pumps. The read pump decodes inbound binary frames into
// protocol messages and delivers them as events to whichever loop owns the
// seat; any read failure, non-binary data frame, or undecodable message is
// fatal for the connection. The write pump drains the seat's outbox,
// serializes each message into a binary frame, and keeps the connection
// alive with periodic ping control frames.
//
// Whatever stops a connection, the read pump synthesizes exactly one
// disconnect event on its way out, so the pool or session always learns
// about the loss regardless of which side initiated it.
package websocket
