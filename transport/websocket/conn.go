package websocket

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/slideduel/slideduel/game/match"
	"github.com/slideduel/slideduel/protocol"
)

// conn is one live player connection. The two pumps share nothing but the
// underlying websocket; whichever fails first closes it, which stops the
// other.
type conn struct {
	ws   *websocket.Conn
	seat match.Seat
	log  *zap.SugaredLogger
}

// readPump pumps decoded messages from the connection into the seat's event
// channel. It exits on read failure, on a non-binary data frame, or on an
// undecodable message, and always synthesizes a single disconnect event on
// the way out.
func (c *conn) readPump(ctx context.Context) {
	defer c.ws.Close()
	defer c.disconnected(ctx)

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		frameType, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warnf("read failed: %v", err)
			}
			return
		}
		if frameType != websocket.BinaryMessage {
			c.log.Warnf("unexpected frame type %d, dropping connection", frameType)
			return
		}

		msg, err := protocol.DecodeClientMessage(data)
		if err != nil {
			c.log.Warnf("undecodable message: %v", err)
			return
		}

		if !c.deliver(ctx, match.Event{Player: c.seat.Player, Msg: msg}) {
			return
		}
	}
}

// writePump serializes outbox messages onto the connection and emits
// keepalive pings. A closed outbox means the seat's owner is finished with
// this connection: the pump sends a close frame and exits.
func (c *conn) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.ws.Close()

	for {
		select {
		case msg, ok := <-c.seat.Outbox:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.BinaryMessage, protocol.EncodeServerMessage(msg)); err != nil {
				c.log.Warnf("write failed: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// deliver hands an event to whichever loop owns the seat. false means the
// owner is gone and the connection should wind down.
func (c *conn) deliver(ctx context.Context, ev match.Event) bool {
	select {
	case c.seat.Events <- ev:
		return true
	case <-c.seat.Done:
		return false
	case <-ctx.Done():
		return false
	}
}

// disconnected synthesizes the one disconnect event every exit path owes
// the seat's consumer. If the consumer is already gone the event is moot
// and deliver drops it.
func (c *conn) disconnected(ctx context.Context) {
	c.deliver(ctx, match.Event{Player: c.seat.Player, Gone: true})
}
