package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/slideduel/slideduel/game/match"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Handler upgrades HTTP requests on the game endpoint and binds each
// resulting connection to a seat in the matchmaking pool.
type Handler struct {
	ctx  context.Context
	pool *match.Pool
	log  *zap.SugaredLogger
}

// NewHandler creates the upgrade handler. ctx is the server-wide shutdown
// signal; every connection loop spawned here selects on it.
func NewHandler(ctx context.Context, pool *match.Pool, log *zap.SugaredLogger) *Handler {
	return &Handler{ctx: ctx, pool: pool, log: log}
}

// ServeHTTP upgrades the request, joins the pool, and starts the pumps.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	seat, err := h.pool.Join(h.ctx)
	if err != nil {
		h.log.Warnf("pool join failed: %v", err)
		ws.Close()
		return
	}

	c := &conn{
		ws:   ws,
		seat: seat,
		log:  h.log.With("player", seat.Player, "remote", ws.RemoteAddr().String()),
	}
	go c.writePump(h.ctx)
	go c.readPump(h.ctx)
}
