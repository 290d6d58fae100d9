package broadcast

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// The UI connects from a different origin than the API.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades viewer connections and bridges them onto the hub.
type WSHandler struct {
	hub    *Hub
	logger *zap.Logger
}

func NewWSHandler(hub *Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

func (h *WSHandler) Register(router *gin.Engine) {
	router.GET("/ws", h.serve)
}

func (h *WSHandler) serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.hub.Subscribe()
	go h.writePump(conn, sub)
	h.readPump(conn, sub)
}

// writePump pushes hub events to the connection. A write error evicts the
// viewer so a dead connection cannot pin its subscription.
func (h *WSHandler) writePump(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()
	for event := range sub.Events() {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("viewer write failed", zap.Error(err))
			return
		}
	}
}

// readPump exists only to notice the peer closing; inbound messages are
// discarded, the channel carries no client acks by contract.
func (h *WSHandler) readPump(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()
	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
