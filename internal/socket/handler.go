// internal/socket/handler.go
package socket

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
)

// Handler handles WebSocket connections
type Handler struct {
	Hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. Cross-origin upgrades are
// accepted only from allowedOrigins; same-origin pages are always accepted.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		Hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin) {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// HandleWebSocket handles WebSocket upgrade requests
// GET /api/ws
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.C("websocket").WithError(err).Warn("upgrade failed")
		return
	}

	client := NewClient(h.Hub, conn)
	if !h.Hub.requestRegister(client) {
		conn.Close()
		return
	}

	logging.C("websocket").WithField("client_id", client.ID).Info("client connected")

	go client.WritePump()
	go client.ReadPump()
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:    uuid.New().String(),
		Conn:  conn,
		Hub:   hub,
		Send:  make(chan []byte, 256),
		Rooms: make(map[string]bool),
	}
}
