package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"admin-console/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The console is same-origin behind its own CORS policy.
		return true
	},
}

// WebSocketHandlers serves the live dashboard connection.
type WebSocketHandlers struct {
	hub *services.DashboardHub
}

// NewWebSocketHandlers creates the websocket handlers.
func NewWebSocketHandlers(hub *services.DashboardHub) *WebSocketHandlers {
	return &WebSocketHandlers{hub: hub}
}

// DashboardStream upgrades the connection and attaches it to the hub.
func (h *WebSocketHandlers) DashboardStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	h.hub.RegisterConn(conn)
}

// Health reports the hub state.
func (h *WebSocketHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"connected_clients": h.hub.ConnectedClients(),
	})
}
