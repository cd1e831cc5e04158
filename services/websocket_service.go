package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/gorilla/websocket"
)

// DashboardHub manages the websocket connections of open dashboards and
// pushes fresh metrics snapshots to them on a refresh ticker.
type DashboardHub struct {
	clients    map[*dashboardClient]bool
	broadcast  chan []byte
	register   chan *dashboardClient
	unregister chan *dashboardClient
	mutex      sync.RWMutex

	client   *Client
	interval time.Duration
	stop     chan struct{}
}

type dashboardClient struct {
	hub  *DashboardHub
	conn *websocket.Conn
	send chan []byte
}

// NewDashboardHub creates a hub that refreshes metrics every interval.
func NewDashboardHub(client *Client, interval time.Duration) *DashboardHub {
	return &DashboardHub{
		clients:    make(map[*dashboardClient]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *dashboardClient),
		unregister: make(chan *dashboardClient),
		client:     client,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

// Start runs the hub loop and the metrics refresher.
func (h *DashboardHub) Start() {
	go h.run()
	go h.refreshLoop()
}

// Stop closes every connection and halts the refresher.
func (h *DashboardHub) Stop() {
	close(h.stop)
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *DashboardHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Info("dashboard websocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			log.Info("dashboard websocket client disconnected")

		case message := <-h.broadcast:
			// A slow client gets dropped here, which mutates the map, so
			// this needs the write lock.
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()

		case <-h.stop:
			return
		}
	}
}

// refreshLoop periodically recomputes the default dashboard metrics and
// broadcasts them. It skips the backend call when nobody is listening.
func (h *DashboardHub) refreshLoop() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if h.ConnectedClients() == 0 {
				continue
			}
			h.pushSnapshot()
		case <-h.stop:
			return
		}
	}
}

func (h *DashboardHub) pushSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), h.interval)
	defer cancel()

	reports, err := h.client.Reports(ctx, ScopeAll, false)
	if err != nil {
		log.WithError(err).Warn("dashboard refresh failed")
		return
	}

	metrics := ComputeMetrics(reports, Window30, time.Now())
	data, err := json.Marshal(metrics)
	if err != nil {
		log.WithError(err).Error("failed to serialize metrics snapshot")
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.stop:
	}
}

// ConnectedClients returns the number of open dashboard connections.
func (h *DashboardHub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// RegisterConn attaches an upgraded websocket connection to the hub.
func (h *DashboardHub) RegisterConn(conn *websocket.Conn) {
	client := &dashboardClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 16),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *dashboardClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("dashboard websocket read error")
			}
			break
		}
	}
}

func (c *dashboardClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
