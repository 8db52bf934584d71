// internal/api/hub.go
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

// Hub pushes generation results to connected authoring clients so a
// finished prompt reveals without polling. Broadcast only; inbound
// messages are read and dropped to service the connection.
type Hub struct {
	log   *zap.Logger
	mu    sync.RWMutex
	conns map[*hubClient]struct{}
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[*hubClient]struct{}),
	}
}

// BeatGenerated implements services.BeatNotifier.
func (h *Hub) BeatGenerated(beat models.Beat) {
	h.broadcast(map[string]interface{}{
		"type": "beat_generated",
		"beat": beat,
	})
}

func (h *Hub) broadcast(message map[string]interface{}) {
	payload, err := json.Marshal(message)
	if err != nil {
		h.log.Error("marshal broadcast failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.conns {
		select {
		case client.send <- payload:
		default:
			// Slow consumer; drop the frame rather than block.
		}
	}
}

// Serve upgrades the request and services the connection until the
// client disconnects.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &hubClient{
		conn: conn,
		send: make(chan []byte, 32),
	}

	h.mu.Lock()
	h.conns[client] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(client)
	h.readLoop(client)
}

func (h *Hub) readLoop(client *hubClient) {
	defer h.drop(client)

	client.conn.SetReadLimit(1 << 16)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(client *hubClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) drop(client *hubClient) {
	h.mu.Lock()
	if _, ok := h.conns[client]; ok {
		delete(h.conns, client)
		close(client.send)
	}
	h.mu.Unlock()
	client.conn.Close()
}
