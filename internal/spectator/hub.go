package spectator

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/arena/internal/metrics"
)

const (
	// DefaultMaxConnections caps concurrent spectator sockets.
	DefaultMaxConnections = 500

	writeTimeout = 5 * time.Second
)

// Event is the JSON envelope pushed to spectators.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// HUDText is the payload of a "hud" event.
type HUDText struct {
	Player string `json:"player"`
	Text   string `json:"text"`
}

// Hub fans out events to all connected spectators. It also implements the
// player HUD presenter: every SetText becomes a "hud" event.
type Hub struct {
	upgrader       websocket.Upgrader
	limiter        *ConnLimiter
	maxConnections int

	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{} // closed when Run returns

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
	hud     map[string]string
}

// NewHub creates a hub. limiter may be nil to accept every upgrade.
func NewHub(maxConnections int, limiter *ConnLimiter) *Hub {
	if maxConnections <= 0 {
		maxConnections = DefaultMaxConnections
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checks are done by the CORS middleware.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		limiter:        limiter,
		maxConnections: maxConnections,
		broadcast:      make(chan []byte, 256),
		register:       make(chan *websocket.Conn),
		unregister:     make(chan *websocket.Conn),
		done:           make(chan struct{}),
		clients:        make(map[*websocket.Conn]struct{}),
		hud:            make(map[string]string),
	}
}

// Run serves register/unregister/broadcast until ctx is canceled.
// Connections arriving after that are closed immediately.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			metrics.UpdateWSConnections(0)
			return ctx.Err()

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()

			slog.Debug("spectator connected", "remote", conn.RemoteAddr(), "total", count)
			metrics.UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.drop(conn)

		case message := <-h.broadcast:
			h.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.RUnlock()

			for _, conn := range conns {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					slog.Debug("spectator write failed", "remote", conn.RemoteAddr(), "error", err)
					h.drop(conn)
				}
			}
			metrics.IncrementWSMessages()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		conn.Close()
		metrics.UpdateWSConnections(count)
	}
}

// Broadcast queues an event for every spectator. Dropped when the queue is full.
func (h *Hub) Broadcast(event string, data any) {
	msg, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		slog.Error("encoding spectator event", "event", event, "error", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		// Channel full, skip (backpressure)
	}
}

// SetText implements combat.UIPresenter.
func (h *Hub) SetText(playerName, text string) {
	h.mu.Lock()
	changed := h.hud[playerName] != text
	h.hud[playerName] = text
	h.mu.Unlock()

	if changed {
		h.Broadcast("hud", HUDText{Player: playerName, Text: text})
	}
}

// HUD returns the last text pushed for a player.
func (h *Hub) HUD(playerName string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.hud[playerName]
	return t, ok
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades a spectator connection. Spectators are read-only;
// incoming frames are discarded until the socket closes.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.ClientCount() >= h.maxConnections {
		metrics.RecordConnectionRejected("total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	ip := clientIP(r)
	if h.limiter != nil && !h.limiter.Allow(ip) {
		metrics.RecordConnectionRejected("rate_limit")
		http.Error(w, "Too many connection attempts", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		metrics.RecordConnectionRejected("upgrade")
		slog.Debug("spectator upgrade failed", "ip", ip, "error", err)
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.done:
				conn.Close()
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
