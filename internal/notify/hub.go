package notify

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API already runs with permissive CORS; the socket follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub relays bus events to connected websocket views so panels can re-query
// after a mutation.
type Hub struct {
	bus    *Bus
	logger *zap.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}

	stop func()
}

func NewHub(bus *Bus, log *zap.Logger) *Hub {
	h := &Hub{
		bus:     bus,
		logger:  log,
		clients: make(map[*wsClient]struct{}),
	}
	h.start()
	return h
}

func (h *Hub) start() {
	kinds := []models.Kind{models.KindAsset, models.KindDocument, models.KindPerson}
	cancels := make([]func(), 0, len(kinds))
	for _, kind := range kinds {
		ch, cancel := h.bus.Subscribe(kind)
		cancels = append(cancels, cancel)
		go func() {
			for ev := range ch {
				h.broadcast(ev)
			}
		}()
	}
	h.stop = func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// Close detaches the hub from the bus and drops every client.
func (h *Hub) Close() {
	if h.stop != nil {
		h.stop()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("Failed to marshal change event", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// slow client, drop it
			close(c.send)
			delete(h.clients, c)
		}
	}
}

// ServeHTTP upgrades the request and streams change events until the client
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed", zap.Error(err))
		return
	}
	client := &wsClient{conn: conn, send: make(chan []byte, 32)}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("Change-feed client connected", zap.String("remote", conn.RemoteAddr().String()))

	go func() {
		defer conn.Close()
		for msg := range client.send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Reader loop only to detect disconnect; clients do not send anything.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				if _, ok := h.clients[client]; ok {
					close(client.send)
					delete(h.clients, client)
				}
				h.mu.Unlock()
				return
			}
		}
	}()
}
