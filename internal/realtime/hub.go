package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"agency-console/internal/logger"
	"agency-console/internal/metrics"
)

const (
	TypeInvalidate = "invalidate"
	TypeNavigate   = "navigate"
	// TypeLocation is sent by the browser whenever it shows a new screen.
	TypeLocation = "location"
)

// Message is the envelope on /ws in both directions.
type Message struct {
	Type        string    `json:"type"`
	Collections []string  `json:"collections,omitempty"`
	Path        string    `json:"path,omitempty"`
	At          time.Time `json:"at"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 5 * time.Second

// Hub fans console events out to every open browser tab. It tells screens
// which collections to refetch after a write and moves them to the login
// screen when the session is force-cleared.
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Message

	pathMux sync.RWMutex
	path    string

	log zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Message, 64),
		path:      "/",
		log:       logger.WithComponent("realtime"),
	}
}

// Run delivers queued messages until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg Message) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteJSON(msg); err != nil {
			h.log.Debug().Err(err).Msg("Dropping websocket client")
			client.Close()
			delete(h.clients, client)
		}
	}
	metrics.RealtimeClients.Set(float64(len(h.clients)))
}

func (h *Hub) closeAll() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
	metrics.RealtimeClients.Set(0)
}

// publish never blocks a request: when the queue is full the event is
// dropped and the next refresh tick catches the screens up.
func (h *Hub) publish(msg Message) {
	msg.At = time.Now()
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("type", msg.Type).Msg("Realtime queue full, event dropped")
	}
}

// Invalidate asks open screens to refetch the named collections.
func (h *Hub) Invalidate(collections ...string) {
	if len(collections) == 0 {
		return
	}
	h.publish(Message{Type: TypeInvalidate, Collections: collections})
}

// Navigate moves every open tab to path.
func (h *Hub) Navigate(path string) {
	h.SetPath(path)
	h.publish(Message{Type: TypeNavigate, Path: path})
}

// CurrentPath is the last screen the operator opened.
func (h *Hub) CurrentPath() string {
	h.pathMux.RLock()
	defer h.pathMux.RUnlock()
	return h.path
}

func (h *Hub) SetPath(path string) {
	if path == "" {
		return
	}
	h.pathMux.Lock()
	h.path = path
	h.pathMux.Unlock()
}

func (h *Hub) Clients() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and reads location updates until the
// browser goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	metrics.RealtimeClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			metrics.RealtimeClients.Set(float64(len(h.clients)))
			h.clientsMux.Unlock()
			return
		}
		if msg.Type == TypeLocation {
			h.SetPath(msg.Path)
		}
	}
}
