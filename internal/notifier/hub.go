package notifier

import (
	"sync"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"go.uber.org/zap"
)

// Hub holds the set of live connections and fans menu updates out to them.
// Delivery is best-effort: a write failure closes and removes the failing
// connection, nothing else.
type Hub struct {
	clients map[Conn]bool
	mu      sync.Mutex
	logger  *zap.SugaredLogger
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		clients: make(map[Conn]bool),
		logger:  logger,
	}
}

func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[conn] = true
	h.logger.Infow("live client connected", "clients", len(h.clients))
}

// Unregister is idempotent; a connection removed by a failed broadcast may
// be unregistered again by its read loop.
func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.logger.Infow("live client disconnected", "clients", len(h.clients))
}

func (h *Hub) Broadcast(menu []domain.Food) {
	msg := MenuUpdateMessage{
		Type: MessageTypeMenuUpdate,
		Menu: menu,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warnw("failed to push menu update, dropping client", "error", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}
