package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/finledger/commission-app/backend/internal/entities"
)

// Manager tracks websocket subscribers per user and fans ledger change
// events out to them.
type Manager struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*websocket.Conn]bool
}

func NewWebSocketManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		subscribers: make(map[uuid.UUID]map[*websocket.Conn]bool),
	}
}

func (m *Manager) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return m.upgrader.Upgrade(w, r, nil)
}

func (m *Manager) Subscribe(userID uuid.UUID, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.subscribers[userID] == nil {
		m.subscribers[userID] = make(map[*websocket.Conn]bool)
	}
	m.subscribers[userID][conn] = true
}

func (m *Manager) Unsubscribe(userID uuid.UUID, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.subscribers[userID], conn)
	if len(m.subscribers[userID]) == 0 {
		delete(m.subscribers, userID)
	}
}

// Broadcast pushes a change event to every subscriber of the affected user.
// Connections that fail to write are dropped.
func (m *Manager) Broadcast(event entities.ChangeEvent) {
	m.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(m.subscribers[event.UserID]))
	for conn := range m.subscribers[event.UserID] {
		conns = append(conns, conn)
	}
	m.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			m.logger.Error("Failed to push change event, dropping subscriber",
				"user_id", event.UserID, "error", err)
			m.Unsubscribe(event.UserID, conn)
			conn.Close()
		}
	}
}
