package ws

import (
	"sync"

	"nepshift_backend/internal/logger"
	"nepshift_backend/internal/services"
)

// Manager keeps the set of connected clients keyed by user id and routes
// chat events to the two members of a room.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	chatService *services.ChatService
}

func NewManager(chatService *services.ChatService) *Manager {
	return &Manager{
		clients:     make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		chatService: chatService,
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			// one connection per user; a newer one replaces the old
			if old, ok := m.clients[client.UserID]; ok {
				close(old.Send)
			}
			m.clients[client.UserID] = client
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.Send)
				delete(m.clients, client.UserID)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.UserID, "total", total)
		}
	}
}

// SendToRoom delivers the event to whichever room members are connected.
func (m *Manager) SendToRoom(roomKey string, event any) {
	a, b, ok := services.RoomMembers(roomKey)
	if !ok {
		logger.Warn("ws delivery skipped: malformed room key", "room_key", roomKey)
		return
	}
	m.SendToUser(a, event)
	m.SendToUser(b, event)
}

func (m *Manager) SendToUser(userID string, event any) {
	// hold the read lock across the send: Run closes Send under the write
	// lock, so this excludes a send racing the close
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[userID]
	if !ok {
		return
	}

	select {
	case client.Send <- event:
	default:
		// slow consumer, drop the connection
		go func() { m.unregister <- client }()
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
