package realtime

import (
	"sync"
)

// Client is one connected listener. The network connection itself is owned
// by the websocket handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub tracks open connections per user and fans habit events out to them, so
// a UI with the habit list open sees writes without polling.
type Hub struct {
	mu            sync.RWMutex
	userToClients map[uint]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			userToClients: make(map[uint]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a user id.
func (h *Hub) Register(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userToClients[userID]; !ok {
		h.userToClients[userID] = make(map[Client]struct{})
	}
	h.userToClients[userID][client] = struct{}{}
}

// Unregister removes a client; the user's bucket is dropped when empty.
func (h *Hub) Unregister(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userToClients, userID)
		}
	}
}

// Broadcast sends a message to every client of one user. A failed send is
// left for the owning handler to clean up.
func (h *Hub) Broadcast(userID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userToClients[userID] {
		_ = c.Send(message)
	}
}
