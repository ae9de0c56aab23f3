package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client owns the write side of one connection. gorilla/websocket permits a
// single concurrent writer per connection, so every outbound frame takes the
// write mutex.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub tracks one live connection per user. A new connection for the same
// user replaces the previous one.
type Hub struct {
	connections map[int64]*client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) *client {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old != nil {
		_ = old.conn.Close()
	}

	cl := &client{conn: conn}
	h.connections[userID] = cl
	return cl
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cl, exists := h.connections[userID]; exists && cl != nil {
		_ = cl.conn.Close()
		delete(h.connections, userID)
	}
}

func (h *Hub) SendToUser(userID int64, message any) bool {
	h.mutex.RLock()
	cl, exists := h.connections[userID]
	h.mutex.RUnlock()

	if !exists || cl == nil {
		return false
	}

	if err := cl.writeJSON(message); err != nil {
		h.Unregister(userID)
		return false
	}

	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) GetOnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, cl := range h.connections {
		if cl != nil {
			_ = cl.conn.Close()
		}
		delete(h.connections, userID)
	}
}
