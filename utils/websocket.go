package utils

import (
	"errors"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// One live connection per user. A reconnect replaces the previous socket.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

var (
	wsClients   = make(map[string]*wsClient)
	wsClientsMu sync.RWMutex
)

var ErrClientNotConnected = errors.New("client is not connected")

func RegisterClient(userID string, conn *websocket.Conn) {
	wsClientsMu.Lock()
	defer wsClientsMu.Unlock()
	if existing, ok := wsClients[userID]; ok {
		existing.conn.Close()
	}
	wsClients[userID] = &wsClient{conn: conn}
}

func UnregisterClient(userID string, conn *websocket.Conn) {
	wsClientsMu.Lock()
	defer wsClientsMu.Unlock()
	if existing, ok := wsClients[userID]; ok && existing.conn == conn {
		delete(wsClients, userID)
	}
}

// SendPersonalMessageToClient pushes a JSON payload to the user's socket if
// one is open.
func SendPersonalMessageToClient(userID string, payload interface{}) error {
	wsClientsMu.RLock()
	client, ok := wsClients[userID]
	wsClientsMu.RUnlock()
	if !ok {
		return ErrClientNotConnected
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	return client.conn.WriteJSON(payload)
}
