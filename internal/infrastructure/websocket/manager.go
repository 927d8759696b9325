package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"griyapasar/pkg/logger"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	// cancel tears down the server-side streams bound to this connection
	// (the notification feed subscription among them).
	cancel context.CancelFunc
}

// NewClient wraps an upgraded connection. cancel is invoked when the
// connection is unregistered or replaced.
func NewClient(userID string, conn *websocket.Conn, cancel context.CancelFunc) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		cancel: cancel,
	}
}

// Manager manages all active WebSocket connections
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if prev, ok := m.clients[client.UserID]; ok {
					// One live connection per user; the newer one wins.
					prev.cancel()
					close(prev.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				client.cancel()
				logger.Debug("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser sends a message to a specific user. Unknown or slow recipients
// are dropped silently; live pushes are best effort and the store remains
// the source of truth.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}
	select {
	case client.Send <- message:
	default:
		logger.Warn("Dropping message to %s: send buffer full", userID)
	}
}

// ActiveConnections returns the number of connected clients.
func (m *Manager) ActiveConnections() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error: %v", err)
			}
			break
		}

		logger.Debug("Received message from %s: %s", c.UserID, string(message))
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		err := c.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			logger.Warn("Websocket write error: %v", err)
			return
		}
	}
}
