package handlers

import (
	"context"
	"log"
	"sync"

	"antworld/messages"
	"antworld/models"
)

// ClientManager manages connected clients
type ClientManager struct {
	clients map[int]*ClientHandler
	nextID  int
	mutex   sync.RWMutex
}

// NewClientManager creates a new client manager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[int]*ClientHandler),
	}
}

// AddClient registers a handler and returns its id
func (cm *ClientManager) AddClient(handler *ClientHandler) int {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	id := cm.nextID
	cm.nextID++
	cm.clients[id] = handler
	return id
}

// RemoveClient removes a client from the manager
func (cm *ClientManager) RemoveClient(id int) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.clients, id)
}

// Count returns the number of connected clients
func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.clients)
}

// BroadcastToAll sends a message to all connected clients
func (cm *ClientManager) BroadcastToAll(msg interface{}) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for id, client := range cm.clients {
		if err := client.conn.SendMessage(msg); err != nil {
			log.Printf("Error broadcasting to client %d: %v", id, err)
		}
	}
}

// Run broadcasts every simulation event until ctx is done or the stream ends
func (cm *ClientManager) Run(ctx context.Context, events <-chan models.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			cm.BroadcastToAll(messages.BaseMessage{
				Type:    messages.MessageTypeEvent,
				Payload: messages.EventMessage{Event: event},
			})
		}
	}
}
