package websockets

import (
	"sync"
)

type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func newHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, BROADCAST_BUFFER_SIZE),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]*Client),
	}
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			m.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message, m)

		case <-h.done:
			m.closeAllClients()
			return
		}
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// add and remove hand a client to the hub goroutine. They return
// immediately once the hub has stopped.
func (h *Hub) add(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (m *Manager) registerClient(client *Client) {
	log := m.log.Function("registerClient")

	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client

	log.Info("Client registered", "clientID", client.ID, "clients", len(m.hub.clients))
}

// unregisterClient drops the client, stops its write pump and cancels its
// pending searches. Repeated calls for the same client are ignored.
func (m *Manager) unregisterClient(client *Client) {
	log := m.log.Function("unregisterClient")

	m.hub.mutex.Lock()
	_, ok := m.hub.clients[client.ID]
	delete(m.hub.clients, client.ID)
	m.hub.mutex.Unlock()

	if !ok {
		return
	}

	client.close()
	client.cancelSearches()

	log.Info("Client unregistered", "clientID", client.ID)
}

func (m *Manager) closeAllClients() {
	m.hub.mutex.Lock()
	clients := m.hub.clients
	m.hub.clients = make(map[string]*Client)
	m.hub.mutex.Unlock()

	for _, client := range clients {
		client.close()
		client.cancelSearches()
	}
}

func (h *Hub) broadcastMessage(message Message, m *Manager) {
	log := m.log.Function("broadcastMessage")

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if len(h.clients) == 0 {
		log.Debug("No active clients to broadcast to", "messageID", message.ID)
		return
	}

	sentCount := 0
	for _, client := range h.clients {
		if client.enqueue(message) {
			sentCount++
		}
	}

	log.Debug(
		"Broadcast complete",
		"messageID", message.ID,
		"type", message.Type,
		"sentTo", sentCount,
		"totalClients", len(h.clients),
	)
}
