package websockets

import (
	"sync"
	"time"

	"gameshelf/internal/charts"
	"gameshelf/internal/events"
	"gameshelf/internal/search"
	"gameshelf/internal/view"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	PING_INTERVAL         = 30 * time.Second
	PONG_TIMEOUT          = 60 * time.Second
	WRITE_TIMEOUT         = 10 * time.Second
	MAX_MESSAGE_SIZE      = 64 * 1024
	SEND_CHANNEL_SIZE     = 64
	BROADCAST_BUFFER_SIZE = 256
)

type Message struct {
	ID        string             `json:"id"`
	Type      events.MessageType `json:"type"`
	Data      map[string]any     `json:"data,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

func NewMessage(messageType events.MessageType, data map[string]any) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Projector supplies the current projections a client receives when it
// connects.
type Projector interface {
	Render() view.Render
	Charts() charts.Charts
}

type Client struct {
	ID         string
	Connection *websocket.Conn
	Manager    *Manager
	send       chan Message
	mu         sync.Mutex
	closed     bool
	inputs     map[string]struct{}
}

type Manager struct {
	hub       *Hub
	eventBus  *events.EventBus
	debouncer *search.Debouncer
	projector Projector
	log       logger.Logger
}

func New(eventBus *events.EventBus, debouncer *search.Debouncer, projector Projector) *Manager {
	log := logger.New("websockets")

	manager := &Manager{
		hub:       newHub(),
		eventBus:  eventBus,
		debouncer: debouncer,
		projector: projector,
		log:       log,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	manager.subscribeToBroadcastEvents()

	return manager
}

func (m *Manager) newClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:         uuid.NewString(),
		Connection: conn,
		Manager:    m,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
		inputs:     make(map[string]struct{}),
	}
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := m.newClient(c)
	m.hub.add(client)
	defer func() {
		log.Info("Client disconnected", "clientID", client.ID)
		m.hub.remove(client)
		if err := c.Close(); err != nil {
			log.Debug("connection already closed", "clientID", client.ID, "error", err)
		}
	}()

	if m.projector != nil {
		client.enqueue(NewMessage(events.RENDER, map[string]any{"render": m.projector.Render()}))
		client.enqueue(NewMessage(events.CHARTS, map[string]any{"charts": m.projector.Charts()}))
	}

	go client.readPump()
	client.writePump()
}

// BroadcastMessage queues a message for every connected client.
func (m *Manager) BroadcastMessage(message Message) {
	log := m.log.Function("BroadcastMessage")

	select {
	case m.hub.broadcast <- message:
	default:
		log.Warn("Broadcast channel is full, dropping message", "messageID", message.ID, "type", message.Type)
	}
}

// ClientCount reports the number of connected clients.
func (m *Manager) ClientCount() int {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	return len(m.hub.clients)
}

func (m *Manager) Close() {
	m.hub.stop()
}

// enqueue hands a message to the write pump without blocking. Messages for
// a slow or disconnected client are dropped.
func (c *Client) enqueue(message Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		c.Manager.log.Function("enqueue").
			Warn("Client send channel full, dropping message", "clientID", c.ID, "type", message.Type)
		return false
	}
}

// close stops the write pump. It is safe to call more than once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.remove(c)
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
			log.Er("failed to set read deadline in pong handler", err, "clientID", c.ID)
		}
		return nil
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				log.Er("Unexpected close error", err, "clientID", c.ID)
			}
			break
		}

		message.ID = uuid.NewString()
		message.Timestamp = time.Now()

		c.routeMessage(message)
	}
}

func (c *Client) routeMessage(message Message) {
	log := c.Manager.log.Function("routeMessage")

	switch message.Type {
	case events.PING:
		c.enqueue(NewMessage(events.PONG, nil))
	case events.SEARCH_INPUT:
		c.handleSearchInput(message)
	default:
		log.Warn("Unknown message type", "clientID", c.ID, "type", message.Type)
		c.enqueue(NewMessage(events.ERROR, map[string]any{
			"reason": "unknown message type",
			"type":   message.Type,
		}))
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("WebSocket write error", err, "clientID", c.ID, "type", message.Type)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// subscribeToBroadcastEvents forwards renders, charts, toasts and prompts
// published on the event bus to every client.
func (m *Manager) subscribeToBroadcastEvents() {
	log := m.log.Function("subscribeToBroadcastEvents")
	log.Info("Starting broadcast events subscription")

	m.eventBus.Subscribe(events.BROADCAST_CHANNEL, func(event events.Event) error {
		log.Debug("Received broadcast event", "eventID", event.ID, "eventType", event.Type)

		m.BroadcastMessage(Message{
			ID:        event.ID,
			Type:      event.Type,
			Data:      event.Data,
			Timestamp: event.Timestamp,
		})
		return nil
	})
}
