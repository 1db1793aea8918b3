package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Push types
const PushTypeMessage = "message"

// Push is the payload written to a recipient's socket.
type Push struct {
	Type           string    `json:"type"`
	ConversationID int64     `json:"conversation_id"`
	MessageID      int64     `json:"message_id,omitempty"`
	SenderID       int64     `json:"sender_id"`
	SenderName     string    `json:"sender_name,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Delivery addresses a push to a set of students.
type Delivery struct {
	RecipientIDs []int64 `json:"recipient_ids"`
	Push         Push    `json:"push"`
}

// Publisher hands a delivery to whatever fans it out to sockets.
type Publisher interface {
	Publish(ctx context.Context, d Delivery) error
}

// Hub tracks the open sockets of this instance, keyed by student id.
type Hub struct {
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	deliver    chan Delivery
	done       chan struct{}

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan Delivery, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and deliveries until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case d := <-h.deliver:
			h.deliverLocal(d)
		}
	}
}

// Publish implements Publisher for a single instance deployment.
func (h *Hub) Publish(ctx context.Context, d Delivery) error {
	select {
	case h.deliver <- d:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.studentID]; !ok {
		h.clients[client.studentID] = make(map[*Client]bool)
	}
	h.clients[client.studentID][client] = true

	h.logger.Info().Int64("studentID", client.studentID).Str("addr", client.remoteAddr()).Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	set, ok := h.clients[client.studentID]
	if !ok || !set[client] {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.studentID)
	}
	h.logger.Info().Int64("studentID", client.studentID).Str("addr", client.remoteAddr()).Msg("Client unregistered")
}

// deliverLocal writes to every socket of every recipient. Sockets whose buffer is
// full are dropped.
func (h *Hub) deliverLocal(d Delivery) {
	data, err := json.Marshal(d.Push)
	if err != nil {
		h.logger.Error().Err(err).Int64("conversationID", d.Push.ConversationID).Msg("Failed to marshal push")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, id := range d.RecipientIDs {
		for client := range h.clients[id] {
			select {
			case client.send <- data:
				delivered++
			default:
				h.removeLocked(client)
			}
		}
	}

	h.logger.Debug().
		Int64("conversationID", d.Push.ConversationID).
		Int("sockets", delivered).
		Msg("Push delivered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.clients {
		for client := range set {
			h.removeLocked(client)
		}
	}
}

// ClientCount returns the number of open sockets of a student on this instance.
func (h *Hub) ClientCount(studentID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[studentID])
}
