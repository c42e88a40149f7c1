package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
)

// Client is one connected board display.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans queue events out to every connected board display. Clients
// that cannot keep up are dropped rather than allowed to block the
// broadcast loop.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	log        zerolog.Logger
}

// NewHub returns a hub; the caller starts its loop with go hub.Run().
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Debug().Int("clients", len(h.clients)).Msg("board client registered")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Debug().Int("clients", len(h.clients)).Msg("board client unregistered")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
					h.log.Warn().Msg("dropped slow board client")
				}
			}
		}
	}
}

// Publish queues a queue event for broadcast. Implements the facade's
// Notifier interface.
func (h *Hub) Publish(event models.QueueEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to marshal queue event")
		return
	}
	h.broadcast <- message
}
