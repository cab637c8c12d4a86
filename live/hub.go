// Package live pushes booking-change events to connected browsers over
// websockets, so an open booking list re-renders without polling.
package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Event is the message broadcast after every successful mutation. Clients
// are expected to reload the booking list when they receive one.
type Event struct {
	Type      string `json:"type"`
	BookingID int    `json:"booking_id,omitempty"`
}

// Hub keeps the set of connected clients. There is a single feed: every
// client sees every event.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		// Buffered so a broadcast from a request goroutine never blocks
		// when no hub loop is draining yet.
		broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			log.Printf("Live client registered. Total clients: %d", len(h.clients))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				client.mu.Lock()
				if !client.closed {
					close(client.send)
					client.closed = true
				}
				client.mu.Unlock()
				delete(h.clients, client)
				log.Printf("Live client unregistered. Total clients: %d", len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.mu.Lock()
				if client.closed {
					client.mu.Unlock()
					continue
				}
				select {
				case client.send <- message:
				default:
					log.Printf("Live client send channel full. Skipping.")
				}
				client.mu.Unlock()
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyBookingsChanged implements services.BookingNotifier.
func (h *Hub) NotifyBookingsChanged(eventType string, bookingID int) {
	message, err := json.Marshal(Event{Type: eventType, BookingID: bookingID})
	if err != nil {
		log.Printf("Error marshalling live event: %v", err)
		return
	}
	select {
	case h.broadcast <- message:
	default:
		log.Printf("Live broadcast channel full, dropping event %s", eventType)
	}
}
