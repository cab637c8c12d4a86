package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/katsunaka/court-booking/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Single-tenant deployment behind the club's own domain; tighten
		// this when the frontend origin is pinned down.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes the caller to the booking-change feed.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Printf("Failed to upgrade live connection: %v", err)
		return
	}

	live.NewClient(h.hub, conn).Start()
}
