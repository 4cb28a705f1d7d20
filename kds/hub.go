package kds

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

// Message is the frame sent to dashboards.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the connected staff dashboards (kitchen, waiter, admin) and
// pushes order events to them.
type Hub struct {
	clients map[*Client]struct{}
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Attach registers a websocket connection and starts its pumps.
func (h *Hub) Attach(conn *websocket.Conn, role models.Role) *Client {
	c := &Client{hub: h, conn: conn, role: role, send: make(chan []byte, sendBuffer)}
	h.mutex.Lock()
	h.clients[c] = struct{}{}
	h.mutex.Unlock()

	utils.InfoLogger.WithField("role", role).Debug("kds client connected")
	go c.writePump()
	go c.readPump()
	return c
}

func (h *Hub) unregister(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// wants decides which roles see an event. The kitchen only cares about
// status moves; waiters and admins see everything.
func wants(role models.Role, ev services.OrderEvent) bool {
	switch role {
	case models.RoleAdmin, models.RoleWaiter:
		return true
	case models.RoleChef:
		return ev.Type == services.EventStatusChanged || ev.Type == services.EventOrderCreated
	}
	return false
}

// Notify broadcasts the event. Slow clients whose buffer is full are
// dropped rather than blocking the broadcast.
func (h *Hub) Notify(_ context.Context, ev services.OrderEvent) error {
	data, err := json.Marshal(Message{Event: string(ev.Type), Data: ev})
	if err != nil {
		return fmt.Errorf("marshal kds message: %w", err)
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		if !wants(c.role, ev) {
			continue
		}
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.WithField("role", c.role).Warn("kds client too slow, dropping")
			delete(h.clients, c)
			close(c.send)
		}
	}
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
