package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Define notification types
const (
	NotificationTypePlanUpgraded     = "plan_upgraded"
	NotificationTypeQuotaExceeded    = "quota_exceeded"
	NotificationTypeBranchCreated    = "branch_created"
	NotificationTypeAttendanceMarked = "attendance_marked"
	NotificationTypeAppointment      = "appointment_booked"
	NotificationTypeLowStock         = "low_stock"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type         string      `json:"type"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data,omitempty"`
	UserID       string      `json:"userID,omitempty"`
	RequiresAuth bool        `json:"requiresAuth,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	UserID        primitive.ObjectID
	Conn          *websocket.Conn
	Authenticated bool

	// gorilla/websocket allows one concurrent writer per connection;
	// writeMu serializes sends from concurrent request handlers.
	writeMu sync.Mutex
}

// Send writes a notification to the client's connection. It is safe to
// call from multiple goroutines.
func (c *Client) Send(notification Notification) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(notification)
}

// Hub maintains the set of active dashboard clients and pushes live
// notifications to the owning user
type Hub struct {
	clients                map[primitive.ObjectID]*Client
	unauthenticatedClients map[*Client]bool
	register               chan *Client
	unregister             chan *Client
	mu                     sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:                make(map[primitive.ObjectID]*Client),
		unauthenticatedClients: make(map[*Client]bool),
		register:               make(chan *Client),
		unregister:             make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if client.Authenticated && client.UserID != primitive.NilObjectID {
				h.clients[client.UserID] = client
			} else {
				h.unauthenticatedClients[client] = true
			}
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if client.Authenticated && client.UserID != primitive.NilObjectID {
				if _, ok := h.clients[client.UserID]; ok {
					delete(h.clients, client.UserID)
				}
			} else {
				delete(h.unauthenticatedClients, client)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID primitive.ObjectID, notification Notification) error {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user not connected")
	}

	return client.Send(notification)
}

// NotifyOwner pushes a notification to the owner's dashboard if it is
// connected. Disconnected owners simply miss the live event; all state is
// queryable through the REST surface anyway.
func (h *Hub) NotifyOwner(ownerID primitive.ObjectID, notificationType, message string, data interface{}) {
	_ = h.SendToUser(ownerID, Notification{
		Type:    notificationType,
		Message: message,
		Data:    data,
	})
}
