package services

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	ID    uint
	Roles []string
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *Hub
}

func (c *Client) hasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			logrus.Debugf("websocket client %d connected", client.ID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			logrus.Debugf("websocket client %d disconnected", client.ID)

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastToUser sends a message to a specific user
func (h *Hub) BroadcastToUser(userID uint, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.ID == userID {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// BroadcastToRole sends a message to every connected user holding a role
func (h *Hub) BroadcastToRole(role string, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.hasRole(role) {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// RideEvent is the change notification pushed to the rider and driver
// involved in a ride whenever its lifecycle state moves. Clients refresh
// their view on receipt instead of polling.
type RideEvent struct {
	RideID   uint   `json:"rideId"`
	Status   string `json:"status"`
	DriverID *uint  `json:"driverId,omitempty"`
	Message  string `json:"message,omitempty"`
}

// DriverApprovalEvent notifies a driver applicant about the admin decision.
type DriverApprovalEvent struct {
	DriverID       uint   `json:"driverId"`
	ApprovalStatus string `json:"approvalStatus"`
}

// PaymentEvent notifies a payer about a settlement status change.
type PaymentEvent struct {
	PaymentID uint   `json:"paymentId"`
	RideID    uint   `json:"rideId"`
	Status    string `json:"status"`
}

// NotifyRideEvent marshals and fans a ride event out to the given users.
func (h *Hub) NotifyRideEvent(event RideEvent, userIDs ...uint) {
	msg := WebSocketMessage{Type: "ride_update", Data: event}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for _, id := range userIDs {
		h.BroadcastToUser(id, data)
	}
}

// NotifyDriverApplication tells connected admins a new application landed.
func (h *Hub) NotifyDriverApplication(driverID, userID uint) {
	msg := WebSocketMessage{Type: "driver_application", Data: map[string]uint{
		"driverId": driverID,
		"userId":   userID,
	}}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.BroadcastToRole("admin", data)
}

// NotifyDriverApproval tells an applicant about the admin decision.
func (h *Hub) NotifyDriverApproval(event DriverApprovalEvent, userID uint) {
	msg := WebSocketMessage{Type: "driver_approval", Data: event}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.BroadcastToUser(userID, data)
}

// NotifyPaymentEvent tells a payer about a settlement status change.
func (h *Hub) NotifyPaymentEvent(event PaymentEvent, userID uint) {
	msg := WebSocketMessage{Type: "payment_update", Data: event}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.BroadcastToUser(userID, data)
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, roles []string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("websocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:    userID,
		Roles: roles,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Hub:   hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Errorf("websocket error: %v", err)
			}
			break
		}
		// Clients only listen; inbound frames are ignored.
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
