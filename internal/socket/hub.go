// internal/socket/hub.go
package socket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/metrics"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Store messages
	MessageProjectCreated MessageType = "project_created"

	// System messages
	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
	MessageAck  MessageType = "ack"
)

// DashboardRoom is joined by every client on connect.
const DashboardRoom = "dashboard"

// Message represents a WebSocket message
type Message struct {
	Type      MessageType            `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Client represents a connected WebSocket client
type Client struct {
	ID    string
	Conn  *websocket.Conn
	Hub   *Hub
	Send  chan []byte
	Rooms map[string]bool
	mu    sync.Mutex
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Clients indexed by room for broadcasting
	roomClients map[string]map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Broadcast to specific room
	roomBroadcast chan *RoomMessage

	pingInterval time.Duration

	// done is closed once Run returns
	done chan struct{}

	mu sync.RWMutex
}

// RoomMessage represents a message to be sent to a specific room
type RoomMessage struct {
	Room    string
	Message []byte
	Exclude string // Client ID to exclude from broadcast
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		roomClients:   make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		roomBroadcast: make(chan *RoomMessage, 256),
		pingInterval:  30 * time.Second,
		done:          make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns when ctx is done, after
// disconnecting every client.
func (h *Hub) Run(ctx context.Context) {
	log := logging.C("hub")
	log.Info("websocket hub started")

	pingTicker := time.NewTicker(h.pingInterval)
	defer pingTicker.Stop()
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case rm := <-h.roomBroadcast:
			h.broadcastToRoom(rm)

		case <-pingTicker.C:
			h.pingClients()

		case <-ctx.Done():
			h.closeAll()
			log.Info("websocket hub stopped")
			return
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.joinLocked(client, DashboardRoom)
	metrics.SetWebsocketClients(len(h.clients))

	logging.C("hub").WithFields(map[string]interface{}{
		"client_id":     client.ID,
		"total_clients": len(h.clients),
	}).Info("client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		h.removeLocked(client)
		logging.C("hub").WithFields(map[string]interface{}{
			"client_id":     client.ID,
			"total_clients": len(h.clients),
		}).Info("client disconnected")
	}
}

func (h *Hub) removeLocked(client *Client) {
	delete(h.clients, client)

	client.mu.Lock()
	for room := range client.Rooms {
		if clients, ok := h.roomClients[room]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.roomClients, room)
			}
		}
	}
	client.mu.Unlock()

	close(client.Send)
	metrics.SetWebsocketClients(len(h.clients))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.removeLocked(client)
	}
}

func (h *Hub) broadcastToRoom(rm *RoomMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.roomClients[rm.Room]
	if !ok {
		logging.C("hub").WithField("room", rm.Room).Debug("room has no clients")
		return
	}

	sentCount := 0
	for client := range clients {
		if rm.Exclude != "" && client.ID == rm.Exclude {
			continue
		}
		select {
		case client.Send <- rm.Message:
			sentCount++
		default:
			go h.requestUnregister(client)
		}
	}
	logging.C("hub").WithFields(map[string]interface{}{
		"room": rm.Room,
		"sent": sentCount,
	}).Debug("room broadcast")
}

func (h *Hub) pingClients() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, _ := json.Marshal(Message{
		Type:      MessagePing,
		Timestamp: time.Now(),
	})

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			go h.requestUnregister(client)
		}
	}
}

// requestRegister and requestUnregister give up once the hub has stopped.
func (h *Hub) requestRegister(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) requestUnregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ============================================
// Public Methods for Room Management
// ============================================

// JoinRoom adds a registered client to a room
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[client] {
		return
	}
	h.joinLocked(client, room)
}

func (h *Hub) joinLocked(client *Client, room string) {
	client.mu.Lock()
	client.Rooms[room] = true
	client.mu.Unlock()

	if h.roomClients[room] == nil {
		h.roomClients[room] = make(map[*Client]bool)
	}
	h.roomClients[room][client] = true

	logging.C("hub").WithFields(map[string]interface{}{
		"client_id": client.ID,
		"room":      room,
	}).Debug("client joined room")
}

// LeaveRoom removes a client from a room
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.mu.Lock()
	delete(client.Rooms, room)
	client.mu.Unlock()

	if clients, ok := h.roomClients[room]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.roomClients, room)
		}
	}
}

// ============================================
// Public Methods for Sending Messages
// ============================================

// SendToRoom broadcasts a message to all clients in a room. The message is
// dropped when the hub's queue is full.
func (h *Hub) SendToRoom(room string, msgType MessageType, payload map[string]interface{}, excludeClientID string) {
	data, err := json.Marshal(Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		logging.C("hub").WithError(err).Error("marshal message")
		return
	}

	select {
	case h.roomBroadcast <- &RoomMessage{Room: room, Message: data, Exclude: excludeClientID}:
	default:
		logging.C("hub").WithFields(map[string]interface{}{
			"room": room,
			"type": msgType,
		}).Warn("broadcast queue full, message dropped")
	}
}

// ============================================
// Query Methods
// ============================================

// GetRoomClients returns the number of clients in a room
func (h *Hub) GetRoomClients(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.roomClients[room]; ok {
		return len(clients)
	}
	return 0
}

// GetConnectedClientsCount returns total connected clients
func (h *Hub) GetConnectedClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
