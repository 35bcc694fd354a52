package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"campusbazaar/pkg/logger"
)

// MessageRelay persists an inbound chat message and fans it out. Implemented
// by the chat use case; the manager only validates the envelope and the
// sender binding before delegating.
type MessageRelay interface {
	RelayMessage(ctx context.Context, senderID, conversationID, content string) error
}

// Manager owns every live socket session and its room memberships. All
// membership state is transient; a disconnect discards it without touching
// durable storage.
type Manager struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[Room]map[*Client]struct{}

	Unregister chan *Client

	relay MessageRelay
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[Room]map[*Client]struct{}),
		Unregister: make(chan *Client),
	}
}

// SetRelay wires the message relay. Called once at startup; the indirection
// avoids an import cycle between the manager and the chat use case.
func (m *Manager) SetRelay(relay MessageRelay) {
	m.relay = relay
}

// Start runs the teardown loop until the context is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Unregister:
				m.removeClient(client)
				logger.Info("websocket: client disconnected for user %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Attach registers the connection synchronously, before its pumps start. A
// setup frame arriving right after the upgrade must already find the client
// or its personal-room binding would be silently lost.
func (m *Manager) Attach(client *Client) {
	m.addClient(client)
	logger.Info("websocket: client connected for user %s", client.UserID)
}

func (m *Manager) addClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	client.rooms = make(map[Room]struct{})
	m.clients[client] = struct{}{}
}

func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[client]; !ok {
		return
	}
	delete(m.clients, client)
	for room := range client.rooms {
		m.leaveRoomLocked(client, room)
	}
	// Close the connection, not the send channel: an EmitToRoom racing this
	// removal may have snapshotted the membership already and still send.
	client.Close()
}

// JoinRoom adds the client to a room. Joining twice is a no-op.
func (m *Manager) JoinRoom(client *Client, room Room) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[client]; !ok {
		return
	}
	members, ok := m.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		m.rooms[room] = members
	}
	members[client] = struct{}{}
	client.rooms[room] = struct{}{}
}

func (m *Manager) leaveRoomLocked(client *Client, room Room) {
	members, ok := m.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(m.rooms, room)
	}
	delete(client.rooms, room)
}

// RoomSize reports the current member count of a room.
func (m *Manager) RoomSize(room Room) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[room])
}

// EmitToRoom delivers an event to every connection in the room. Delivery is
// best-effort: a client whose send buffer is full is dropped rather than
// allowed to stall the emitter.
func (m *Manager) EmitToRoom(room Room, event string, data interface{}) {
	payload, err := json.Marshal(outboundEnvelope{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("websocket: failed to marshal %s event: %v", event, err)
		return
	}

	m.mu.RLock()
	members := make([]*Client, 0, len(m.rooms[room]))
	for client := range m.rooms[room] {
		members = append(members, client)
	}
	m.mu.RUnlock()

	for _, client := range members {
		select {
		case client.Send <- payload:
		default:
			logger.Warn("websocket: send buffer full for user %s, dropping connection", client.UserID)
			m.removeClient(client)
		}
	}
}

// EmitToUser delivers an event to every active connection of one user.
func (m *Manager) EmitToUser(userID string, event string, data interface{}) {
	m.EmitToRoom(PersonalRoom(userID), event, data)
}

func (m *Manager) emitToClient(client *Client, event string, data interface{}) {
	payload, err := json.Marshal(outboundEnvelope{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("websocket: failed to marshal %s event: %v", event, err)
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("websocket: send buffer full for user %s, dropping connection", client.UserID)
		m.removeClient(client)
	}
}
