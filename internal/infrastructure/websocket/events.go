package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	apperrors "campusbazaar/pkg/errors"
	"campusbazaar/pkg/logger"
)

// Client -> server events.
const (
	EventSetup      = "setup"
	EventJoinChat   = "join_chat"
	EventNewMessage = "new_message"
)

// Server -> client events.
const (
	EventConnected       = "connected"
	EventMessageReceived = "message_received"
	EventError           = "error"
)

type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outboundEnvelope struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type setupData struct {
	UserID string `json:"user_id"`
}

type joinChatData struct {
	ConversationID string `json:"conversation_id"`
}

type newMessageData struct {
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Content        string `json:"content"`
}

type errorData struct {
	Message string `json:"message"`
}

// HandleClientMessage dispatches one inbound frame. The live channel is
// best-effort: failures are logged and reported back to the offending
// connection with an error event, never escalated.
func (m *Manager) HandleClientMessage(client *Client, payload []byte) {
	var envelope inboundEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		logger.Warn("websocket: malformed frame from user %s: %v", client.UserID, err)
		m.emitToClient(client, EventError, errorData{Message: "Invalid message format"})
		return
	}

	switch envelope.Event {
	case EventSetup:
		m.handleSetup(client, envelope.Data)
	case EventJoinChat:
		m.handleJoinChat(client, envelope.Data)
	case EventNewMessage:
		m.handleNewMessage(client, envelope.Data)
	default:
		logger.Debug("websocket: unknown event %q from user %s", envelope.Event, client.UserID)
		m.emitToClient(client, EventError, errorData{Message: "Unknown event"})
	}
}

// handleSetup binds the connection to the user's personal room. The claimed
// user id must match the identity authenticated at upgrade time; the socket
// payload is never trusted on its own.
func (m *Manager) handleSetup(client *Client, raw json.RawMessage) {
	var data setupData
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			m.emitToClient(client, EventError, errorData{Message: "Invalid setup payload"})
			return
		}
	}

	if data.UserID != "" && data.UserID != client.UserID {
		logger.Warn("websocket: setup user id %s does not match authenticated user %s", data.UserID, client.UserID)
		m.emitToClient(client, EventError, errorData{Message: "User id does not match this connection"})
		return
	}

	m.JoinRoom(client, PersonalRoom(client.UserID))
	m.emitToClient(client, EventConnected, nil)
}

func (m *Manager) handleJoinChat(client *Client, raw json.RawMessage) {
	var data joinChatData
	if err := json.Unmarshal(raw, &data); err != nil || data.ConversationID == "" {
		m.emitToClient(client, EventError, errorData{Message: "Missing conversation_id"})
		return
	}

	m.JoinRoom(client, ConversationRoom(data.ConversationID))
}

// handleNewMessage feeds the relay. The recorded sender is always the
// authenticated user of this connection; a sender_id claiming anyone else is
// rejected outright.
func (m *Manager) handleNewMessage(client *Client, raw json.RawMessage) {
	var data newMessageData
	if err := json.Unmarshal(raw, &data); err != nil {
		m.emitToClient(client, EventError, errorData{Message: "Invalid message payload"})
		return
	}

	if data.ConversationID == "" || strings.TrimSpace(data.Content) == "" {
		logger.Warn("websocket: incomplete new_message from user %s", client.UserID)
		m.emitToClient(client, EventError, errorData{Message: "Missing conversation_id or content"})
		return
	}

	if data.SenderID != "" && data.SenderID != client.UserID {
		logger.Warn("websocket: sender id %s does not match authenticated user %s", data.SenderID, client.UserID)
		m.emitToClient(client, EventError, errorData{Message: "Sender does not match this connection"})
		return
	}

	if m.relay == nil {
		logger.Error("websocket: no relay configured, dropping message from user %s", client.UserID)
		return
	}

	if err := m.relay.RelayMessage(context.Background(), client.UserID, data.ConversationID, data.Content); err != nil {
		logger.Warn("websocket: relay failed for user %s in conversation %s: %v", client.UserID, data.ConversationID, err)
		m.emitToClient(client, EventError, errorData{Message: relayErrorMessage(err)})
	}
}

func relayErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Failed to deliver message"
}
