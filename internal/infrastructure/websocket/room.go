package websocket

import "fmt"

type roomKind int

const (
	roomKindPersonal roomKind = iota
	roomKindConversation
)

// Room is a delivery address inside the session manager. Modelling it as a
// tagged value instead of a raw string keeps personal and conversation
// namespaces from colliding on equal ids.
type Room struct {
	kind roomKind
	id   string
}

// PersonalRoom addresses every active connection of one user. Message
// fan-out always targets personal rooms.
func PersonalRoom(userID string) Room {
	return Room{kind: roomKindPersonal, id: userID}
}

// ConversationRoom groups the connections that currently have a
// conversation open. Joining is idempotent and not required for delivery.
func ConversationRoom(conversationID string) Room {
	return Room{kind: roomKindConversation, id: conversationID}
}

func (r Room) String() string {
	switch r.kind {
	case roomKindPersonal:
		return fmt.Sprintf("user:%s", r.id)
	case roomKindConversation:
		return fmt.Sprintf("conversation:%s", r.id)
	}
	return r.id
}
