package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRelay struct {
	senderID       string
	conversationID string
	content        string
	err            error
	calls          int
}

func (f *fakeRelay) RelayMessage(ctx context.Context, senderID, conversationID, content string) error {
	f.calls++
	f.senderID = senderID
	f.conversationID = conversationID
	f.content = content
	return f.err
}

func newTestClient(userID string) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, 8),
		done:   make(chan struct{}),
	}
}

func receiveEvent(t *testing.T, client *Client) outboundEnvelope {
	t.Helper()
	select {
	case payload := <-client.Send:
		var envelope outboundEnvelope
		require.NoError(t, json.Unmarshal(payload, &envelope))
		return envelope
	default:
		t.Fatal("expected an event on the send channel")
		return outboundEnvelope{}
	}
}

func TestSetupBindsPersonalRoom(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{"event":"setup","data":{"user_id":"user-1"}}`))

	assert.Equal(t, 1, m.RoomSize(PersonalRoom("user-1")))
	event := receiveEvent(t, client)
	assert.Equal(t, EventConnected, event.Event)
}

func TestSetupWithoutPayloadStillBinds(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{"event":"setup"}`))

	assert.Equal(t, 1, m.RoomSize(PersonalRoom("user-1")))
}

func TestSetupRejectsForeignUserID(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{"event":"setup","data":{"user_id":"someone-else"}}`))

	assert.Equal(t, 0, m.RoomSize(PersonalRoom("someone-else")))
	assert.Equal(t, 0, m.RoomSize(PersonalRoom("user-1")))
	event := receiveEvent(t, client)
	assert.Equal(t, EventError, event.Event)
}

func TestJoinChatIsIdempotent(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{"event":"join_chat","data":{"conversation_id":"conv-1"}}`))
	m.HandleClientMessage(client, []byte(`{"event":"join_chat","data":{"conversation_id":"conv-1"}}`))

	assert.Equal(t, 1, m.RoomSize(ConversationRoom("conv-1")))
}

func TestNewMessageUsesConnectionIdentity(t *testing.T) {
	m := NewManager()
	relay := &fakeRelay{}
	m.SetRelay(relay)

	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{"event":"new_message","data":{"conversation_id":"conv-1","content":"hello"}}`))

	assert.Equal(t, 1, relay.calls)
	assert.Equal(t, "user-1", relay.senderID)
	assert.Equal(t, "conv-1", relay.conversationID)
	assert.Equal(t, "hello", relay.content)
}

func TestNewMessageRejectsSpoofedSender(t *testing.T) {
	m := NewManager()
	relay := &fakeRelay{}
	m.SetRelay(relay)

	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{"event":"new_message","data":{"conversation_id":"conv-1","sender_id":"victim","content":"forged"}}`))

	assert.Equal(t, 0, relay.calls)
	event := receiveEvent(t, client)
	assert.Equal(t, EventError, event.Event)
}

func TestNewMessageRejectsMissingFields(t *testing.T) {
	m := NewManager()
	relay := &fakeRelay{}
	m.SetRelay(relay)

	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{"event":"new_message","data":{"content":"no conversation"}}`))
	assert.Equal(t, 0, relay.calls)

	m.HandleClientMessage(client, []byte(`{"event":"new_message","data":{"conversation_id":"conv-1","content":"   "}}`))
	assert.Equal(t, 0, relay.calls)
}

func TestUnknownEventAnswersError(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{"event":"teleport"}`))

	event := receiveEvent(t, client)
	assert.Equal(t, EventError, event.Event)
}

func TestMalformedFrameAnswersError(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)

	m.HandleClientMessage(client, []byte(`{not json`))

	event := receiveEvent(t, client)
	assert.Equal(t, EventError, event.Event)
}

func TestEmitToRoomReachesAllMembers(t *testing.T) {
	m := NewManager()
	clientA := newTestClient("user-1")
	clientB := newTestClient("user-1")
	outsider := newTestClient("user-2")
	m.addClient(clientA)
	m.addClient(clientB)
	m.addClient(outsider)

	m.JoinRoom(clientA, PersonalRoom("user-1"))
	m.JoinRoom(clientB, PersonalRoom("user-1"))
	m.JoinRoom(outsider, PersonalRoom("user-2"))

	m.EmitToUser("user-1", EventMessageReceived, map[string]string{"content": "hi"})

	eventA := receiveEvent(t, clientA)
	eventB := receiveEvent(t, clientB)
	assert.Equal(t, EventMessageReceived, eventA.Event)
	assert.Equal(t, EventMessageReceived, eventB.Event)
	assert.Empty(t, outsider.Send)
}

func TestDisconnectDiscardsMembership(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)
	m.JoinRoom(client, PersonalRoom("user-1"))
	m.JoinRoom(client, ConversationRoom("conv-1"))

	m.removeClient(client)

	assert.Equal(t, 0, m.RoomSize(PersonalRoom("user-1")))
	assert.Equal(t, 0, m.RoomSize(ConversationRoom("conv-1")))

	select {
	case <-client.done:
	default:
		t.Fatal("expected the client to be shut down")
	}
}

func TestDisconnectLeavesSendChannelOpen(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)
	m.JoinRoom(client, PersonalRoom("user-1"))

	m.removeClient(client)

	// An emitter that snapshotted the room before the disconnect may still
	// deliver; the late send must land in the buffer, never panic.
	require.NotPanics(t, func() {
		client.Send <- []byte(`{"event":"message_received"}`)
	})
}

func TestAttachRegistersBeforePumpsRun(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")

	m.Attach(client)
	m.HandleClientMessage(client, []byte(`{"event":"setup","data":{"user_id":"user-1"}}`))

	assert.Equal(t, 1, m.RoomSize(PersonalRoom("user-1")))
	event := receiveEvent(t, client)
	assert.Equal(t, EventConnected, event.Event)
}

func TestRemoveClientTwiceIsSafe(t *testing.T) {
	m := NewManager()
	client := newTestClient("user-1")
	m.addClient(client)

	m.removeClient(client)
	m.removeClient(client)
}

func TestRoomNamespacesDoNotCollide(t *testing.T) {
	m := NewManager()
	client := newTestClient("shared-id")
	m.addClient(client)

	m.JoinRoom(client, PersonalRoom("shared-id"))

	assert.Equal(t, 1, m.RoomSize(PersonalRoom("shared-id")))
	assert.Equal(t, 0, m.RoomSize(ConversationRoom("shared-id")))
}
