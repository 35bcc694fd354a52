package repository

import (
	"context"

	"campusbazaar/internal/domain/entity"
)

// ConversationRepository owns the Conversations collection and the
// per-conversation message log.
type ConversationRepository interface {
	// Create inserts the conversation under its derived key and fails with a
	// CONFLICT error if a conversation for the same (product, pair) already
	// exists. Callers treat that conflict as "fetch the existing row".
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error)
	SetLastMessage(ctx context.Context, conversationID, messageID string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessageByID(ctx context.Context, conversationID, messageID string) (*entity.Message, error)
	ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error)
}
