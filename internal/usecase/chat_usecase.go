package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/domain/repository"
	"campusbazaar/internal/infrastructure/ratelimit"
	ws "campusbazaar/internal/infrastructure/websocket"
	"campusbazaar/pkg/errors"
	"campusbazaar/pkg/logger"
)

const maxMessageRunes = 1000

// ChatUseCase implements the conversation service and the relay between the
// socket layer and durable storage.
type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	pusher           RealtimePusher
	rateLimiter      *ratelimit.RateLimiter
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	pusher RealtimePusher,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		productRepo:      productRepo,
		pusher:           pusher,
		rateLimiter:      rateLimiter,
	}
}

type StartConversationInput struct {
	ProductID string
}

type ConversationResponse struct {
	*entity.Conversation
	Product     *entity.Product `json:"product,omitempty"`
	OtherUser   *entity.User    `json:"other_user,omitempty"`
	LastMessage *entity.Message `json:"last_message,omitempty"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.User `json:"sender,omitempty"`
}

// StartConversation finds or creates the thread between the caller and the
// product's seller. The returned flag reports whether a new thread was
// created. Two racing callers converge on the same thread because the
// conversation id is derived from the (product, pair) triple and the store
// rejects a duplicate insert.
func (uc *ChatUseCase) StartConversation(ctx context.Context, userID string, input StartConversationInput) (*ConversationResponse, bool, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "start_conversation")
	if !allowed {
		logger.Warn("chat: start_conversation rate limited for user %s, wait %v", userID, waitTime)
		return nil, false, errors.TooManyRequests("Too many new conversations. Please wait before starting another")
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, false, err
	}

	// The counterpart is always the seller; every thread is anchored to a
	// listing and its owner.
	if userID == product.SellerID {
		return nil, false, errors.BadRequest("You cannot start a conversation about your own listing", nil)
	}

	recipient, err := uc.userRepo.GetByID(ctx, product.SellerID)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	conversation := &entity.Conversation{
		ID:           entity.ConversationKey(product.ID, userID, product.SellerID),
		Participants: []string{userID, product.SellerID},
		ProductID:    product.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created := true
	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		if !errors.Is(err, "CONFLICT") {
			return nil, false, err
		}
		// Lost the race or the thread already existed; either way the
		// stored row is the canonical one.
		conversation, err = uc.conversationRepo.GetByID(ctx, conversation.ID)
		if err != nil {
			return nil, false, err
		}
		created = false
	}

	return &ConversationResponse{
		Conversation: conversation,
		Product:      product,
		OtherUser:    recipient,
	}, created, nil
}

// ListConversations returns the caller's threads, most recently active
// first, each expanded with its product and counterpart for rendering.
func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*ConversationResponse, error) {
	conversations, err := uc.conversationRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		response := &ConversationResponse{Conversation: conversation}

		if product, err := uc.productRepo.GetByID(ctx, conversation.ProductID); err == nil {
			response.Product = product
		} else {
			logger.Debug("chat: product %s missing for conversation %s", conversation.ProductID, conversation.ID)
		}

		for _, participantID := range conversation.Participants {
			if participantID == userID {
				continue
			}
			if other, err := uc.userRepo.GetByID(ctx, participantID); err == nil {
				response.OtherUser = other
			}
		}

		if conversation.LastMessageID != "" {
			if last, err := uc.conversationRepo.GetMessageByID(ctx, conversation.ID, conversation.LastMessageID); err == nil {
				response.LastMessage = last
			}
		}

		responses = append(responses, response)
	}

	return responses, nil
}

// ListMessages returns a conversation's history in chronological order.
// Only participants may read it.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, conversationID string) ([]*entity.Message, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID)
}

// RelayMessage persists an inbound socket message and fans it out to the
// other participant's live connections. The sender id is the authenticated
// identity of the connection, never client input.
func (uc *ChatUseCase) RelayMessage(ctx context.Context, senderID, conversationID, content string) error {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		logger.Warn("chat: send_message rate limited for user %s, wait %v", senderID, waitTime)
		return errors.TooManyRequests("You are sending messages too quickly")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return errors.BadRequest("Message content cannot be empty", nil)
	}
	if utf8.RuneCountInString(content) > maxMessageRunes {
		return errors.BadRequest("Message content is too long", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conversation.HasParticipant(senderID) {
		return errors.Forbidden("You are not a participant in this conversation", nil)
	}

	message := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}

	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return err
	}

	// Last-write-wins; a concurrent sender may overwrite the pointer but
	// the message log itself is never lost.
	if err := uc.conversationRepo.SetLastMessage(ctx, conversationID, message.ID); err != nil {
		logger.Warn("chat: failed to update last message for conversation %s: %v", conversationID, err)
	}

	payload := &MessageResponse{Message: message}
	if sender, err := uc.userRepo.GetByID(ctx, senderID); err == nil {
		payload.Sender = sender
	} else {
		logger.Debug("chat: sender %s profile missing, pushing bare message", senderID)
	}

	for _, participantID := range conversation.Participants {
		if participantID == senderID {
			continue
		}
		uc.pusher.EmitToUser(participantID, ws.EventMessageReceived, payload)
	}

	return nil
}
