package handler

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/usecase"
	"campusbazaar/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startConversationRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// StartConversation finds or creates the thread between the caller and the
// product's seller. A fresh thread answers 201, an existing one 200.
func (h *ChatHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, created, err := h.chatUseCase.StartConversation(c.Request().Context(), userID, usecase.StartConversationInput{
		ProductID: req.ProductID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	if created {
		return response.Created(c, conversation)
	}
	return response.Success(c, conversation)
}

// ListConversations returns the caller's threads, most recent first.
func (h *ChatHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

// ListMessages returns a thread's full history in send order.
func (h *ChatHandler) ListMessages(c echo.Context) error {
	userID := c.Get("uid").(string)

	messages, err := h.chatUseCase.ListMessages(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}
