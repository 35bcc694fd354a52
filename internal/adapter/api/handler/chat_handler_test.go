package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campusbazaar/internal/adapter/api"
	"campusbazaar/internal/adapter/api/handler"
	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/domain/repository"
	"campusbazaar/internal/usecase"
	"campusbazaar/pkg/errors"
)

type stubConversationRepo struct {
	mock.Mock
}

func (s *stubConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	args := s.Called(ctx, conversation)
	return args.Error(0)
}

func (s *stubConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	args := s.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (s *stubConversationRepo) ListByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	args := s.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Conversation), args.Error(1)
}

func (s *stubConversationRepo) SetLastMessage(ctx context.Context, conversationID, messageID string) error {
	args := s.Called(ctx, conversationID, messageID)
	return args.Error(0)
}

func (s *stubConversationRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	args := s.Called(ctx, message)
	return args.Error(0)
}

func (s *stubConversationRepo) GetMessageByID(ctx context.Context, conversationID, messageID string) (*entity.Message, error) {
	args := s.Called(ctx, conversationID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (s *stubConversationRepo) ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	args := s.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

type stubUserRepo struct {
	mock.Mock
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := s.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User", nil)
}

func (s *stubUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id string) error         { return nil }
func (s *stubUserRepo) List(ctx context.Context) ([]*entity.User, error)    { return nil, nil }

type stubProductRepo struct {
	mock.Mock
}

func (s *stubProductRepo) Create(ctx context.Context, product *entity.Product) error { return nil }

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := s.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (s *stubProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) ListByInterestedBuyer(ctx context.Context, userID string) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *entity.Product) error { return nil }
func (s *stubProductRepo) Delete(ctx context.Context, id string) error               { return nil }
func (s *stubProductRepo) DeleteBySellerID(ctx context.Context, sellerID string) error {
	return nil
}

type noopPusher struct{}

func (noopPusher) EmitToUser(userID string, event string, data interface{}) {}

func newEchoContext(t *testing.T, method, target, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = api.NewValidator()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", uid)
	return c, rec
}

func TestStartConversationEndpoint(t *testing.T) {
	product := &entity.Product{ID: "prod-1", SellerID: "seller-1"}
	seller := &entity.User{ID: "seller-1", Name: "Asha"}

	t.Run("NewThreadAnswers201", func(t *testing.T) {
		conversationRepo := new(stubConversationRepo)
		userRepo := new(stubUserRepo)
		productRepo := new(stubProductRepo)

		productRepo.On("GetByID", mock.Anything, "prod-1").Return(product, nil)
		userRepo.On("GetByID", mock.Anything, "seller-1").Return(seller, nil)
		conversationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewChatUseCase(conversationRepo, userRepo, productRepo, noopPusher{})
		h := handler.NewChatHandler(uc)

		c, rec := newEchoContext(t, http.MethodPost, "/api/chat", `{"product_id":"prod-1"}`, "buyer-1")
		require.NoError(t, h.StartConversation(c))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
	})

	t.Run("ExistingThreadAnswers200", func(t *testing.T) {
		conversationRepo := new(stubConversationRepo)
		userRepo := new(stubUserRepo)
		productRepo := new(stubProductRepo)

		existing := &entity.Conversation{
			ID:           entity.ConversationKey("prod-1", "buyer-1", "seller-1"),
			Participants: []string{"buyer-1", "seller-1"},
			ProductID:    "prod-1",
		}

		productRepo.On("GetByID", mock.Anything, "prod-1").Return(product, nil)
		userRepo.On("GetByID", mock.Anything, "seller-1").Return(seller, nil)
		conversationRepo.On("Create", mock.Anything, mock.Anything).Return(errors.Conflict("Conversation already exists", nil))
		conversationRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

		uc := usecase.NewChatUseCase(conversationRepo, userRepo, productRepo, noopPusher{})
		h := handler.NewChatHandler(uc)

		c, rec := newEchoContext(t, http.MethodPost, "/api/chat", `{"product_id":"prod-1"}`, "buyer-1")
		require.NoError(t, h.StartConversation(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("SellerGets400OnOwnListingEvenWithRecipientHint", func(t *testing.T) {
		conversationRepo := new(stubConversationRepo)
		productRepo := new(stubProductRepo)

		productRepo.On("GetByID", mock.Anything, "prod-1").Return(product, nil)

		uc := usecase.NewChatUseCase(conversationRepo, new(stubUserRepo), productRepo, noopPusher{})
		h := handler.NewChatHandler(uc)

		// Unknown fields like recipient_id are ignored; the counterpart is
		// always the listing's seller.
		c, rec := newEchoContext(t, http.MethodPost, "/api/chat", `{"product_id":"prod-1","recipient_id":"buyer-1"}`, "seller-1")
		require.NoError(t, h.StartConversation(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		conversationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingProductIDFailsValidation", func(t *testing.T) {
		uc := usecase.NewChatUseCase(new(stubConversationRepo), new(stubUserRepo), new(stubProductRepo), noopPusher{})
		h := handler.NewChatHandler(uc)

		c, rec := newEchoContext(t, http.MethodPost, "/api/chat", `{}`, "buyer-1")
		require.NoError(t, h.StartConversation(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListMessagesEndpoint(t *testing.T) {
	t.Run("NonParticipantGets403", func(t *testing.T) {
		conversationRepo := new(stubConversationRepo)
		conversation := &entity.Conversation{ID: "conv-1", Participants: []string{"a", "b"}}
		conversationRepo.On("GetByID", mock.Anything, "conv-1").Return(conversation, nil)

		uc := usecase.NewChatUseCase(conversationRepo, new(stubUserRepo), new(stubProductRepo), noopPusher{})
		h := handler.NewChatHandler(uc)

		c, rec := newEchoContext(t, http.MethodGet, "/api/chat/conv-1/messages", "", "stranger")
		c.SetParamNames("id")
		c.SetParamValues("conv-1")
		require.NoError(t, h.ListMessages(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("MissingConversationGets404", func(t *testing.T) {
		conversationRepo := new(stubConversationRepo)
		conversationRepo.On("GetByID", mock.Anything, "ghost").Return(nil, errors.NotFound("Conversation", nil))

		uc := usecase.NewChatUseCase(conversationRepo, new(stubUserRepo), new(stubProductRepo), noopPusher{})
		h := handler.NewChatHandler(uc)

		c, rec := newEchoContext(t, http.MethodGet, "/api/chat/ghost/messages", "", "buyer-1")
		c.SetParamNames("id")
		c.SetParamValues("ghost")
		require.NoError(t, h.ListMessages(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
