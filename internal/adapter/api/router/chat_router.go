package router

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/adapter/api/handler"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, m Middlewares) {
	chat := e.Group("/api/chat")
	chat.Use(m.APILimit.Middleware())
	chat.Use(m.Auth.Authenticate)

	chat.POST("", chatHandler.StartConversation)
	chat.GET("", chatHandler.ListConversations)
	chat.GET("/:id/messages", chatHandler.ListMessages)
}
