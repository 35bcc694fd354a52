package router

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/adapter/api/handler"
)

func SetupNotificationRouter(e *echo.Echo, interestHandler *handler.InterestHandler, m Middlewares) {
	notifications := e.Group("/api/notifications")
	notifications.Use(m.APILimit.Middleware())
	notifications.Use(m.Auth.Authenticate)

	notifications.GET("", interestHandler.ListNotifications)
	notifications.PUT("/:id/read", interestHandler.MarkNotificationRead)
}
