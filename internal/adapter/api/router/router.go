package router

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/adapter/api/handler"
	"campusbazaar/internal/adapter/api/middleware"
)

// Handlers bundles every HTTP handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Interest  *handler.InterestHandler
	Chat      *handler.ChatHandler
	Admin     *handler.AdminHandler
	WebSocket *handler.WebSocketHandler
	Health    *handler.HealthHandler
}

// Middlewares bundles the route-level middleware.
type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	Admin     *middleware.AdminMiddleware
	APILimit  *middleware.IPRateLimiter
	AuthLimit *middleware.IPRateLimiter
}

func Setup(e *echo.Echo, h Handlers, m Middlewares) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, m)
	SetupProductRouter(e, h.Product, h.Interest, m)
	SetupChatRouter(e, h.Chat, m)
	SetupNotificationRouter(e, h.Interest, m)
	SetupAdminRouter(e, h.Admin, m)
	SetupWebSocketRouter(e, h.WebSocket)
}
