package router

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/adapter/api/handler"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, m Middlewares) {
	public := e.Group("/api/auth")
	public.Use(m.AuthLimit.Middleware())

	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.RefreshToken)

	protected := e.Group("/api/auth")
	protected.Use(m.Auth.Authenticate)

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
}
