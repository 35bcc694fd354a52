package router

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler) {
	e.GET("/api/health", healthHandler.Health)
}
