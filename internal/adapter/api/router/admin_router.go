package router

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/adapter/api/handler"
)

func SetupAdminRouter(e *echo.Echo, adminHandler *handler.AdminHandler, m Middlewares) {
	admin := e.Group("/api/admin")
	admin.Use(m.APILimit.Middleware())
	admin.Use(m.Auth.Authenticate)
	admin.Use(m.Admin.AdminOnly)

	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/products", adminHandler.ListProducts)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	admin.PUT("/products/:id/featured", adminHandler.SetFeatured)
}
