package router

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/adapter/api/handler"
)

func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler, interestHandler *handler.InterestHandler, m Middlewares) {
	products := e.Group("/api/products")
	products.Use(m.APILimit.Middleware())

	// Browsing is public; everything that writes requires a session.
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.GetByID)

	protected := e.Group("/api/products")
	protected.Use(m.APILimit.Middleware())
	protected.Use(m.Auth.Authenticate)

	protected.POST("", productHandler.Create)
	protected.GET("/mine", productHandler.MyListings)
	protected.PUT("/:id", productHandler.Update)
	protected.DELETE("/:id", productHandler.Delete)
	protected.POST("/images", productHandler.UploadImages)

	protected.POST("/:id/interest", interestHandler.Express)
	protected.DELETE("/:id/interest", interestHandler.Withdraw)
	protected.GET("/:id/contact", interestHandler.SellerContact)
	protected.GET("/interested", interestHandler.ListInterested)
}
