package handler

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/domain/repository"
	"campusbazaar/internal/usecase"
	"campusbazaar/pkg/response"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type setFeaturedRequest struct {
	Featured *bool `json:"featured" validate:"required"`
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUseCase.ListUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, users)
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	filter := repository.ProductFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		SortBy:   c.QueryParam("sort"),
	}

	products, err := h.adminUseCase.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.adminUseCase.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "User deleted"})
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.adminUseCase.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Product deleted"})
}

func (h *AdminHandler) SetFeatured(c echo.Context) error {
	var req setFeaturedRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.adminUseCase.SetFeatured(c.Request().Context(), c.Param("id"), *req.Featured)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}
