package handler

import (
	"github.com/labstack/echo/v4"

	"campusbazaar/internal/usecase"
	"campusbazaar/pkg/response"
)

type InterestHandler struct {
	interestUseCase *usecase.InterestUseCase
}

func NewInterestHandler(interestUseCase *usecase.InterestUseCase) *InterestHandler {
	return &InterestHandler{
		interestUseCase: interestUseCase,
	}
}

func (h *InterestHandler) Express(c echo.Context) error {
	userID := c.Get("uid").(string)

	product, err := h.interestUseCase.Express(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *InterestHandler) Withdraw(c echo.Context) error {
	userID := c.Get("uid").(string)

	product, err := h.interestUseCase.Withdraw(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *InterestHandler) SellerContact(c echo.Context) error {
	userID := c.Get("uid").(string)

	seller, err := h.interestUseCase.SellerContact(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, seller)
}

func (h *InterestHandler) ListInterested(c echo.Context) error {
	userID := c.Get("uid").(string)

	products, err := h.interestUseCase.ListInterested(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *InterestHandler) ListNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)

	notifications, err := h.interestUseCase.ListNotifications(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notifications)
}

func (h *InterestHandler) MarkNotificationRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	notification, err := h.interestUseCase.MarkNotificationRead(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notification)
}
