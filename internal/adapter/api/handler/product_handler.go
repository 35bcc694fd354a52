package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/domain/repository"
	"campusbazaar/internal/usecase"
	"campusbazaar/pkg/errors"
	"campusbazaar/pkg/response"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

func (h *ProductHandler) Create(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req usecase.CreateProductInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.Create(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) List(c echo.Context) error {
	filter := repository.ProductFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		SortBy:   c.QueryParam("sort"),
	}

	if minPrice := c.QueryParam("min_price"); minPrice != "" {
		if parsed, err := strconv.ParseFloat(minPrice, 64); err == nil && parsed >= 0 {
			filter.MinPrice = parsed
		}
	}
	if maxPrice := c.QueryParam("max_price"); maxPrice != "" {
		if parsed, err := strconv.ParseFloat(maxPrice, 64); err == nil && parsed > 0 {
			filter.MaxPrice = parsed
		}
	}

	products, err := h.productUseCase.List(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *ProductHandler) GetByID(c echo.Context) error {
	product, err := h.productUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) MyListings(c echo.Context) error {
	userID := c.Get("uid").(string)

	products, err := h.productUseCase.ListBySeller(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *ProductHandler) Update(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req usecase.UpdateProductInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.Update(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.productUseCase.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Product deleted"})
}

// UploadImages accepts up to five multipart images and returns their stored
// references for the subsequent create or update call.
func (h *ProductHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Multipart form with images is required", err))
	}

	files := form.File["images"]
	if len(files) == 0 {
		return response.Error(c, errors.BadRequest("At least one image is required", nil))
	}
	if len(files) > 5 {
		return response.Error(c, errors.BadRequest("At most 5 images per request", nil))
	}

	images := make([]*entity.ProductImage, 0, len(files))
	for _, fileHeader := range files {
		if fileHeader.Size > 5<<20 {
			return response.Error(c, errors.BadRequest("Each image must be smaller than 5 MB", nil))
		}

		file, err := fileHeader.Open()
		if err != nil {
			return response.Error(c, errors.Internal("Failed to read uploaded file", err))
		}

		image, err := h.productUseCase.UploadImage(c.Request().Context(), file, fileHeader.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			return response.Error(c, err)
		}
		images = append(images, image)
	}

	return response.Created(c, images)
}
