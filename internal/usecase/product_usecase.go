package usecase

import (
	"context"
	"io"
	"time"

	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/domain/repository"
	"campusbazaar/pkg/errors"
	"campusbazaar/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	imageStore  ImageStore
}

func NewProductUseCase(productRepo repository.ProductRepository, imageStore ImageStore) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		imageStore:  imageStore,
	}
}

type CreateProductInput struct {
	Title       string                `json:"title" validate:"required,min=3,max=100"`
	Description string                `json:"description" validate:"required,min=10,max=2000"`
	Price       float64               `json:"price" validate:"required,gt=0"`
	Category    string                `json:"category" validate:"required"`
	Condition   string                `json:"condition" validate:"required"`
	Images      []entity.ProductImage `json:"images" validate:"required,min=1,max=5,dive"`
}

type UpdateProductInput struct {
	Title       string                `json:"title" validate:"omitempty,min=3,max=100"`
	Description string                `json:"description" validate:"omitempty,min=10,max=2000"`
	Price       float64               `json:"price" validate:"omitempty,gt=0"`
	Category    string                `json:"category" validate:"omitempty"`
	Condition   string                `json:"condition" validate:"omitempty"`
	Status      string                `json:"status" validate:"omitempty,oneof=available sold"`
	Images      []entity.ProductImage `json:"images" validate:"omitempty,max=5,dive"`
}

func (uc *ProductUseCase) Create(ctx context.Context, sellerID string, input CreateProductInput) (*entity.Product, error) {
	if !validCategory(input.Category) {
		return nil, errors.BadRequest("Unknown product category", nil)
	}
	if !validCondition(input.Condition) {
		return nil, errors.BadRequest("Unknown product condition", nil)
	}

	now := time.Now()
	product := &entity.Product{
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		Images:      input.Images,
		Status:      entity.ProductStatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, filter)
}

func (uc *ProductUseCase) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	return uc.productRepo.ListBySellerID(ctx, sellerID)
}

// Update applies a partial edit. Only the seller may edit a listing.
func (uc *ProductUseCase) Update(ctx context.Context, userID, productID string, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID != userID {
		return nil, errors.Forbidden("Only the seller can update this listing", nil)
	}

	if input.Category != "" && !validCategory(input.Category) {
		return nil, errors.BadRequest("Unknown product category", nil)
	}
	if input.Condition != "" && !validCondition(input.Condition) {
		return nil, errors.BadRequest("Unknown product condition", nil)
	}

	if input.Title != "" {
		product.Title = input.Title
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Condition != "" {
		product.Condition = input.Condition
	}
	if input.Status != "" {
		product.Status = input.Status
	}
	if len(input.Images) > 0 {
		uc.deleteRemovedImages(ctx, product.Images, input.Images)
		product.Images = input.Images
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a listing and its stored images. Only the seller may
// delete; admins go through the admin use case instead.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if product.SellerID != userID {
		return errors.Forbidden("Only the seller can delete this listing", nil)
	}

	if err := uc.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	uc.deleteImages(ctx, product.Images)
	return nil
}

// UploadImage stores one product image and returns its reference for the
// subsequent create or update call.
func (uc *ProductUseCase) UploadImage(ctx context.Context, file io.Reader, contentType string) (*entity.ProductImage, error) {
	objectName, publicURL, err := uc.imageStore.UploadImage(ctx, file, contentType, "products")
	if err != nil {
		return nil, errors.BadRequest("Failed to upload image", err)
	}

	return &entity.ProductImage{PublicID: objectName, URL: publicURL}, nil
}

func (uc *ProductUseCase) deleteRemovedImages(ctx context.Context, old, kept []entity.ProductImage) {
	retained := make(map[string]struct{}, len(kept))
	for _, image := range kept {
		retained[image.PublicID] = struct{}{}
	}
	var removed []entity.ProductImage
	for _, image := range old {
		if _, ok := retained[image.PublicID]; !ok {
			removed = append(removed, image)
		}
	}
	uc.deleteImages(ctx, removed)
}

func (uc *ProductUseCase) deleteImages(ctx context.Context, images []entity.ProductImage) {
	for _, image := range images {
		if err := uc.imageStore.DeleteImage(ctx, image.PublicID); err != nil {
			logger.Warn("product: failed to delete image %s: %v", image.PublicID, err)
		}
	}
}

func validCategory(category string) bool {
	for _, c := range entity.ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

func validCondition(condition string) bool {
	for _, c := range entity.ProductConditions {
		if c == condition {
			return true
		}
	}
	return false
}
