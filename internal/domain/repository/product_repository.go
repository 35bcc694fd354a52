package repository

import (
	"context"

	"campusbazaar/internal/domain/entity"
)

// ProductFilter narrows List results. Zero values mean "no constraint".
type ProductFilter struct {
	Search   string
	Category string
	Status   string
	MinPrice float64
	MaxPrice float64
	SortBy   string // "date-desc" (default), "date-asc", "price-asc", "price-desc"
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Product, error)
	ListByInterestedBuyer(ctx context.Context, userID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	DeleteBySellerID(ctx context.Context, sellerID string) error
}
