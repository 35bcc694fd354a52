package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/domain/repository"
	"campusbazaar/pkg/errors"
	"campusbazaar/pkg/logger"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = r.client.Collection("products").NewDoc().ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = entity.ProductStatusAvailable
	}
	if product.InterestedBuyers == nil {
		product.InterestedBuyers = []string{}
	}

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection("products").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

// List pushes equality filters and sort order into the Firestore query; the
// free-text search and price range run in memory to avoid composite-index
// requirements on every filter combination. Listing volume is campus scale.
func (r *firestoreProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := r.client.Collection("products").Query

	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	listingStatus := filter.Status
	if listingStatus == "" {
		listingStatus = entity.ProductStatusAvailable
	}
	query = query.Where("status", "==", listingStatus)

	switch filter.SortBy {
	case "price-asc":
		query = query.OrderBy("price", firestore.Asc)
	case "price-desc":
		query = query.OrderBy("price", firestore.Desc)
	case "date-asc":
		query = query.OrderBy("createdAt", firestore.Asc)
	default:
		query = query.OrderBy("createdAt", firestore.Desc)
	}

	iter := query.Documents(ctx)
	var products []*entity.Product

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing products: %v", err)
			return nil, errors.Internal("Failed to list products", err)
		}

		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			logger.Warn("Skipping malformed product document %s: %v", doc.Ref.ID, err)
			continue
		}

		if !matchesFilter(&product, filter) {
			continue
		}
		products = append(products, &product)
	}

	return products, nil
}

func matchesFilter(product *entity.Product, filter repository.ProductFilter) bool {
	if filter.MinPrice > 0 && product.Price < filter.MinPrice {
		return false
	}
	if filter.MaxPrice > 0 && product.Price > filter.MaxPrice {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(product.Title), needle) &&
			!strings.Contains(strings.ToLower(product.Description), needle) {
			return false
		}
	}
	return true
}

func (r *firestoreProductRepository) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	query := r.client.Collection("products").
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query)
}

func (r *firestoreProductRepository) ListByInterestedBuyer(ctx context.Context, userID string) ([]*entity.Product, error) {
	query := r.client.Collection("products").
		Where("interestedBuyers", "array-contains", userID).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query)
}

func (r *firestoreProductRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Product, error) {
	iter := query.Documents(ctx)
	var products []*entity.Product

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate products", err)
		}

		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("products").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) DeleteBySellerID(ctx context.Context, sellerID string) error {
	docs, err := r.client.Collection("products").Where("sellerId", "==", sellerID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query seller products", err)
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete seller product", err)
		}
	}

	return nil
}
