package usecase

import (
	"context"
	"time"

	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/domain/repository"
	"campusbazaar/pkg/errors"
	"campusbazaar/pkg/logger"
)

// AdminUseCase covers the moderation surface. Every method assumes the
// caller was already verified as an admin by the middleware.
type AdminUseCase struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	authClient  FirebaseAuthClient
	imageStore  ImageStore
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	authClient FirebaseAuthClient,
	imageStore ImageStore,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:    userRepo,
		productRepo: productRepo,
		authClient:  authClient,
		imageStore:  imageStore,
	}
}

func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

// ListProducts returns listings for moderation, including sold ones.
func (uc *AdminUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, filter)
}

// DeleteUser removes a user, all their listings and their auth account.
// Admin accounts cannot be deleted this way.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.IsAdmin() {
		return errors.Forbidden("Admin accounts cannot be deleted", nil)
	}

	products, err := uc.productRepo.ListBySellerID(ctx, userID)
	if err != nil {
		return err
	}
	for _, product := range products {
		for _, image := range product.Images {
			if err := uc.imageStore.DeleteImage(ctx, image.PublicID); err != nil {
				logger.Warn("admin: failed to delete image %s: %v", image.PublicID, err)
			}
		}
	}

	if err := uc.productRepo.DeleteBySellerID(ctx, userID); err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := uc.authClient.DeleteUser(ctx, userID); err != nil {
		logger.Error("admin: failed to delete auth account for %s: %v", userID, err)
	}

	return nil
}

// DeleteProduct removes any listing regardless of owner.
func (uc *AdminUseCase) DeleteProduct(ctx context.Context, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := uc.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	for _, image := range product.Images {
		if err := uc.imageStore.DeleteImage(ctx, image.PublicID); err != nil {
			logger.Warn("admin: failed to delete image %s: %v", image.PublicID, err)
		}
	}

	return nil
}

// SetFeatured toggles a listing's featured flag.
func (uc *AdminUseCase) SetFeatured(ctx context.Context, productID string, featured bool) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.IsFeatured = featured
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
