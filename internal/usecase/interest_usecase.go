package usecase

import (
	"context"
	"fmt"
	"time"

	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/domain/repository"
	"campusbazaar/internal/infrastructure/ratelimit"
	"campusbazaar/pkg/errors"
	"campusbazaar/pkg/logger"
)

// InterestUseCase tracks which buyers have raised a hand on a listing and
// notifies the seller when it happens.
type InterestUseCase struct {
	productRepo      repository.ProductRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	pusher           RealtimePusher
	rateLimiter      *ratelimit.RateLimiter
}

func NewInterestUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	pusher RealtimePusher,
) *InterestUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &InterestUseCase{
		productRepo:      productRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		pusher:           pusher,
		rateLimiter:      rateLimiter,
	}
}

// Express marks the caller as interested in a product. Sellers cannot be
// interested in their own listings, and repeating the call is a no-op.
func (uc *InterestUseCase) Express(ctx context.Context, userID, productID string) (*entity.Product, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "express_interest")
	if !allowed {
		logger.Warn("interest: rate limited for user %s, wait %v", userID, waitTime)
		return nil, errors.TooManyRequests("Too many interest updates. Please slow down")
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == userID {
		return nil, errors.BadRequest("You cannot express interest in your own listing", nil)
	}
	if product.Status != entity.ProductStatusAvailable {
		return nil, errors.BadRequest("This listing is no longer available", nil)
	}
	if product.HasInterestedBuyer(userID) {
		return product, nil
	}

	product.InterestedBuyers = append(product.InterestedBuyers, userID)
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	uc.notifySeller(ctx, userID, product)
	return product, nil
}

// Withdraw removes the caller from a product's interested buyers.
func (uc *InterestUseCase) Withdraw(ctx context.Context, userID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.HasInterestedBuyer(userID) {
		return product, nil
	}

	buyers := product.InterestedBuyers[:0]
	for _, id := range product.InterestedBuyers {
		if id != userID {
			buyers = append(buyers, id)
		}
	}
	product.InterestedBuyers = buyers
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// SellerContact reveals the seller's contact details for a listing. Only
// the seller and buyers who have expressed interest may see them.
func (uc *InterestUseCase) SellerContact(ctx context.Context, userID, productID string) (*entity.User, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if userID != product.SellerID && !product.HasInterestedBuyer(userID) {
		return nil, errors.Forbidden("Express interest to see the seller's contact details", nil)
	}

	return uc.userRepo.GetByID(ctx, product.SellerID)
}

// ListInterested returns the listings the caller has expressed interest in.
func (uc *InterestUseCase) ListInterested(ctx context.Context, userID string) ([]*entity.Product, error) {
	return uc.productRepo.ListByInterestedBuyer(ctx, userID)
}

// ListNotifications returns the caller's notifications, newest first.
func (uc *InterestUseCase) ListNotifications(ctx context.Context, userID string) ([]*entity.Notification, error) {
	return uc.notificationRepo.ListByRecipient(ctx, userID)
}

// MarkNotificationRead flips one notification to read. Only the recipient
// may do so.
func (uc *InterestUseCase) MarkNotificationRead(ctx context.Context, userID, notificationID string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.RecipientID != userID {
		return nil, errors.Forbidden("You cannot modify this notification", nil)
	}
	if notification.IsRead {
		return notification, nil
	}

	notification.IsRead = true
	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (uc *InterestUseCase) notifySeller(ctx context.Context, buyerID string, product *entity.Product) {
	buyerName := "Someone"
	if buyer, err := uc.userRepo.GetByID(ctx, buyerID); err == nil {
		buyerName = buyer.Name
	}

	notification := &entity.Notification{
		RecipientID: product.SellerID,
		SenderID:    buyerID,
		ProductID:   product.ID,
		Type:        entity.NotificationTypeInterest,
		Message:     fmt.Sprintf("%s is interested in %q", buyerName, product.Title),
		CreatedAt:   time.Now(),
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Warn("interest: failed to store notification for seller %s: %v", product.SellerID, err)
		return
	}

	uc.pusher.EmitToUser(product.SellerID, "notification", notification)
}
