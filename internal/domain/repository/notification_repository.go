package repository

import (
	"context"

	"campusbazaar/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]*entity.Notification, error)
	Update(ctx context.Context, notification *entity.Notification) error
}
