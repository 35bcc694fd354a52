package entity

import "time"

const (
	NotificationTypeInterest = "interest"
	NotificationTypeSystem   = "system"
)

type Notification struct {
	ID          string    `json:"id" firestore:"id"`
	RecipientID string    `json:"recipient_id" firestore:"recipientId"`
	SenderID    string    `json:"sender_id,omitempty" firestore:"senderId,omitempty"`
	ProductID   string    `json:"product_id,omitempty" firestore:"productId,omitempty"`
	Type        string    `json:"type" firestore:"type"`
	Message     string    `json:"message" firestore:"message"`
	IsRead      bool      `json:"is_read" firestore:"isRead"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
