package entity

import (
	"fmt"
	"sort"
	"time"
)

// Conversation is a single buyer-seller thread anchored to one product.
// Participants always holds exactly two distinct user ids.
type Conversation struct {
	ID            string    `json:"id" firestore:"id"`
	Participants  []string  `json:"participants" firestore:"participants"`
	ProductID     string    `json:"product_id" firestore:"productId"`
	LastMessageID string    `json:"last_message_id,omitempty" firestore:"lastMessageId,omitempty"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ConversationKey derives the document id for a (product, participant pair)
// triple. The pair is sorted so both orderings map to the same key, which is
// what makes find-or-create idempotent at the store level.
func ConversationKey(productID, userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return fmt.Sprintf("%s_%s_%s", productID, pair[0], pair[1])
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
