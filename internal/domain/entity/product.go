package entity

import "time"

const (
	ProductStatusAvailable = "available"
	ProductStatusSold      = "sold"
)

var ProductCategories = []string{"Electronics", "Books", "Furniture", "Vehicles", "Other"}

var ProductConditions = []string{"New", "Used - Like New", "Used - Good", "Used - Fair"}

type ProductImage struct {
	PublicID string `json:"public_id" firestore:"publicId"`
	URL      string `json:"url" firestore:"url"`
}

type Product struct {
	ID               string         `json:"id" firestore:"id"`
	SellerID         string         `json:"seller_id" firestore:"sellerId"`
	Title            string         `json:"title" firestore:"title"`
	Description      string         `json:"description" firestore:"description"`
	Price            float64        `json:"price" firestore:"price"`
	Category         string         `json:"category" firestore:"category"`
	Condition        string         `json:"condition" firestore:"condition"`
	Images           []ProductImage `json:"images" firestore:"images"`
	Status           string         `json:"status" firestore:"status"`
	IsFeatured       bool           `json:"is_featured" firestore:"isFeatured"`
	InterestedBuyers []string       `json:"interested_buyers,omitempty" firestore:"interestedBuyers"`
	CreatedAt        time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time      `json:"updated_at" firestore:"updatedAt"`
}

func (p *Product) HasInterestedBuyer(userID string) bool {
	for _, id := range p.InterestedBuyers {
		if id == userID {
			return true
		}
	}
	return false
}
