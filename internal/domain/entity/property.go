package entity

import (
	"time"
)

type PropertyImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Property struct {
	ID          string  `json:"id" firestore:"id"`
	OwnerID     string  `json:"owner_id" firestore:"ownerId"`
	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Type        string  `json:"type" firestore:"type"`               // "house", "apartment", "land", "commercial"
	ListingType string  `json:"listing_type" firestore:"listingType"` // "rent" or "sale"
	Price       float64 `json:"price" firestore:"price"`
	City        string  `json:"city" firestore:"city"`
	Address     string  `json:"address" firestore:"address"`
	Bedrooms    int     `json:"bedrooms" firestore:"bedrooms"`
	Bathrooms   int     `json:"bathrooms" firestore:"bathrooms"`
	AreaSqm     float64 `json:"area_sqm" firestore:"areaSqm"`

	Images []PropertyImage `json:"images" firestore:"images"`
	Status string          `json:"status" firestore:"status"`
	Views  int             `json:"views" firestore:"views"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
