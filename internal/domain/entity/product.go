package entity

import "time"

// Product is a listing of home-grown produce. Listing CRUD and search live
// outside this service; exchanges only snapshot the name and reference the
// owner, and the deletion cascade removes the images.
type Product struct {
	ID          string    `json:"id" firestore:"id"`
	OwnerID     string    `json:"owner_id" firestore:"ownerId"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Category    string    `json:"category,omitempty" firestore:"category,omitempty"`
	ImageURLs   []string  `json:"image_urls,omitempty" firestore:"imageUrls,omitempty"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
