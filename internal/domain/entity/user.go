package entity

import "time"

// Grower levels, derived purely from accumulated points. Boundaries are
// inclusive on the lower bound: 51 points is already a Sprout.
const (
	LevelSeed         = "Seed"
	LevelSprout       = "Sprout"
	LevelGardener     = "Gardener"
	LevelHarvester    = "Harvester"
	LevelMasterGrower = "Master Grower"
)

// Reputation is the aggregate recomputed by the reputation engine from all
// reviews on completed exchanges.
type Reputation struct {
	AverageRating float64 `json:"average_rating" firestore:"averageRating"`
	TotalReviews  int     `json:"total_reviews" firestore:"totalReviews"`
}

type User struct {
	ID        string     `json:"id" firestore:"id"`
	Email     string     `json:"email" firestore:"email"`
	Username  string     `json:"username" firestore:"username"`
	AvatarURL string     `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Bio       string     `json:"bio,omitempty" firestore:"bio,omitempty"`
	Location  string     `json:"location,omitempty" firestore:"location,omitempty"`

	Reputation  *Reputation `json:"reputation,omitempty" firestore:"reputation,omitempty"`
	Points      int         `json:"points" firestore:"points"`
	Level       string      `json:"level,omitempty" firestore:"level,omitempty"`
	LastUpdated time.Time   `json:"last_updated,omitempty" firestore:"lastUpdated,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ReputationPatch is the typed partial update the aggregator writes onto a
// user document; only the listed fields are merged.
type ReputationPatch struct {
	Reputation  Reputation `firestore:"reputation"`
	Points      int        `firestore:"points"`
	Level       string     `firestore:"level"`
	LastUpdated time.Time  `firestore:"lastUpdated"`
}
