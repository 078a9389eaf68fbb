package model

import "time"

// Tier is a priced membership level scoped to one creator. Its id is stable
// for the lifetime of the tier; price and perks may change without touching
// memberships already issued against it.
type Tier struct {
	ID             string    `json:"id"`
	CreatorAddress string    `json:"creator_address"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Perks          []string  `json:"perks"`
	ImageURL       string    `json:"image_url,omitempty"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"created_at"`
}
