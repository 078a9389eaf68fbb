package dto

import (
	"time"

	"backr/internal/model"
)

// TierCreateDTO is used for incoming tier creation and update requests.
type TierCreateDTO struct {
	Name     string   `json:"name" validate:"required"`
	Price    float64  `json:"price" validate:"required,gt=0"`
	Perks    []string `json:"perks,omitempty"`
	ImageURL string   `json:"image_url,omitempty" validate:"omitempty,url"`
}

// TierReorderDTO lists every tier id in its new display order.
type TierReorderDTO struct {
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1"`
}

// TierResponseDTO is returned in API responses for tiers.
type TierResponseDTO struct {
	ID             string    `json:"id"`
	CreatorAddress string    `json:"creator_address"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Perks          []string  `json:"perks"`
	ImageURL       string    `json:"image_url,omitempty"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewTierResponse maps a model row to its response shape.
func NewTierResponse(t *model.Tier) TierResponseDTO {
	perks := t.Perks
	if perks == nil {
		perks = []string{}
	}
	return TierResponseDTO{
		ID:             t.ID,
		CreatorAddress: t.CreatorAddress,
		Name:           t.Name,
		Price:          t.Price,
		Perks:          perks,
		ImageURL:       t.ImageURL,
		Position:       t.Position,
		CreatedAt:      t.CreatedAt,
	}
}

// NewTierListResponse maps a tier list.
func NewTierListResponse(tiers []model.Tier) []TierResponseDTO {
	out := make([]TierResponseDTO, 0, len(tiers))
	for i := range tiers {
		out = append(out, NewTierResponse(&tiers[i]))
	}
	return out
}
