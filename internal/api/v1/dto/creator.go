package dto

import (
	"time"

	"backr/internal/model"
)

// CreatorSaveDTO is used for incoming profile saves.
type CreatorSaveDTO struct {
	Name            string `json:"name" validate:"required"`
	Bio             string `json:"bio,omitempty"`
	Username        string `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=32"`
	AvatarURL       string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	CoverURL        string `json:"cover_url,omitempty" validate:"omitempty,url"`
	ContractAddress string `json:"contract_address,omitempty"`
}

// CreatorResponseDTO is returned in API responses for creator profiles.
type CreatorResponseDTO struct {
	Address         string    `json:"address"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	Username        string    `json:"username,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	CoverURL        string    `json:"cover_url,omitempty"`
	ContractAddress string    `json:"contract_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewCreatorResponse maps a model row to its response shape.
func NewCreatorResponse(c *model.Creator) CreatorResponseDTO {
	return CreatorResponseDTO{
		Address:         c.Address,
		Name:            c.Name,
		Bio:             c.Bio,
		Username:        c.Username,
		AvatarURL:       c.AvatarURL,
		CoverURL:        c.CoverURL,
		ContractAddress: c.ContractAddress,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
