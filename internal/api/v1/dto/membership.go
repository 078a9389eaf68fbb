package dto

import (
	"time"

	"backr/internal/model"
)

// SubscribeDTO is used for incoming subscription submissions.
type SubscribeDTO struct {
	SubscriberAddress string `json:"subscriber_address" validate:"required"`
	CreatorAddress    string `json:"creator_address" validate:"required"`
	TierID            string `json:"tier_id" validate:"required"`
	TxHash            string `json:"tx_hash,omitempty"`
}

// MembershipResponseDTO is returned in API responses for memberships.
type MembershipResponseDTO struct {
	ID             string    `json:"id"`
	UserAddress    string    `json:"user_address"`
	CreatorAddress string    `json:"creator_address"`
	TierID         string    `json:"tier_id"`
	TierName       string    `json:"tier_name,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	Active         bool      `json:"active"`
	TxHash         string    `json:"tx_hash,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMembershipResponse maps a model row to its response shape. Active is
// derived at mapping time, never stored.
func NewMembershipResponse(m *model.Membership, now time.Time) MembershipResponseDTO {
	return MembershipResponseDTO{
		ID:             m.ID,
		UserAddress:    m.UserAddress,
		CreatorAddress: m.CreatorAddress,
		TierID:         m.TierID,
		TierName:       m.TierName,
		ExpiresAt:      m.ExpiresAt,
		Active:         m.Active(now),
		TxHash:         m.TxHash,
		CreatedAt:      m.CreatedAt,
	}
}

// NewMembershipListResponse maps a membership list.
func NewMembershipListResponse(ms []model.Membership, now time.Time) []MembershipResponseDTO {
	out := make([]MembershipResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, NewMembershipResponse(&ms[i], now))
	}
	return out
}
