package dto

import (
	"time"

	"backr/internal/model"
)

// TipCreateDTO is used for incoming tip submissions.
type TipCreateDTO struct {
	Sender   string  `json:"sender" validate:"required"`
	Receiver string  `json:"receiver" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Currency string  `json:"currency,omitempty"`
	Message  string  `json:"message,omitempty" validate:"omitempty,max=500"`
	TxHash   string  `json:"tx_hash,omitempty"`
}

// TipResponseDTO is returned in API responses for tips.
type TipResponseDTO struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Message   string    `json:"message,omitempty"`
	TxHash    string    `json:"tx_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTipResponse maps a model row to its response shape.
func NewTipResponse(t *model.Tip) TipResponseDTO {
	return TipResponseDTO{
		ID:        t.ID,
		Sender:    t.Sender,
		Receiver:  t.Receiver,
		Amount:    t.Amount,
		Currency:  t.Currency,
		Message:   t.Message,
		TxHash:    t.TxHash,
		CreatedAt: t.CreatedAt,
	}
}

// NewTipListResponse maps a tip list, newest first as stored.
func NewTipListResponse(tips []model.Tip) []TipResponseDTO {
	out := make([]TipResponseDTO, 0, len(tips))
	for i := range tips {
		out = append(out, NewTipResponse(&tips[i]))
	}
	return out
}

// SupporterDTO is one leaderboard entry.
type SupporterDTO struct {
	Address string  `json:"address"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
}

// NewSupporterListResponse maps the leaderboard.
func NewSupporterListResponse(board []model.Supporter) []SupporterDTO {
	out := make([]SupporterDTO, 0, len(board))
	for _, s := range board {
		out = append(out, SupporterDTO{Address: s.Address, Total: s.Total, Count: s.Count})
	}
	return out
}
