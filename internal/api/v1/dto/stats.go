package dto

import "backr/internal/model"

// MonthRevenueDTO is one bucket of the six-month revenue history.
type MonthRevenueDTO struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// StatsResponseDTO is the dashboard payload.
type StatsResponseDTO struct {
	TotalRevenue      float64           `json:"totalRevenue"`
	ActiveMembers     int               `json:"activeMembers"`
	MonthlyRecurring  float64           `json:"monthlyRecurring"`
	History           []MonthRevenueDTO `json:"history"`
	Checklist         model.Checklist   `json:"checklist"`
	TotalBackrs       int               `json:"totalBackrs"`
	ActiveDiscussions int               `json:"activeDiscussions"`
	LikesThisWeek     int               `json:"likesThisWeek"`
	TopTierMembers    int               `json:"topTierMembers"`
	ContractAddress   string            `json:"contractAddress,omitempty"`
}

// NewStatsResponse maps the computed projection to the wire shape.
func NewStatsResponse(s *model.CreatorStats) StatsResponseDTO {
	history := make([]MonthRevenueDTO, 0, len(s.History))
	for _, h := range s.History {
		history = append(history, MonthRevenueDTO{Month: h.Month, Revenue: h.Revenue})
	}
	return StatsResponseDTO{
		TotalRevenue:      s.TotalRevenue,
		ActiveMembers:     s.ActiveMembers,
		MonthlyRecurring:  s.MonthlyRecurring,
		History:           history,
		Checklist:         s.Checklist,
		TotalBackrs:       s.TotalBackrs,
		ActiveDiscussions: s.ActiveDiscussions,
		LikesThisWeek:     s.LikesThisWeek,
		TopTierMembers:    s.TopTierMembers,
		ContractAddress:   s.ContractAddress,
	}
}
