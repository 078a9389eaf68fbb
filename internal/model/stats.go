package model

// MonthRevenue is one bucket of the rolling six-month revenue history,
// keyed like "Jan 2026", oldest first.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Checklist drives onboarding nudges on the dashboard. Booleans only; it
// carries no financial meaning.
type Checklist struct {
	HasName     bool `json:"has_name"`
	HasContract bool `json:"has_contract"`
	HasTiers    bool `json:"has_tiers"`
	HasPosts    bool `json:"has_posts"`
}

// CreatorStats is the dashboard projection computed fresh on every request
// from the tip and membership ledgers. Nothing here is persisted.
type CreatorStats struct {
	TotalRevenue      float64        `json:"total_revenue"`
	ActiveMembers     int            `json:"active_members"`
	MonthlyRecurring  float64        `json:"monthly_recurring"`
	History           []MonthRevenue `json:"history"`
	Checklist         Checklist      `json:"checklist"`
	TotalBackrs       int            `json:"total_backrs"`
	ActiveDiscussions int            `json:"active_discussions"`
	LikesThisWeek     int            `json:"likes_this_week"`
	TopTierMembers    int            `json:"top_tier_members"`
	ContractAddress   string         `json:"contract_address,omitempty"`
}
