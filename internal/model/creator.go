package model

import (
	"strings"
	"time"
)

// Creator is a wallet-identified account that publishes posts and sells
// membership tiers. The wallet address is the primary key, stored lowercase.
type Creator struct {
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

// NormalizeAddress lowercases a wallet address so comparisons and keys are
// case-insensitive everywhere.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// SameAddress reports whether two wallet addresses refer to the same account.
func SameAddress(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
