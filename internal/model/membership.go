package model

import (
	"strings"
	"time"
)

// MembershipPeriod is the fixed entitlement window purchased by a single
// payment, regardless of tier. Renewals insert a new row with a fresh window
// rather than extending an existing one.
const MembershipPeriod = 30 * 24 * time.Hour

// Membership is an append-only ledger row recording that a subscriber paid
// for a tier. Entitlement is derived, never stored: a (user, creator) pair is
// subscribed iff at least one of its rows has ExpiresAt in the future.
type Membership struct {
	ID             string    `json:"id"`
	UserAddress    string    `json:"user_address"`
	CreatorAddress string    `json:"creator_address"`
	TierID         string    `json:"tier_id"`
	TierName       string    `json:"tier_name,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	TxHash         string    `json:"tx_hash,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Active reports whether the row grants entitlement at the given instant.
// A row expiring exactly at now is expired; the comparison is strict.
func (m *Membership) Active(now time.Time) bool {
	return m.ExpiresAt.After(now)
}

// mockAddressPrefixes identify wallets seeded by demo fixtures. Rows from
// these wallets must never leak into audience counts or revenue.
var mockAddressPrefixes = []string{"0x1010", "0x2020", "0x3030"}

// IsMockAddress reports whether a wallet belongs to the seeded demo set.
// Keep this as the single named filter for analytics hygiene; removing it
// inflates reported member counts with fixture data.
func IsMockAddress(addr string) bool {
	lower := strings.ToLower(addr)
	for _, p := range mockAddressPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
