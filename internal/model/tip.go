package model

import "time"

// DefaultCurrency is the stablecoin symbol assumed when a tip omits one.
const DefaultCurrency = "USDC"

// Tip is an append-only ledger row for a one-off payment. Tips always count
// toward a creator's revenue and never toward entitlement. The sender needs
// no profile; tips can arrive from any wallet.
type Tip struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Message   string    `json:"message,omitempty"`
	TxHash    string    `json:"tx_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Supporter is one leaderboard entry: a sender and their summed tip amount.
type Supporter struct {
	Address string  `json:"address"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
}
