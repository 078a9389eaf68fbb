package service

import (
	"context"
	"time"

	"backr/internal/chain"
)

// confirmPayment checks a submitted transaction hash against the chain.
// With a positive wait bound it polls a still-pending transaction until it
// confirms, reverts, or the bound passes; with no bound a pending hash is
// rejected immediately.
func confirmPayment(ctx context.Context, v *chain.Verifier, txHash, to string, amount float64, wait time.Duration) error {
	if wait <= 0 {
		return v.Confirm(ctx, txHash, to, amount)
	}
	_, err := v.WaitConfirmed(ctx, txHash, to, amount, wait)
	return err
}
