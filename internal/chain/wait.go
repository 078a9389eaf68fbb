package chain

import (
	"context"
	"errors"
	"time"
)

// Status is the terminal state of a confirmation wait.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusConfirmed Status = "confirmed"
	StatusReverted  Status = "reverted"
	StatusTimedOut  Status = "timed_out"
)

// WaitConfirmed polls until the transfer either confirms, reverts, or the
// deadline passes. This replaces the old fixed-delay wait between dependent
// chain writes with an explicit bounded poll.
func (v *Verifier) WaitConfirmed(ctx context.Context, txHash, to string, minAmount float64, timeout time.Duration) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	backoff := 2 * time.Second
	const maxBackoff = 15 * time.Second

	for {
		err := v.Confirm(ctx, txHash, to, minAmount)
		switch {
		case err == nil:
			return StatusConfirmed, nil
		case errors.Is(err, ErrTxReverted), errors.Is(err, ErrNoMatchingTransfer):
			// Terminal: the transaction is mined and will never satisfy us.
			return StatusReverted, err
		case errors.Is(err, ErrTxNotFound), errors.Is(err, ErrInsufficientConfirmations):
			// Still pending; keep polling.
		default:
			if ctx.Err() != nil {
				return StatusTimedOut, err
			}
			// Transient RPC failure; retry until the deadline.
		}

		select {
		case <-ctx.Done():
			return StatusTimedOut, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}
