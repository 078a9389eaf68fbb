package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"backr/internal/chain"
	"backr/internal/model"
	"backr/internal/repository"
	"backr/internal/security"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TipInput carries a tip submission. TxHash and Message are optional;
// Currency defaults to the stablecoin symbol.
type TipInput struct {
	Sender   string
	Receiver string
	Amount   float64
	Currency string
	Message  string
	TxHash   string
}

// TipService records and reads the tip ledger.
type TipService interface {
	Record(ctx context.Context, actor string, in TipInput) (*model.Tip, error)
	ListByReceiver(ctx context.Context, receiver string) ([]model.Tip, error)
	ListBySender(ctx context.Context, sender string) ([]model.Tip, error)
	Leaderboard(ctx context.Context, receiver string, n int) ([]model.Supporter, error)
}

type tipService struct {
	repo        repository.TipRepository
	verifier    *chain.Verifier
	waitTimeout time.Duration
	seclog      security.Log
	logger      zerolog.Logger
}

// NewTipService creates a new TipService. verifier may be nil, in which case
// submitted hashes are recorded unverified. waitTimeout bounds how long a
// pending transaction is polled before the tip is rejected.
func NewTipService(repo repository.TipRepository, verifier *chain.Verifier, waitTimeout time.Duration, seclog security.Log, logger zerolog.Logger) TipService {
	return &tipService{
		repo:        repo,
		verifier:    verifier,
		waitTimeout: waitTimeout,
		seclog:      seclog,
		logger:      logger.With().Str("service", "TipService").Logger(),
	}
}

// Record validates and inserts one tip. The write happens only after the
// payment proof checks out: no ledger row without proof of payment.
func (s *tipService) Record(ctx context.Context, actor string, in TipInput) (*model.Tip, error) {
	if !model.SameAddress(actor, in.Sender) {
		s.seclog.Record(security.Event{Kind: security.KindOwnerMismatch, Address: actor, Detail: "tip sender mismatch"})
		return nil, ErrForbidden
	}
	if in.Sender == "" || in.Receiver == "" {
		return nil, fmt.Errorf("%w: sender and receiver required", ErrValidation)
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrValidation)
	}
	if in.Currency == "" {
		in.Currency = model.DefaultCurrency
	}

	if s.verifier != nil && in.TxHash != "" {
		if err := confirmPayment(ctx, s.verifier, in.TxHash, in.Receiver, in.Amount, s.waitTimeout); err != nil {
			s.seclog.Record(security.Event{Kind: security.KindPaymentRejected, Address: in.Sender, Detail: err.Error()})
			return nil, fmt.Errorf("%w: %v", ErrPaymentUnverified, err)
		}
	}

	t := &model.Tip{
		ID:       uuid.NewString(),
		Sender:   model.NormalizeAddress(in.Sender),
		Receiver: model.NormalizeAddress(in.Receiver),
		Amount:   in.Amount,
		Currency: in.Currency,
		Message:  in.Message,
		TxHash:   in.TxHash,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info().Str("receiver", t.Receiver).Float64("amount", t.Amount).Msg("tip recorded")
	return t, nil
}

func (s *tipService) ListByReceiver(ctx context.Context, receiver string) ([]model.Tip, error) {
	return s.repo.ListByReceiver(ctx, receiver)
}

func (s *tipService) ListBySender(ctx context.Context, sender string) ([]model.Tip, error) {
	return s.repo.ListBySender(ctx, sender)
}

// Leaderboard sums tips per sender for a creator and returns the top n,
// excluding seeded demo wallets.
func (s *tipService) Leaderboard(ctx context.Context, receiver string, n int) ([]model.Supporter, error) {
	if n <= 0 {
		n = 10
	}
	tips, err := s.repo.ListByReceiver(ctx, receiver)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]*model.Supporter)
	order := make([]string, 0)
	for _, t := range tips {
		if model.IsMockAddress(t.Sender) {
			continue
		}
		sup, ok := totals[t.Sender]
		if !ok {
			sup = &model.Supporter{Address: t.Sender}
			totals[t.Sender] = sup
			order = append(order, t.Sender)
		}
		sup.Total += t.Amount
		sup.Count++
	}
	board := make([]model.Supporter, 0, len(order))
	for _, addr := range order {
		board = append(board, *totals[addr])
	}
	sort.SliceStable(board, func(i, j int) bool { return board[i].Total > board[j].Total })
	if len(board) > n {
		board = board[:n]
	}
	return board, nil
}
