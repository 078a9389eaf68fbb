package service

import (
	"context"
	"fmt"
	"time"

	"backr/internal/chain"
	"backr/internal/model"
	"backr/internal/repository"
	"backr/internal/security"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MembershipService records and reads the subscription ledger.
type MembershipService interface {
	// Subscribe inserts a new membership row for the pair with a fresh
	// 30-day expiry. It never merges with or extends existing rows.
	Subscribe(ctx context.Context, actor, creatorAddress, tierID, txHash string) (*model.Membership, error)
	// IsActive reports whether the pair holds at least one unexpired row.
	IsActive(ctx context.Context, userAddress, creatorAddress string) (bool, error)
	// Current returns the most favorable (latest-expiring) active row for
	// display, or nil when none is active.
	Current(ctx context.Context, userAddress, creatorAddress string) (*model.Membership, error)
	ListBySubscriber(ctx context.Context, userAddress string) ([]model.Membership, error)
	// AudienceForCreator lists a creator's membership rows with seeded demo
	// wallets filtered out. Analytics paths must use this, not the raw list.
	AudienceForCreator(ctx context.Context, creatorAddress string) ([]model.Membership, error)
}

type membershipService struct {
	repo        repository.MembershipRepository
	tierRepo    repository.TierRepository
	verifier    *chain.Verifier
	waitTimeout time.Duration
	seclog      security.Log
	nowFn       func() time.Time
	logger      zerolog.Logger
}

// NewMembershipService creates a new MembershipService. verifier may be nil,
// in which case submitted hashes are recorded unverified. waitTimeout bounds
// how long a pending transaction is polled before the purchase is rejected.
func NewMembershipService(repo repository.MembershipRepository, tierRepo repository.TierRepository, verifier *chain.Verifier, waitTimeout time.Duration, seclog security.Log, logger zerolog.Logger) MembershipService {
	return &membershipService{
		repo:        repo,
		tierRepo:    tierRepo,
		verifier:    verifier,
		waitTimeout: waitTimeout,
		seclog:      seclog,
		nowFn:       time.Now,
		logger:      logger.With().Str("service", "MembershipService").Logger(),
	}
}

func (s *membershipService) Subscribe(ctx context.Context, actor, creatorAddress, tierID, txHash string) (*model.Membership, error) {
	subscriber := model.NormalizeAddress(actor)
	creator := model.NormalizeAddress(creatorAddress)
	if subscriber == "" || creator == "" {
		return nil, fmt.Errorf("%w: subscriber and creator required", ErrValidation)
	}
	if tierID == "" {
		return nil, fmt.Errorf("%w: tier id required", ErrValidation)
	}

	// The tier name is denormalized onto the row at write time so revenue
	// resolution survives a later tier deletion or id-format drift.
	tiers, err := s.tierRepo.ListByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}
	tierName := ""
	price := 0.0
	if t, ok := ResolveTier(tierID, "", tiers); ok {
		tierName = t.Name
		price = t.Price
	}

	if s.verifier != nil && txHash != "" {
		if err := confirmPayment(ctx, s.verifier, txHash, creator, price, s.waitTimeout); err != nil {
			s.seclog.Record(security.Event{Kind: security.KindPaymentRejected, Address: subscriber, Detail: err.Error()})
			return nil, fmt.Errorf("%w: %v", ErrPaymentUnverified, err)
		}
	}

	now := s.nowFn()
	m := &model.Membership{
		ID:             uuid.NewString(),
		UserAddress:    subscriber,
		CreatorAddress: creator,
		TierID:         tierID,
		TierName:       tierName,
		ExpiresAt:      now.Add(model.MembershipPeriod),
		TxHash:         txHash,
		CreatedAt:      now,
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info().Str("subscriber", subscriber).Str("creator", creator).Str("tier", tierID).Time("expires_at", m.ExpiresAt).Msg("membership recorded")
	return m, nil
}

func (s *membershipService) IsActive(ctx context.Context, userAddress, creatorAddress string) (bool, error) {
	m, err := s.Current(ctx, userAddress, creatorAddress)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

func (s *membershipService) Current(ctx context.Context, userAddress, creatorAddress string) (*model.Membership, error) {
	rows, err := s.repo.ListByPair(ctx, userAddress, creatorAddress)
	if err != nil {
		return nil, err
	}
	now := s.nowFn()
	// Overlapping renewals are normal; take the latest-expiring active row.
	var best *model.Membership
	for i := range rows {
		if !rows[i].Active(now) {
			continue
		}
		if best == nil || rows[i].ExpiresAt.After(best.ExpiresAt) {
			best = &rows[i]
		}
	}
	return best, nil
}

func (s *membershipService) ListBySubscriber(ctx context.Context, userAddress string) ([]model.Membership, error) {
	return s.repo.ListBySubscriber(ctx, userAddress)
}

func (s *membershipService) AudienceForCreator(ctx context.Context, creatorAddress string) ([]model.Membership, error) {
	rows, err := s.repo.ListByCreator(ctx, creatorAddress)
	if err != nil {
		return nil, err
	}
	filtered := rows[:0:0]
	for _, m := range rows {
		if model.IsMockAddress(m.UserAddress) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered, nil
}
