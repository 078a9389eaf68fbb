package service

import (
	"context"
	"time"

	"backr/internal/model"
	"backr/internal/repository"

	"github.com/rs/zerolog"
)

const historyMonths = 6

// StatsService computes a creator's dashboard from the raw tip and
// membership ledgers, freshly on every request. Nothing is materialized
// server-side.
type StatsService interface {
	Stats(ctx context.Context, creatorAddress string) (*model.CreatorStats, error)
}

type statsService struct {
	creators    repository.CreatorRepository
	tiers       repository.TierRepository
	posts       repository.PostRepository
	tips        repository.TipRepository
	memberships MembershipService
	nowFn       func() time.Time
	logger      zerolog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	creators repository.CreatorRepository,
	tiers repository.TierRepository,
	posts repository.PostRepository,
	tips repository.TipRepository,
	memberships MembershipService,
	logger zerolog.Logger,
) StatsService {
	return &statsService{
		creators:    creators,
		tiers:       tiers,
		posts:       posts,
		tips:        tips,
		memberships: memberships,
		nowFn:       time.Now,
		logger:      logger.With().Str("service", "StatsService").Logger(),
	}
}

// Stats assembles the dashboard projection. Amounts are plain float64: the
// result is display-only, never used for settlement. Individual inputs that
// fail to load degrade their widgets to zero instead of failing the whole
// response.
func (s *statsService) Stats(ctx context.Context, creatorAddress string) (*model.CreatorStats, error) {
	creator := model.NormalizeAddress(creatorAddress)
	now := s.nowFn()
	out := &model.CreatorStats{History: seedHistory(now)}

	tiers, err := s.tiers.ListByCreator(ctx, creator)
	if err != nil {
		s.logger.Error().Err(err).Str("creator", creator).Msg("stats: tiers unavailable")
		tiers = nil
	}

	// Audience: demo wallets are already filtered out; then keep rows whose
	// expiry has not passed. Note the >= here against the strict > used for
	// entitlement: a row expiring this instant still counts for revenue.
	var validSubs []model.Membership
	subs, err := s.memberships.AudienceForCreator(ctx, creator)
	if err != nil {
		s.logger.Error().Err(err).Str("creator", creator).Msg("stats: memberships unavailable")
	} else {
		for _, m := range subs {
			if !m.ExpiresAt.Before(now) {
				validSubs = append(validSubs, m)
			}
		}
	}
	out.ActiveMembers = len(validSubs)

	supporters := make(map[string]struct{})
	for _, m := range validSubs {
		supporters[m.UserAddress] = struct{}{}
	}

	// Tips always count toward revenue regardless of age; a tip is a
	// completed payment, not a subscription.
	tips, err := s.tips.ListByReceiver(ctx, creator)
	if err != nil {
		s.logger.Error().Err(err).Str("creator", creator).Msg("stats: tips unavailable")
		tips = nil
	}
	for _, t := range tips {
		if model.IsMockAddress(t.Sender) {
			continue
		}
		out.TotalRevenue += t.Amount
		addToBucket(out.History, t.CreatedAt, t.Amount)
		supporters[t.Sender] = struct{}{}
	}

	// Each active subscription contributes its resolved tier price, both to
	// the total and to the bucket of the month it was purchased in. A row
	// that resolves through no strategy contributes 0 rather than erroring.
	for _, m := range validSubs {
		t, ok := ResolveTier(m.TierID, m.TierName, tiers)
		if !ok {
			continue
		}
		out.TotalRevenue += t.Price
		addToBucket(out.History, m.CreatedAt, t.Price)
	}

	// Observed behavior: monthly recurring mirrors total revenue; it is not
	// a true MRR projection.
	out.MonthlyRecurring = out.TotalRevenue
	out.TotalBackrs = len(supporters)
	out.TopTierMembers = countTopTierMembers(validSubs, tiers)

	profile, err := s.creators.GetByAddress(ctx, creator)
	if err == nil {
		out.ContractAddress = profile.ContractAddress
		out.Checklist.HasName = profile.Name != ""
		out.Checklist.HasContract = profile.ContractAddress != ""
	}
	out.Checklist.HasTiers = len(tiers) > 0

	posts, err := s.posts.ListByCreator(ctx, creator)
	if err != nil {
		s.logger.Error().Err(err).Str("creator", creator).Msg("stats: posts unavailable")
	} else {
		out.Checklist.HasPosts = len(posts) > 0
		weekAgo := now.AddDate(0, 0, -7)
		for _, p := range posts {
			if !p.CreatedAt.Before(weekAgo) {
				out.LikesThisWeek += p.Likes
			}
		}
	}

	if n, err := s.posts.CountCommentsForCreatorSince(ctx, creator, now.AddDate(0, 0, -30)); err == nil {
		out.ActiveDiscussions = n
	}

	return out, nil
}

// seedHistory builds the rolling window of the last six calendar months,
// oldest first, every bucket starting at zero.
func seedHistory(now time.Time) []model.MonthRevenue {
	history := make([]model.MonthRevenue, 0, historyMonths)
	// Anchor on the first of the month so stepping back never skips a short
	// month.
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := historyMonths - 1; i >= 0; i-- {
		history = append(history, model.MonthRevenue{Month: monthKey(base.AddDate(0, -i, 0))})
	}
	return history
}

func monthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

// addToBucket distributes an amount into the bucket matching its month.
// Amounts outside the window simply land nowhere; they stay in the total.
func addToBucket(history []model.MonthRevenue, at time.Time, amount float64) {
	key := monthKey(at)
	for i := range history {
		if history[i].Month == key {
			history[i].Revenue += amount
			return
		}
	}
}

// countTopTierMembers counts active subscribers on the priciest tier (first
// encountered wins a price tie). Matching prefers the resolved tier and
// falls back to the denormalized tier name on the row.
func countTopTierMembers(validSubs []model.Membership, tiers []model.Tier) int {
	var top *model.Tier
	for i := range tiers {
		if top == nil || tiers[i].Price > top.Price {
			top = &tiers[i]
		}
	}
	if top == nil {
		return 0
	}
	count := 0
	for _, m := range validSubs {
		if t, ok := ResolveTier(m.TierID, m.TierName, tiers); ok {
			if t.Name == top.Name {
				count++
			}
			continue
		}
		if m.TierName == top.Name {
			count++
		}
	}
	return count
}
