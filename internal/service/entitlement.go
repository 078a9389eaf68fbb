package service

import (
	"context"
	"time"

	"backr/internal/model"
	"backr/internal/repository"

	"github.com/rs/zerolog"
)

// EntitlementService decides, at read time, whether a viewer may see a
// post's full content. The answer is recomputed on every call and never
// cached: entitlement must not be stale in the direction of granting access
// after expiry.
type EntitlementService interface {
	CanView(ctx context.Context, viewer string, post *model.Post) (bool, error)
}

type entitlementService struct {
	memberships repository.MembershipRepository
	nowFn       func() time.Time
	logger      zerolog.Logger
}

// NewEntitlementService creates a new EntitlementService.
func NewEntitlementService(memberships repository.MembershipRepository, logger zerolog.Logger) EntitlementService {
	return &entitlementService{
		memberships: memberships,
		nowFn:       time.Now,
		logger:      logger.With().Str("service", "EntitlementService").Logger(),
	}
}

// CanView applies the gating rules in priority order:
//  1. public posts are visible to everyone, including anonymous viewers;
//  2. creators always see their own content;
//  3. any active membership to the post's creator unlocks the post. Gating
//     is creator-level: the post's min_tier is not compared against the
//     membership's tier, and a min_tier pointing at a deleted tier still
//     gates.
//  4. otherwise the content is hidden and callers serve the teaser.
//
// A membership expiring exactly at the evaluation instant is expired.
func (s *entitlementService) CanView(ctx context.Context, viewer string, post *model.Post) (bool, error) {
	if post.Public() {
		return true, nil
	}
	if viewer == "" {
		return false, nil
	}
	if model.SameAddress(viewer, post.CreatorAddress) {
		return true, nil
	}
	rows, err := s.memberships.ListByPair(ctx, viewer, post.CreatorAddress)
	if err != nil {
		return false, err
	}
	now := s.nowFn()
	for i := range rows {
		if rows[i].Active(now) {
			return true, nil
		}
	}
	return false, nil
}
