package service

import (
	"context"
	"testing"
	"time"

	"backr/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	creatorAddr = "0xAbCd000000000000000000000000000000000001"
	viewerAddr  = "0xdef0000000000000000000000000000000000002"
)

func newEntitlement(repo *fakeMembershipRepo, now time.Time) *entitlementService {
	svc := NewEntitlementService(repo, zerolog.Nop()).(*entitlementService)
	svc.nowFn = fixedClock(now)
	return svc
}

func TestCanViewPublicPost(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc := newEntitlement(&fakeMembershipRepo{}, now)

	post := &model.Post{CreatorAddress: creatorAddr, IsPublic: true, MinTier: 2}
	ok, err := svc.CanView(context.Background(), "", post)
	require.NoError(t, err)
	assert.True(t, ok, "public flag alone opens the post, even to anonymous viewers")

	post = &model.Post{CreatorAddress: creatorAddr, IsPublic: false, MinTier: 0}
	ok, err = svc.CanView(context.Background(), "", post)
	require.NoError(t, err)
	assert.True(t, ok, "min tier zero opens the post regardless of the flag")
}

func TestCanViewAnonymousGated(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc := newEntitlement(&fakeMembershipRepo{}, now)

	post := &model.Post{CreatorAddress: creatorAddr, MinTier: 1}
	ok, err := svc.CanView(context.Background(), "", post)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanViewCreatorSeesOwnPost(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc := newEntitlement(&fakeMembershipRepo{}, now)

	post := &model.Post{CreatorAddress: creatorAddr, MinTier: 3}
	// Casing of the viewer address must not matter.
	ok, err := svc.CanView(context.Background(), model.NormalizeAddress(creatorAddr), post)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanViewActiveMembership(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeMembershipRepo{rows: []model.Membership{
		{UserAddress: viewerAddr, CreatorAddress: creatorAddr, TierID: "basic", ExpiresAt: now.Add(24 * time.Hour)},
	}}
	svc := newEntitlement(repo, now)

	post := &model.Post{CreatorAddress: creatorAddr, MinTier: 1}
	ok, err := svc.CanView(context.Background(), viewerAddr, post)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanViewExpiredMembership(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeMembershipRepo{rows: []model.Membership{
		{UserAddress: viewerAddr, CreatorAddress: creatorAddr, ExpiresAt: now.Add(-time.Second)},
	}}
	svc := newEntitlement(repo, now)

	post := &model.Post{CreatorAddress: creatorAddr, MinTier: 1}
	ok, err := svc.CanView(context.Background(), viewerAddr, post)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanViewExpiryBoundaryIsStrict(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeMembershipRepo{rows: []model.Membership{
		{UserAddress: viewerAddr, CreatorAddress: creatorAddr, ExpiresAt: now},
	}}
	svc := newEntitlement(repo, now)

	post := &model.Post{CreatorAddress: creatorAddr, MinTier: 1}
	ok, err := svc.CanView(context.Background(), viewerAddr, post)
	require.NoError(t, err)
	assert.False(t, ok, "a row expiring exactly now no longer grants access")
}

func TestCanViewGatingIsCreatorLevel(t *testing.T) {
	// A membership on the cheapest tier unlocks a post marked with a higher
	// min tier: gating checks the creator relationship, not tier rank.
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeMembershipRepo{rows: []model.Membership{
		{UserAddress: viewerAddr, CreatorAddress: creatorAddr, TierID: "0", TierName: "Bronze", ExpiresAt: now.Add(time.Hour)},
	}}
	svc := newEntitlement(repo, now)

	post := &model.Post{CreatorAddress: creatorAddr, MinTier: 3}
	ok, err := svc.CanView(context.Background(), viewerAddr, post)
	require.NoError(t, err)
	assert.True(t, ok)

	// Same story when min tier points at a tier that no longer exists.
	post = &model.Post{CreatorAddress: creatorAddr, MinTier: 99}
	ok, err = svc.CanView(context.Background(), viewerAddr, post)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanViewMembershipToOtherCreator(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeMembershipRepo{rows: []model.Membership{
		{UserAddress: viewerAddr, CreatorAddress: "0x9999000000000000000000000000000000000009", ExpiresAt: now.Add(time.Hour)},
	}}
	svc := newEntitlement(repo, now)

	post := &model.Post{CreatorAddress: creatorAddr, MinTier: 1}
	ok, err := svc.CanView(context.Background(), viewerAddr, post)
	require.NoError(t, err)
	assert.False(t, ok)
}
