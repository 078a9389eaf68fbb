package service

import (
	"context"
	"testing"
	"time"

	"backr/internal/model"
	"backr/internal/security"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsFixture struct {
	creators    *fakeCreatorRepo
	tiers       *fakeTierRepo
	posts       *fakePostRepo
	tips        *fakeTipRepo
	memberships *fakeMembershipRepo
	svc         *statsService
	now         time.Time
}

func newStatsFixture(now time.Time) *statsFixture {
	f := &statsFixture{
		creators:    newFakeCreatorRepo(),
		tiers:       &fakeTierRepo{},
		posts:       &fakePostRepo{},
		tips:        &fakeTipRepo{},
		memberships: &fakeMembershipRepo{},
		now:         now,
	}
	members := NewMembershipService(f.memberships, f.tiers, nil, 0, security.Nop(), zerolog.Nop()).(*membershipService)
	members.nowFn = fixedClock(now)
	f.svc = NewStatsService(f.creators, f.tiers, f.posts, f.tips, members, zerolog.Nop()).(*statsService)
	f.svc.nowFn = fixedClock(now)
	return f
}

func (f *statsFixture) addTier(id, name string, price float64) {
	f.tiers.rows = append(f.tiers.rows, model.Tier{
		ID: id, CreatorAddress: model.NormalizeAddress(creatorAddr), Name: name, Price: price,
	})
}

func (f *statsFixture) addMembership(user, tierID, tierName string, createdAt, expiresAt time.Time) {
	f.memberships.rows = append(f.memberships.rows, model.Membership{
		UserAddress:    user,
		CreatorAddress: model.NormalizeAddress(creatorAddr),
		TierID:         tierID,
		TierName:       tierName,
		CreatedAt:      createdAt,
		ExpiresAt:      expiresAt,
	})
}

func (f *statsFixture) addTip(sender string, amount float64, createdAt time.Time) {
	f.tips.rows = append(f.tips.rows, model.Tip{
		Sender:    sender,
		Receiver:  model.NormalizeAddress(creatorAddr),
		Amount:    amount,
		Currency:  model.DefaultCurrency,
		CreatedAt: createdAt,
	})
}

func TestStatsEmptyCreator(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)

	assert.Zero(t, out.TotalRevenue)
	assert.Zero(t, out.ActiveMembers)
	assert.Zero(t, out.TotalBackrs)
	require.Len(t, out.History, 6)
	assert.Equal(t, "Mar 2026", out.History[0].Month)
	assert.Equal(t, "Aug 2026", out.History[5].Month)
	for _, b := range out.History {
		assert.Zero(t, b.Revenue)
	}
}

func TestStatsHistoryWindowOnMonthEnd(t *testing.T) {
	// Mar 31 minus one month must land in Feb, not skip it.
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)
	months := make([]string, 0, len(out.History))
	for _, b := range out.History {
		months = append(months, b.Month)
	}
	assert.Equal(t, []string{"Oct 2025", "Nov 2025", "Dec 2025", "Jan 2026", "Feb 2026", "Mar 2026"}, months)
}

func TestStatsExpiredMembershipExcluded(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	f.addTier("t1", "Silver", 10)
	f.addMembership("0xaaaa000000000000000000000000000000000001", "t1", "Silver", now.AddDate(0, -2, 0), now.Add(-time.Hour))

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, out.ActiveMembers)
	assert.Zero(t, out.TotalRevenue, "expired rows contribute no revenue")
}

func TestStatsExpiryBoundaryCountsForRevenue(t *testing.T) {
	// Revenue validity is inclusive at the boundary, unlike entitlement.
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	f.addTier("t1", "Silver", 10)
	f.addMembership("0xaaaa000000000000000000000000000000000001", "t1", "Silver", now.AddDate(0, 0, -30), now)

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)
	assert.Equal(t, 1, out.ActiveMembers)
	assert.Equal(t, float64(10), out.TotalRevenue)
}

func TestStatsMockWalletsExcludedEverywhere(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	f.addTier("t1", "Silver", 10)
	f.addMembership("0x1010000000000000000000000000000000000001", "t1", "Silver", now, now.Add(time.Hour))
	f.addTip("0x2020000000000000000000000000000000000002", 50, now)
	f.addTip("0xbbbb000000000000000000000000000000000002", 5, now)

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)
	assert.Zero(t, out.ActiveMembers)
	assert.Equal(t, float64(5), out.TotalRevenue)
	assert.Equal(t, 1, out.TotalBackrs)
}

func TestStatsIndexTierResolution(t *testing.T) {
	// Legacy rows store a list index in tier_id; the price must still
	// resolve.
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	f.addTier("a1", "Bronze", 5)
	f.addTier("b2", "Silver", 10)
	f.addMembership("0xaaaa000000000000000000000000000000000001", "1", "", now, now.Add(time.Hour))

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)
	assert.Equal(t, float64(10), out.TotalRevenue)
}

func TestStatsUnresolvableRowContributesZero(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	f.addTier("a1", "Bronze", 5)
	f.addMembership("0xaaaa000000000000000000000000000000000001", "ghost", "Platinum", now, now.Add(time.Hour))

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)
	assert.Equal(t, 1, out.ActiveMembers, "the row still counts as a member")
	assert.Zero(t, out.TotalRevenue, "but prices nothing")
}

func TestStatsRevenueAggregation(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	f.addTier("t1", "Silver", 10)
	f.addTier("t2", "Gold", 25)

	sub1 := "0xaaaa000000000000000000000000000000000001"
	sub2 := "0xbbbb000000000000000000000000000000000002"
	f.addMembership(sub1, "t1", "Silver", now.AddDate(0, -1, 0), now.Add(time.Hour))
	f.addMembership(sub2, "t2", "Gold", now, now.Add(time.Hour))
	f.addTip(sub1, 7, now)
	f.addTip("0xcccc000000000000000000000000000000000003", 3, now.AddDate(0, -2, 0))

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)

	assert.Equal(t, float64(10+25+7+3), out.TotalRevenue)
	assert.Equal(t, out.TotalRevenue, out.MonthlyRecurring)
	assert.Equal(t, 2, out.ActiveMembers)
	// Distinct wallets: sub1 (member+tipper counts once), sub2, and the
	// tip-only wallet.
	assert.Equal(t, 3, out.TotalBackrs)
	assert.Equal(t, 1, out.TopTierMembers, "only the Gold subscriber sits on the priciest tier")

	// Bucket placement: July gets the Silver subscription, June the old tip,
	// August everything created now.
	byMonth := make(map[string]float64)
	for _, b := range out.History {
		byMonth[b.Month] = b.Revenue
	}
	assert.Equal(t, float64(3), byMonth["Jun 2026"])
	assert.Equal(t, float64(10), byMonth["Jul 2026"])
	assert.Equal(t, float64(25+7), byMonth["Aug 2026"])
}

func TestStatsOldRevenueStaysInTotal(t *testing.T) {
	// A tip older than the window lands in no bucket but still totals.
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	f.addTip("0xaaaa000000000000000000000000000000000001", 42, now.AddDate(-1, 0, 0))

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)
	assert.Equal(t, float64(42), out.TotalRevenue)
	for _, b := range out.History {
		assert.Zero(t, b.Revenue)
	}
}

func TestStatsTopTierFirstWinsPriceTie(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	f.addTier("t1", "Gold", 25)
	f.addTier("t2", "Platinum", 25)
	f.addMembership("0xaaaa000000000000000000000000000000000001", "t1", "Gold", now, now.Add(time.Hour))
	f.addMembership("0xbbbb000000000000000000000000000000000002", "t2", "Platinum", now, now.Add(time.Hour))

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TopTierMembers, "ties go to the first tier encountered")
}

func TestStatsChecklistAndEngagement(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	f := newStatsFixture(now)
	creator := model.NormalizeAddress(creatorAddr)
	f.creators.rows[creator] = model.Creator{
		Address:         creator,
		Name:            "Ada",
		ContractAddress: "0xc0ffee0000000000000000000000000000000001",
	}
	f.addTier("t1", "Silver", 10)
	f.posts.posts = append(f.posts.posts,
		model.Post{ID: "p1", CreatorAddress: creator, Likes: 4, CreatedAt: now.AddDate(0, 0, -2)},
		model.Post{ID: "p2", CreatorAddress: creator, Likes: 9, CreatedAt: now.AddDate(0, 0, -10)},
	)
	f.posts.comments = append(f.posts.comments,
		model.Comment{PostID: "p1", CreatedAt: now.AddDate(0, 0, -5)},
		model.Comment{PostID: "p1", CreatedAt: now.AddDate(0, 0, -40)},
	)

	out, err := f.svc.Stats(context.Background(), creatorAddr)
	require.NoError(t, err)

	assert.True(t, out.Checklist.HasName)
	assert.True(t, out.Checklist.HasContract)
	assert.True(t, out.Checklist.HasTiers)
	assert.True(t, out.Checklist.HasPosts)
	assert.Equal(t, 4, out.LikesThisWeek, "only posts from the last 7 days count")
	assert.Equal(t, 1, out.ActiveDiscussions, "only comments from the last 30 days count")
	assert.Equal(t, "0xc0ffee0000000000000000000000000000000001", out.ContractAddress)
}
