package repository

import (
	"context"
	"fmt"

	"backr/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MembershipRepository is the append-only subscription ledger. A renewal is
// a new row with a fresh expiry; rows are never extended or deleted, and no
// uniqueness constraint prevents overlapping rows for the same pair.
type MembershipRepository interface {
	Insert(ctx context.Context, m *model.Membership) error
	ListByPair(ctx context.Context, userAddress, creatorAddress string) ([]model.Membership, error)
	ListBySubscriber(ctx context.Context, userAddress string) ([]model.Membership, error)
	ListByCreator(ctx context.Context, creatorAddress string) ([]model.Membership, error)
}

type membershipRepo struct {
	pool *pgxpool.Pool
}

// NewMembershipRepo creates a new MembershipRepository.
func NewMembershipRepo(pool *pgxpool.Pool) MembershipRepository {
	return &membershipRepo{pool: pool}
}

func (r *membershipRepo) Insert(ctx context.Context, m *model.Membership) error {
	const q = `
        INSERT INTO memberships (id, user_address, creator_address, tier_id, tier_name, expires_at, tx_hash, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `
	_, err := r.pool.Exec(ctx, q, m.ID, m.UserAddress, m.CreatorAddress, m.TierID, m.TierName, m.ExpiresAt, m.TxHash)
	if err != nil {
		return fmt.Errorf("insert membership %s->%s: %w", m.UserAddress, m.CreatorAddress, err)
	}
	return nil
}

func (r *membershipRepo) ListByPair(ctx context.Context, userAddress, creatorAddress string) ([]model.Membership, error) {
	const q = membershipSelect + `
        WHERE user_address = $1 AND creator_address = $2
        ORDER BY expires_at DESC
    `
	rows, err := r.pool.Query(ctx, q, model.NormalizeAddress(userAddress), model.NormalizeAddress(creatorAddress))
	if err != nil {
		return nil, fmt.Errorf("list memberships for pair: %w", err)
	}
	defer rows.Close()
	return scanMemberships(rows)
}

func (r *membershipRepo) ListBySubscriber(ctx context.Context, userAddress string) ([]model.Membership, error) {
	const q = membershipSelect + `
        WHERE user_address = $1
        ORDER BY created_at DESC
    `
	rows, err := r.pool.Query(ctx, q, model.NormalizeAddress(userAddress))
	if err != nil {
		return nil, fmt.Errorf("list memberships for subscriber: %w", err)
	}
	defer rows.Close()
	return scanMemberships(rows)
}

func (r *membershipRepo) ListByCreator(ctx context.Context, creatorAddress string) ([]model.Membership, error) {
	const q = membershipSelect + `
        WHERE creator_address = $1
        ORDER BY created_at DESC
    `
	rows, err := r.pool.Query(ctx, q, model.NormalizeAddress(creatorAddress))
	if err != nil {
		return nil, fmt.Errorf("list memberships for creator: %w", err)
	}
	defer rows.Close()
	return scanMemberships(rows)
}

const membershipSelect = `
        SELECT id, user_address, creator_address, tier_id, tier_name, expires_at, tx_hash, created_at
        FROM memberships
`

func scanMemberships(rows pgx.Rows) ([]model.Membership, error) {
	var ms []model.Membership
	for rows.Next() {
		var m model.Membership
		if err := rows.Scan(&m.ID, &m.UserAddress, &m.CreatorAddress, &m.TierID, &m.TierName, &m.ExpiresAt, &m.TxHash, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}
