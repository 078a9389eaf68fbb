package repository

import (
	"context"
	"errors"
	"fmt"

	"backr/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TierRepository defines methods for accessing a creator's tier catalog.
// Update and delete are targeted single-row statements; ReplaceAll exists
// only for explicit bulk reorders and runs delete-then-insert in one
// transaction.
type TierRepository interface {
	Create(ctx context.Context, t *model.Tier) error
	Update(ctx context.Context, t *model.Tier) error
	Delete(ctx context.Context, id, creatorAddress string) error
	GetByID(ctx context.Context, id string) (*model.Tier, error)
	ListByCreator(ctx context.Context, creatorAddress string) ([]model.Tier, error)
	ReplaceAll(ctx context.Context, creatorAddress string, tiers []model.Tier) error
}

type tierRepo struct {
	pool *pgxpool.Pool
}

// NewTierRepo creates a new TierRepository.
func NewTierRepo(pool *pgxpool.Pool) TierRepository {
	return &tierRepo{pool: pool}
}

func (r *tierRepo) Create(ctx context.Context, t *model.Tier) error {
	const q = `
        INSERT INTO tiers (id, creator_address, name, price, perks, image_url, position, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `
	_, err := r.pool.Exec(ctx, q, t.ID, t.CreatorAddress, t.Name, t.Price, t.Perks, t.ImageURL, t.Position)
	if err != nil {
		return fmt.Errorf("create tier for %s: %w", t.CreatorAddress, err)
	}
	return nil
}

// Update mutates one tier in place. The creator address in the WHERE clause
// doubles as the ownership check: no row is touched on a mismatch.
func (r *tierRepo) Update(ctx context.Context, t *model.Tier) error {
	const q = `
        UPDATE tiers
        SET name = $3, price = $4, perks = $5, image_url = $6, position = $7
        WHERE id = $1 AND creator_address = $2
    `
	tag, err := r.pool.Exec(ctx, q, t.ID, t.CreatorAddress, t.Name, t.Price, t.Perks, t.ImageURL, t.Position)
	if err != nil {
		return fmt.Errorf("update tier %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tierRepo) Delete(ctx context.Context, id, creatorAddress string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tiers WHERE id = $1 AND creator_address = $2`, id, creatorAddress)
	if err != nil {
		return fmt.Errorf("delete tier %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tierRepo) GetByID(ctx context.Context, id string) (*model.Tier, error) {
	const q = `
        SELECT id, creator_address, name, price, perks, image_url, position, created_at
        FROM tiers
        WHERE id = $1
    `
	var t model.Tier
	err := r.pool.QueryRow(ctx, q, id).Scan(&t.ID, &t.CreatorAddress, &t.Name, &t.Price, &t.Perks, &t.ImageURL, &t.Position, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch tier %s: %w", id, err)
	}
	return &t, nil
}

func (r *tierRepo) ListByCreator(ctx context.Context, creatorAddress string) ([]model.Tier, error) {
	const q = `
        SELECT id, creator_address, name, price, perks, image_url, position, created_at
        FROM tiers
        WHERE creator_address = $1
        ORDER BY position ASC, created_at ASC
    `
	rows, err := r.pool.Query(ctx, q, model.NormalizeAddress(creatorAddress))
	if err != nil {
		return nil, fmt.Errorf("list tiers for %s: %w", creatorAddress, err)
	}
	defer rows.Close()

	var tiers []model.Tier
	for rows.Next() {
		var t model.Tier
		if err := rows.Scan(&t.ID, &t.CreatorAddress, &t.Name, &t.Price, &t.Perks, &t.ImageURL, &t.Position, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// ReplaceAll swaps the whole catalog for a creator atomically. Reserved for
// bulk reorders; concurrent edits are last-write-wins at list granularity.
func (r *tierRepo) ReplaceAll(ctx context.Context, creatorAddress string, tiers []model.Tier) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tier replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tiers WHERE creator_address = $1`, creatorAddress); err != nil {
		return fmt.Errorf("clear tiers for %s: %w", creatorAddress, err)
	}
	const ins = `
        INSERT INTO tiers (id, creator_address, name, price, perks, image_url, position, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `
	for i, t := range tiers {
		if _, err := tx.Exec(ctx, ins, t.ID, creatorAddress, t.Name, t.Price, t.Perks, t.ImageURL, i); err != nil {
			return fmt.Errorf("reinsert tier %s: %w", t.ID, err)
		}
	}
	return tx.Commit(ctx)
}
