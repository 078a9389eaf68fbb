package repository

import (
	"context"
	"errors"
	"fmt"

	"backr/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// CreatorRepository defines methods for accessing creator profiles.
type CreatorRepository interface {
	Upsert(ctx context.Context, c *model.Creator) error
	GetByAddress(ctx context.Context, address string) (*model.Creator, error)
	GetByUsername(ctx context.Context, username string) (*model.Creator, error)
}

type creatorRepo struct {
	pool *pgxpool.Pool
}

// NewCreatorRepo creates a new CreatorRepository.
func NewCreatorRepo(pool *pgxpool.Pool) CreatorRepository {
	return &creatorRepo{pool: pool}
}

// Upsert creates the profile on first save and updates it afterwards.
// The address is the natural key; callers normalize it to lowercase.
func (r *creatorRepo) Upsert(ctx context.Context, c *model.Creator) error {
	const q = `
        INSERT INTO creators (address, name, bio, username, avatar_url, cover_url, contract_address, created_at, updated_at)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NOW(), NOW())
        ON CONFLICT (address) DO UPDATE SET
            name = EXCLUDED.name,
            bio = EXCLUDED.bio,
            username = EXCLUDED.username,
            avatar_url = EXCLUDED.avatar_url,
            cover_url = EXCLUDED.cover_url,
            contract_address = EXCLUDED.contract_address,
            updated_at = NOW()
    `
	_, err := r.pool.Exec(ctx, q,
		c.Address, c.Name, c.Bio, c.Username, c.AvatarURL, c.CoverURL, c.ContractAddress)
	if err != nil {
		return fmt.Errorf("upsert creator %s: %w", c.Address, err)
	}
	return nil
}

// GetByAddress returns the profile for a wallet address.
func (r *creatorRepo) GetByAddress(ctx context.Context, address string) (*model.Creator, error) {
	const q = `
        SELECT address, name, bio, COALESCE(username, ''), avatar_url, cover_url, contract_address, created_at, updated_at
        FROM creators
        WHERE address = $1
    `
	return r.scanOne(r.pool.QueryRow(ctx, q, model.NormalizeAddress(address)))
}

// GetByUsername returns the profile claiming a username, if any.
func (r *creatorRepo) GetByUsername(ctx context.Context, username string) (*model.Creator, error) {
	const q = `
        SELECT address, name, bio, COALESCE(username, ''), avatar_url, cover_url, contract_address, created_at, updated_at
        FROM creators
        WHERE username = $1
    `
	return r.scanOne(r.pool.QueryRow(ctx, q, username))
}

func (r *creatorRepo) scanOne(row pgx.Row) (*model.Creator, error) {
	var c model.Creator
	err := row.Scan(&c.Address, &c.Name, &c.Bio, &c.Username, &c.AvatarURL, &c.CoverURL, &c.ContractAddress, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch creator: %w", err)
	}
	return &c, nil
}
