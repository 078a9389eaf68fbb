package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate bootstraps the schema. Idempotent; runs at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS creators (
            address          TEXT PRIMARY KEY,
            name             TEXT NOT NULL DEFAULT '',
            bio              TEXT NOT NULL DEFAULT '',
            username         TEXT UNIQUE,
            avatar_url       TEXT NOT NULL DEFAULT '',
            cover_url        TEXT NOT NULL DEFAULT '',
            contract_address TEXT NOT NULL DEFAULT '',
            created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tiers (
            id              TEXT PRIMARY KEY,
            creator_address TEXT NOT NULL REFERENCES creators(address),
            name            TEXT NOT NULL,
            price           NUMERIC NOT NULL,
            perks           TEXT[] NOT NULL DEFAULT '{}',
            image_url       TEXT NOT NULL DEFAULT '',
            position        INT NOT NULL DEFAULT 0,
            created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS posts (
            id              TEXT PRIMARY KEY,
            creator_address TEXT NOT NULL REFERENCES creators(address),
            title           TEXT NOT NULL,
            content         TEXT NOT NULL DEFAULT '',
            teaser          TEXT NOT NULL DEFAULT '',
            image_url       TEXT NOT NULL DEFAULT '',
            video_url       TEXT NOT NULL DEFAULT '',
            min_tier        INT NOT NULL DEFAULT 0,
            is_public       BOOLEAN NOT NULL DEFAULT TRUE,
            likes           INT NOT NULL DEFAULT 0,
            category        TEXT NOT NULL DEFAULT '',
            created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tips (
            id         TEXT PRIMARY KEY,
            sender     TEXT NOT NULL,
            receiver   TEXT NOT NULL,
            amount     NUMERIC NOT NULL,
            currency   TEXT NOT NULL DEFAULT 'USDC',
            message    TEXT NOT NULL DEFAULT '',
            tx_hash    TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_tips_receiver ON tips (receiver, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_tips_sender ON tips (sender, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS memberships (
            id              TEXT PRIMARY KEY,
            user_address    TEXT NOT NULL,
            creator_address TEXT NOT NULL,
            tier_id         TEXT NOT NULL,
            tier_name       TEXT NOT NULL DEFAULT '',
            expires_at      TIMESTAMPTZ NOT NULL,
            tx_hash         TEXT NOT NULL DEFAULT '',
            created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_memberships_pair ON memberships (user_address, creator_address, expires_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_memberships_creator ON memberships (creator_address)`,
		`CREATE TABLE IF NOT EXISTS comments (
            id             TEXT PRIMARY KEY,
            post_id        TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
            author_address TEXT NOT NULL,
            body           TEXT NOT NULL,
            created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            slug TEXT PRIMARY KEY,
            name TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS post_hashtags (
            post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
            tag     TEXT NOT NULL,
            PRIMARY KEY (post_id, tag)
        )`,
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
