package repository

import (
	"context"
	"fmt"

	"backr/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TipRepository is the append-only tip ledger. Rows are never updated or
// deleted.
type TipRepository interface {
	Insert(ctx context.Context, t *model.Tip) error
	ListByReceiver(ctx context.Context, receiver string) ([]model.Tip, error)
	ListBySender(ctx context.Context, sender string) ([]model.Tip, error)
}

type tipRepo struct {
	pool *pgxpool.Pool
}

// NewTipRepo creates a new TipRepository.
func NewTipRepo(pool *pgxpool.Pool) TipRepository {
	return &tipRepo{pool: pool}
}

func (r *tipRepo) Insert(ctx context.Context, t *model.Tip) error {
	const q = `
        INSERT INTO tips (id, sender, receiver, amount, currency, message, tx_hash, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `
	_, err := r.pool.Exec(ctx, q, t.ID, t.Sender, t.Receiver, t.Amount, t.Currency, t.Message, t.TxHash)
	if err != nil {
		return fmt.Errorf("insert tip for %s: %w", t.Receiver, err)
	}
	return nil
}

func (r *tipRepo) ListByReceiver(ctx context.Context, receiver string) ([]model.Tip, error) {
	return r.list(ctx, `receiver`, model.NormalizeAddress(receiver))
}

func (r *tipRepo) ListBySender(ctx context.Context, sender string) ([]model.Tip, error) {
	return r.list(ctx, `sender`, model.NormalizeAddress(sender))
}

func (r *tipRepo) list(ctx context.Context, column, address string) ([]model.Tip, error) {
	q := fmt.Sprintf(`
        SELECT id, sender, receiver, amount, currency, message, tx_hash, created_at
        FROM tips
        WHERE %s = $1
        ORDER BY created_at DESC
    `, column)
	rows, err := r.pool.Query(ctx, q, address)
	if err != nil {
		return nil, fmt.Errorf("list tips by %s: %w", column, err)
	}
	defer rows.Close()
	return scanTips(rows)
}

func scanTips(rows pgx.Rows) ([]model.Tip, error) {
	var tips []model.Tip
	for rows.Next() {
		var t model.Tip
		if err := rows.Scan(&t.ID, &t.Sender, &t.Receiver, &t.Amount, &t.Currency, &t.Message, &t.TxHash, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tip: %w", err)
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}
