package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrVotesExhausted = errors.New("daily votes exhausted")
	ErrQuotaNotFound  = errors.New("quota not found")
)

type QuotaRepo struct {
	pool *pgxpool.Pool
}

func NewQuotaRepo(pool *pgxpool.Pool) *QuotaRepo {
	return &QuotaRepo{pool: pool}
}

// CreateForUser seeds the quota row at account creation. Idempotent so a
// retried provisioning call cannot reset an already-spent allotment.
func (r *QuotaRepo) CreateForUser(ctx context.Context, tx pgx.Tx, userID int64, capacity int) error {
	if userID <= 0 || capacity <= 0 {
		return fmt.Errorf("invalid quota seed payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO quotas (
	user_id,
	remaining,
	created_at,
	updated_at
) VALUES ($1, $2, NOW(), NOW())
ON CONFLICT (user_id) DO NOTHING
`, userID, capacity); err != nil {
		return fmt.Errorf("seed quota: %w", err)
	}

	return nil
}

// Consume spends one vote. The remaining > 0 guard makes exhaustion and the
// row lock one statement; the floor keeps remaining non-negative even if a
// larger decrement ever lands here.
func (r *QuotaRepo) Consume(ctx context.Context, tx pgx.Tx, userID int64) (int, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("invalid quota consume payload")
	}
	if tx == nil {
		return 0, fmt.Errorf("transaction is required")
	}

	var remaining int
	err := tx.QueryRow(ctx, `
UPDATE quotas
SET
	remaining = GREATEST(remaining - 1, 0),
	updated_at = NOW()
WHERE user_id = $1 AND remaining > 0
RETURNING remaining
`, userID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrVotesExhausted
		}
		return 0, fmt.Errorf("consume vote quota: %w", err)
	}

	return remaining, nil
}

// Refund returns one vote, clamped at the daily capacity so vote/unvote
// cycles can never mint extra votes.
func (r *QuotaRepo) Refund(ctx context.Context, tx pgx.Tx, userID int64, capacity int) (int, error) {
	if userID <= 0 || capacity <= 0 {
		return 0, fmt.Errorf("invalid quota refund payload")
	}
	if tx == nil {
		return 0, fmt.Errorf("transaction is required")
	}

	var remaining int
	err := tx.QueryRow(ctx, `
UPDATE quotas
SET
	remaining = LEAST(remaining + 1, $2),
	updated_at = NOW()
WHERE user_id = $1
RETURNING remaining
`, userID, capacity).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrQuotaNotFound
		}
		return 0, fmt.Errorf("refund vote quota: %w", err)
	}

	return remaining, nil
}

func (r *QuotaRepo) Get(ctx context.Context, userID int64) (int, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("invalid quota lookup payload")
	}
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var remaining int
	err := r.pool.QueryRow(ctx, `
SELECT remaining
FROM quotas
WHERE user_id = $1
LIMIT 1
`, userID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrQuotaNotFound
		}
		return 0, fmt.Errorf("get vote quota: %w", err)
	}

	return remaining, nil
}

// ResetAll restores every quota to capacity in one statement; a vote that
// races the reset lands fully before or fully after it.
func (r *QuotaRepo) ResetAll(ctx context.Context, capacity int) (int64, error) {
	if capacity <= 0 {
		return 0, fmt.Errorf("invalid reset capacity")
	}
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE quotas
SET
	remaining = $1,
	updated_at = NOW()
`, capacity)
	if err != nil {
		return 0, fmt.Errorf("reset vote quotas: %w", err)
	}

	return result.RowsAffected(), nil
}
