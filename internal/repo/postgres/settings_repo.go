package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepo backs runtime-tunable values, currently just the daily vote
// capacity. Values are stored as text; interpretation belongs to the
// settings service.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, fmt.Errorf("setting key is required")
	}
	if r.pool == nil {
		return "", false, fmt.Errorf("postgres pool is nil")
	}

	var value string
	err := r.pool.QueryRow(ctx, `
SELECT value
FROM app_settings
WHERE key = $1
LIMIT 1
`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting: %w", err)
	}

	return value, true, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
		return fmt.Errorf("invalid setting payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO app_settings (
	key,
	value,
	updated_at
) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET
	value = EXCLUDED.value,
	updated_at = NOW()
`, key, value); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}

	return nil
}
