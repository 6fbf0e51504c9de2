package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SyncBAND/besteats/internal/domain/model"
)

var (
	ErrDuplicateRestaurantName = errors.New("restaurant name already exists")
	ErrRestaurantNotFound      = errors.New("restaurant not found")
)

const uniqueViolationCode = "23505"

type RestaurantRepo struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepo(pool *pgxpool.Pool) *RestaurantRepo {
	return &RestaurantRepo{pool: pool}
}

// Create inserts a restaurant. Name uniqueness is case-insensitive, enforced
// by an index on LOWER(name); concurrent duplicate creation surfaces as the
// same domain error as a plain collision.
func (r *RestaurantRepo) Create(ctx context.Context, name string, creatorID int64) (model.Restaurant, error) {
	if strings.TrimSpace(name) == "" || creatorID <= 0 {
		return model.Restaurant{}, fmt.Errorf("invalid restaurant payload")
	}
	if r.pool == nil {
		return model.Restaurant{}, fmt.Errorf("postgres pool is nil")
	}

	var rec model.Restaurant
	err := r.pool.QueryRow(ctx, `
INSERT INTO restaurants (
	name,
	creator_id,
	created_at,
	updated_at
) VALUES ($1, $2, NOW(), NOW())
RETURNING id, name, creator_id, created_at
`, strings.TrimSpace(name), creatorID).Scan(
		&rec.ID,
		&rec.Name,
		&rec.CreatorID,
		&rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Restaurant{}, ErrDuplicateRestaurantName
		}
		return model.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}

	return rec, nil
}

func (r *RestaurantRepo) GetByID(ctx context.Context, id int64) (model.Restaurant, error) {
	if id <= 0 {
		return model.Restaurant{}, fmt.Errorf("invalid restaurant id")
	}
	if r.pool == nil {
		return model.Restaurant{}, fmt.Errorf("postgres pool is nil")
	}

	var rec model.Restaurant
	err := r.pool.QueryRow(ctx, `
SELECT id, name, creator_id, created_at
FROM restaurants
WHERE id = $1
LIMIT 1
`, id).Scan(&rec.ID, &rec.Name, &rec.CreatorID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Restaurant{}, ErrRestaurantNotFound
		}
		return model.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}

	return rec, nil
}

// Exists checks the restaurant inside a voting transaction before any
// quota or vote row is touched.
func (r *RestaurantRepo) Exists(ctx context.Context, tx pgx.Tx, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid restaurant id")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	var found int64
	err := tx.QueryRow(ctx, `
SELECT id
FROM restaurants
WHERE id = $1
LIMIT 1
`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("check restaurant exists: %w", err)
	}

	return nil
}

func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name, creator_id, created_at
FROM restaurants
ORDER BY name
`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var rec model.Restaurant
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatorID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurants = append(restaurants, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}

	return restaurants, nil
}

func (r *RestaurantRepo) UpdateName(ctx context.Context, id int64, name string) (model.Restaurant, error) {
	if id <= 0 || strings.TrimSpace(name) == "" {
		return model.Restaurant{}, fmt.Errorf("invalid restaurant update payload")
	}
	if r.pool == nil {
		return model.Restaurant{}, fmt.Errorf("postgres pool is nil")
	}

	var rec model.Restaurant
	err := r.pool.QueryRow(ctx, `
UPDATE restaurants
SET
	name = $2,
	updated_at = NOW()
WHERE id = $1
RETURNING id, name, creator_id, created_at
`, id, strings.TrimSpace(name)).Scan(&rec.ID, &rec.Name, &rec.CreatorID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Restaurant{}, ErrRestaurantNotFound
		}
		if isUniqueViolation(err) {
			return model.Restaurant{}, ErrDuplicateRestaurantName
		}
		return model.Restaurant{}, fmt.Errorf("update restaurant name: %w", err)
	}

	return rec, nil
}

func (r *RestaurantRepo) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid restaurant id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM restaurants
WHERE id = $1
`, id)
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRestaurantNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
