package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SyncBAND/besteats/internal/domain/model"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, tx pgx.Tx, username, role string) (model.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(role) == "" {
		return model.User{}, fmt.Errorf("invalid user payload")
	}
	if tx == nil {
		return model.User{}, fmt.Errorf("transaction is required")
	}

	var rec model.User
	err := tx.QueryRow(ctx, `
INSERT INTO users (
	username,
	role,
	created_at
) VALUES ($1, $2, NOW())
RETURNING id, username, role, created_at
`, strings.TrimSpace(username), role).Scan(
		&rec.ID,
		&rec.Username,
		&rec.Role,
		&rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	return rec, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	if id <= 0 {
		return model.User{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	var rec model.User
	err := r.pool.QueryRow(ctx, `
SELECT id, username, role, created_at
FROM users
WHERE id = $1
LIMIT 1
`, id).Scan(&rec.ID, &rec.Username, &rec.Role, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}

	return rec, nil
}
