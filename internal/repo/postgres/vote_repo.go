package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SyncBAND/besteats/internal/domain/model"
	"github.com/SyncBAND/besteats/internal/domain/rules"
)

var ErrNothingToUnvote = errors.New("nothing to unvote")

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

type VoteRecord struct {
	UserID       int64
	RestaurantID int64
	VoteDate     string
	VoteCount    int
	TotalWeight  float64
}

// ApplyVote creates the (user, restaurant, day) row on the first vote and
// otherwise bumps it, adding the weight tier selected by the current count.
// The upsert carries the row lock for the rest of the transaction.
func (r *VoteRepo) ApplyVote(ctx context.Context, tx pgx.Tx, userID, restaurantID int64, dayKey string) (VoteRecord, error) {
	if userID <= 0 || restaurantID <= 0 || strings.TrimSpace(dayKey) == "" {
		return VoteRecord{}, fmt.Errorf("invalid vote payload")
	}
	if tx == nil {
		return VoteRecord{}, fmt.Errorf("transaction is required")
	}

	var rec VoteRecord
	err := tx.QueryRow(ctx, `
INSERT INTO restaurant_votes (
	user_id,
	restaurant_id,
	vote_date,
	vote_count,
	total_weight,
	created_at,
	updated_at
) VALUES ($1, $2, $3::date, 1, $4, NOW(), NOW())
ON CONFLICT (user_id, restaurant_id, vote_date) DO UPDATE SET
	vote_count = restaurant_votes.vote_count + 1,
	total_weight = restaurant_votes.total_weight + CASE
		WHEN restaurant_votes.vote_count = 0 THEN $4
		WHEN restaurant_votes.vote_count = 1 THEN $5
		ELSE $6
	END,
	updated_at = NOW()
RETURNING user_id, restaurant_id, to_char(vote_date, 'YYYY-MM-DD'), vote_count, total_weight
`, userID, restaurantID, dayKey,
		rules.FirstVoteWeight, rules.SecondVoteWeight, rules.ExtraVoteWeight,
	).Scan(
		&rec.UserID,
		&rec.RestaurantID,
		&rec.VoteDate,
		&rec.VoteCount,
		&rec.TotalWeight,
	)
	if err != nil {
		return VoteRecord{}, fmt.Errorf("apply vote: %w", err)
	}

	return rec, nil
}

// ApplyUnvote reverses the latest vote tier. The vote_count > 0 guard makes
// an absent row and a zeroed row the same outcome: nothing to unvote. The
// zeroed row is kept so the next vote of the day resumes from count 0.
func (r *VoteRepo) ApplyUnvote(ctx context.Context, tx pgx.Tx, userID, restaurantID int64, dayKey string) (VoteRecord, error) {
	if userID <= 0 || restaurantID <= 0 || strings.TrimSpace(dayKey) == "" {
		return VoteRecord{}, fmt.Errorf("invalid unvote payload")
	}
	if tx == nil {
		return VoteRecord{}, fmt.Errorf("transaction is required")
	}

	var rec VoteRecord
	err := tx.QueryRow(ctx, `
UPDATE restaurant_votes
SET
	vote_count = vote_count - 1,
	total_weight = CASE
		WHEN vote_count = 1 THEN 0
		WHEN vote_count = 2 THEN total_weight - $4
		ELSE total_weight - $5
	END,
	updated_at = NOW()
WHERE user_id = $1 AND restaurant_id = $2 AND vote_date = $3::date AND vote_count > 0
RETURNING user_id, restaurant_id, to_char(vote_date, 'YYYY-MM-DD'), vote_count, total_weight
`, userID, restaurantID, dayKey,
		rules.SecondVoteWeight, rules.ExtraVoteWeight,
	).Scan(
		&rec.UserID,
		&rec.RestaurantID,
		&rec.VoteDate,
		&rec.VoteCount,
		&rec.TotalWeight,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VoteRecord{}, ErrNothingToUnvote
		}
		return VoteRecord{}, fmt.Errorf("apply unvote: %w", err)
	}

	return rec, nil
}

func (r *VoteRepo) Get(ctx context.Context, userID, restaurantID int64, dayKey string) (VoteRecord, bool, error) {
	if userID <= 0 || restaurantID <= 0 || strings.TrimSpace(dayKey) == "" {
		return VoteRecord{}, false, fmt.Errorf("invalid vote lookup payload")
	}
	if r.pool == nil {
		return VoteRecord{}, false, fmt.Errorf("postgres pool is nil")
	}

	var rec VoteRecord
	err := r.pool.QueryRow(ctx, `
SELECT user_id, restaurant_id, to_char(vote_date, 'YYYY-MM-DD'), vote_count, total_weight
FROM restaurant_votes
WHERE user_id = $1 AND restaurant_id = $2 AND vote_date = $3::date
LIMIT 1
`, userID, restaurantID, dayKey).Scan(
		&rec.UserID,
		&rec.RestaurantID,
		&rec.VoteDate,
		&rec.VoteCount,
		&rec.TotalWeight,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VoteRecord{}, false, nil
		}
		return VoteRecord{}, false, fmt.Errorf("get vote: %w", err)
	}

	return rec, true, nil
}

// TallyByDay aggregates one day's activity per restaurant. Rows whose count
// went back to zero contribute neither weight nor a voter.
func (r *VoteRepo) TallyByDay(ctx context.Context, dayKey string) ([]model.MostVotedRestaurant, error) {
	if strings.TrimSpace(dayKey) == "" {
		return nil, fmt.Errorf("day key is required")
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	v.restaurant_id,
	r.name,
	SUM(v.total_weight)::float8,
	COUNT(DISTINCT v.user_id)
FROM restaurant_votes v
JOIN restaurants r ON r.id = v.restaurant_id
WHERE v.vote_date = $1::date AND v.vote_count > 0
GROUP BY v.restaurant_id, r.name
ORDER BY r.name
`, dayKey)
	if err != nil {
		return nil, fmt.Errorf("tally votes by day: %w", err)
	}
	defer rows.Close()

	var tallies []model.MostVotedRestaurant
	for rows.Next() {
		var tally model.MostVotedRestaurant
		if err := rows.Scan(
			&tally.RestaurantID,
			&tally.RestaurantName,
			&tally.TotalVotes,
			&tally.TotalVoterCount,
		); err != nil {
			return nil, fmt.Errorf("scan vote tally: %w", err)
		}
		tallies = append(tallies, tally)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vote tallies: %w", err)
	}

	return tallies, nil
}
