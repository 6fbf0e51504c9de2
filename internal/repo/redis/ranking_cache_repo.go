package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/SyncBAND/besteats/internal/domain/model"
)

const rankingKeyPrefix = "ranking:most_voted:"

// RankingCacheRepo keeps the most-voted result per day for a short TTL.
// Writes through the voting engine invalidate the day, so the TTL only
// bounds staleness when invalidation is missed.
type RankingCacheRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRankingCacheRepo(client *goredis.Client, ttl time.Duration) *RankingCacheRepo {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RankingCacheRepo{client: client, ttl: ttl}
}

func (r *RankingCacheRepo) GetMostVoted(ctx context.Context, dayKey string) ([]model.MostVotedRestaurant, bool, error) {
	if strings.TrimSpace(dayKey) == "" {
		return nil, false, fmt.Errorf("day key is required")
	}
	if r.client == nil {
		return nil, false, nil
	}

	raw, err := r.client.Get(ctx, rankingKey(dayKey)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get cached ranking: %w", err)
	}

	var winners []model.MostVotedRestaurant
	if err := json.Unmarshal(raw, &winners); err != nil {
		// A corrupt entry is dropped rather than served.
		_ = r.client.Del(ctx, rankingKey(dayKey)).Err()
		return nil, false, nil
	}

	return winners, true, nil
}

func (r *RankingCacheRepo) SetMostVoted(ctx context.Context, dayKey string, winners []model.MostVotedRestaurant) error {
	if strings.TrimSpace(dayKey) == "" {
		return fmt.Errorf("day key is required")
	}
	if r.client == nil {
		return nil
	}

	raw, err := json.Marshal(winners)
	if err != nil {
		return fmt.Errorf("marshal ranking for cache: %w", err)
	}

	if err := r.client.Set(ctx, rankingKey(dayKey), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache ranking: %w", err)
	}

	return nil
}

func (r *RankingCacheRepo) InvalidateDay(ctx context.Context, dayKey string) error {
	if strings.TrimSpace(dayKey) == "" {
		return fmt.Errorf("day key is required")
	}
	if r.client == nil {
		return nil
	}

	if err := r.client.Del(ctx, rankingKey(dayKey)).Err(); err != nil {
		return fmt.Errorf("invalidate cached ranking: %w", err)
	}

	return nil
}

func rankingKey(dayKey string) string {
	return rankingKeyPrefix + dayKey
}
