package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	resetLockPrefix = "votes_reset:"
	resetLockTTL    = 48 * time.Hour
)

// ResetLockRepo makes the daily quota reset idempotent at a day boundary:
// the first caller to claim a day's lock performs the reset, redundant and
// manual triggers for the same day are no-ops.
type ResetLockRepo struct {
	client *goredis.Client
}

func NewResetLockRepo(client *goredis.Client) *ResetLockRepo {
	return &ResetLockRepo{client: client}
}

func (r *ResetLockRepo) AcquireDay(ctx context.Context, dayKey string) (bool, error) {
	if strings.TrimSpace(dayKey) == "" {
		return false, fmt.Errorf("day key is required")
	}
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	acquired, err := r.client.SetNX(ctx, resetLockPrefix+dayKey, 1, resetLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire reset day lock: %w", err)
	}

	return acquired, nil
}
