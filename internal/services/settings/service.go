package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SyncBAND/besteats/internal/domain/rules"
)

// KeyDailyVoteCapacity is the runtime setting holding the votes each user is
// given a day.
const KeyDailyVoteCapacity = "daily_vote_capacity"

var ErrValidation = errors.New("validation error")

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Service struct {
	store    Store
	fallback int
}

func NewService(store Store, fallback int) *Service {
	if fallback <= 0 {
		fallback = rules.DefaultDailyVoteCapacity
	}
	return &Service{store: store, fallback: fallback}
}

// DailyVoteCapacity reads the current allotment. An absent or unusable value
// falls back to the configured default so voting never stalls on a missing
// setting; a store failure is surfaced.
func (s *Service) DailyVoteCapacity(ctx context.Context) (int, error) {
	if s.store == nil {
		return s.fallback, nil
	}

	raw, found, err := s.store.Get(ctx, KeyDailyVoteCapacity)
	if err != nil {
		return 0, fmt.Errorf("read daily vote capacity: %w", err)
	}
	if !found {
		return s.fallback, nil
	}

	capacity, parseErr := strconv.Atoi(raw)
	if parseErr != nil || capacity <= 0 {
		return s.fallback, nil
	}

	return capacity, nil
}

// SetDailyVoteCapacity updates the allotment; it applies to the next vote
// and the next reset, never retroactively to remaining balances.
func (s *Service) SetDailyVoteCapacity(ctx context.Context, capacity int) error {
	if capacity <= 0 {
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("settings store is not configured")
	}

	if err := s.store.Set(ctx, KeyDailyVoteCapacity, strconv.Itoa(capacity)); err != nil {
		return fmt.Errorf("write daily vote capacity: %w", err)
	}

	return nil
}
