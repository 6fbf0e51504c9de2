package voting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/SyncBAND/besteats/internal/domain/rules"
	"github.com/SyncBAND/besteats/internal/repo/postgres"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrVotesExhausted     = errors.New("daily votes exhausted")
	ErrNothingToUnvote    = errors.New("nothing to unvote")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

type QuotaStore interface {
	Consume(ctx context.Context, tx pgx.Tx, userID int64) (int, error)
	Refund(ctx context.Context, tx pgx.Tx, userID int64, capacity int) (int, error)
	Get(ctx context.Context, userID int64) (int, error)
}

type VoteStore interface {
	ApplyVote(ctx context.Context, tx pgx.Tx, userID, restaurantID int64, dayKey string) (postgres.VoteRecord, error)
	ApplyUnvote(ctx context.Context, tx pgx.Tx, userID, restaurantID int64, dayKey string) (postgres.VoteRecord, error)
}

type RestaurantStore interface {
	Exists(ctx context.Context, tx pgx.Tx, id int64) error
}

type CapacityProvider interface {
	DailyVoteCapacity(ctx context.Context) (int, error)
}

type RankingCache interface {
	InvalidateDay(ctx context.Context, dayKey string) error
}

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type Dependencies struct {
	Quotas      QuotaStore
	Votes       VoteStore
	Restaurants RestaurantStore
	Capacity    CapacityProvider
	Cache       RankingCache
	Tx          TxRunner
	Logger      *zap.Logger
}

type Config struct {
	Timezone *time.Location
}

// Service is the voting engine. Each vote spends one unit of the user's
// daily quota and adds a weight that decays with repeat votes for the same
// restaurant; each unvote reverses the latest tier and refunds the unit.
// Quota and vote rows move inside a single transaction, so a failure on
// either side leaves both untouched.
type Service struct {
	deps Dependencies
	loc  *time.Location
	now  func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	loc := cfg.Timezone
	if loc == nil {
		loc = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Service{deps: deps, loc: loc, now: time.Now}
}

type Result struct {
	Vote      postgres.VoteRecord
	Remaining int
	Capacity  int
}

func (s *Service) Vote(ctx context.Context, userID, restaurantID int64) (Result, error) {
	if userID <= 0 || restaurantID <= 0 {
		return Result{}, ErrValidation
	}

	capacity, err := s.deps.Capacity.DailyVoteCapacity(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("resolve vote capacity: %w", err)
	}

	dayKey := s.today()

	var result Result
	err = s.deps.Tx.WithinTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if existsErr := s.deps.Restaurants.Exists(txCtx, tx, restaurantID); existsErr != nil {
			return existsErr
		}

		remaining, consumeErr := s.deps.Quotas.Consume(txCtx, tx, userID)
		if consumeErr != nil {
			return consumeErr
		}

		record, voteErr := s.deps.Votes.ApplyVote(txCtx, tx, userID, restaurantID, dayKey)
		if voteErr != nil {
			return voteErr
		}

		result = Result{Vote: record, Remaining: remaining, Capacity: capacity}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrRestaurantNotFound):
			return Result{}, ErrRestaurantNotFound
		case errors.Is(err, postgres.ErrVotesExhausted), errors.Is(err, postgres.ErrQuotaNotFound):
			return Result{}, ErrVotesExhausted
		default:
			return Result{}, fmt.Errorf("cast vote: %w", err)
		}
	}

	s.invalidateRanking(ctx, dayKey)

	return result, nil
}

func (s *Service) Unvote(ctx context.Context, userID, restaurantID int64) (Result, error) {
	if userID <= 0 || restaurantID <= 0 {
		return Result{}, ErrValidation
	}

	capacity, err := s.deps.Capacity.DailyVoteCapacity(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("resolve vote capacity: %w", err)
	}

	dayKey := s.today()

	var result Result
	err = s.deps.Tx.WithinTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		record, unvoteErr := s.deps.Votes.ApplyUnvote(txCtx, tx, userID, restaurantID, dayKey)
		if unvoteErr != nil {
			return unvoteErr
		}

		remaining, refundErr := s.deps.Quotas.Refund(txCtx, tx, userID, capacity)
		if refundErr != nil {
			return refundErr
		}

		result = Result{Vote: record, Remaining: remaining, Capacity: capacity}
		return nil
	})
	if err != nil {
		if errors.Is(err, postgres.ErrNothingToUnvote) {
			return Result{}, ErrNothingToUnvote
		}
		return Result{}, fmt.Errorf("reverse vote: %w", err)
	}

	s.invalidateRanking(ctx, dayKey)

	return result, nil
}

// Quota reports the user's remaining balance alongside the current capacity.
func (s *Service) Quota(ctx context.Context, userID int64) (remaining, capacity int, err error) {
	if userID <= 0 {
		return 0, 0, ErrValidation
	}

	capacity, err = s.deps.Capacity.DailyVoteCapacity(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("resolve vote capacity: %w", err)
	}

	remaining, err = s.deps.Quotas.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrQuotaNotFound) {
			return 0, capacity, nil
		}
		return 0, 0, fmt.Errorf("get vote quota: %w", err)
	}

	return remaining, capacity, nil
}

func (s *Service) today() string {
	return rules.DayKey(s.now().UTC(), s.loc)
}

// invalidateRanking drops the day's cached standings after a committed
// mutation. Cache trouble never fails the vote.
func (s *Service) invalidateRanking(ctx context.Context, dayKey string) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.InvalidateDay(ctx, dayKey); err != nil {
		s.deps.Logger.Warn("invalidate ranking cache",
			zap.String("day", dayKey),
			zap.Error(err),
		)
	}
}
