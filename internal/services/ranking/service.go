package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SyncBAND/besteats/internal/domain/model"
	"github.com/SyncBAND/besteats/internal/domain/rules"
)

var ErrInvalidDate = errors.New("invalid date")

type TallyStore interface {
	TallyByDay(ctx context.Context, dayKey string) ([]model.MostVotedRestaurant, error)
}

type Cache interface {
	GetMostVoted(ctx context.Context, dayKey string) ([]model.MostVotedRestaurant, bool, error)
	SetMostVoted(ctx context.Context, dayKey string, winners []model.MostVotedRestaurant) error
}

type Dependencies struct {
	Tallies TallyStore
	Cache   Cache
	Logger  *zap.Logger
}

type Config struct {
	Timezone *time.Location
}

// Service answers the daily standings question: which restaurants won the
// day. A winner must hold both the highest total weight and the highest
// distinct voter count; when those maxima land on different restaurants,
// nobody wins.
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

// MostVoted returns the day's winners plus the resolved day key. An empty
// rawDate means today in the voting timezone.
func (s *Service) MostVoted(ctx context.Context, rawDate string) ([]model.MostVotedRestaurant, string, error) {
	dayKey, err := s.resolveDay(rawDate)
	if err != nil {
		return nil, "", err
	}

	if s.deps.Cache != nil {
		cached, hit, cacheErr := s.deps.Cache.GetMostVoted(ctx, dayKey)
		if cacheErr != nil {
			s.deps.Logger.Warn("read ranking cache", zap.String("day", dayKey), zap.Error(cacheErr))
		} else if hit {
			return cached, dayKey, nil
		}
	}

	tallies, err := s.deps.Tallies.TallyByDay(ctx, dayKey)
	if err != nil {
		return nil, "", fmt.Errorf("tally day %s: %w", dayKey, err)
	}

	winners := selectWinners(tallies)

	if s.deps.Cache != nil {
		if cacheErr := s.deps.Cache.SetMostVoted(ctx, dayKey, winners); cacheErr != nil {
			s.deps.Logger.Warn("write ranking cache", zap.String("day", dayKey), zap.Error(cacheErr))
		}
	}

	return winners, dayKey, nil
}

func (s *Service) resolveDay(rawDate string) (string, error) {
	rawDate = strings.TrimSpace(rawDate)
	if rawDate == "" {
		return rules.DayKey(s.now().UTC(), s.loc), nil
	}

	dayKey, err := rules.ParseDay(rawDate)
	if err != nil {
		return "", ErrInvalidDate
	}
	return dayKey, nil
}

// selectWinners keeps the tallies holding both maxima. Weights are sums of
// quarter multiples, so equality comparison is exact.
func selectWinners(tallies []model.MostVotedRestaurant) []model.MostVotedRestaurant {
	if len(tallies) == 0 {
		return nil
	}

	maxWeight := tallies[0].TotalVotes
	maxVoters := tallies[0].TotalVoterCount
	for _, tally := range tallies[1:] {
		if tally.TotalVotes > maxWeight {
			maxWeight = tally.TotalVotes
		}
		if tally.TotalVoterCount > maxVoters {
			maxVoters = tally.TotalVoterCount
		}
	}

	var winners []model.MostVotedRestaurant
	for _, tally := range tallies {
		if tally.TotalVotes == maxWeight && tally.TotalVoterCount == maxVoters {
			winners = append(winners, tally)
		}
	}

	return winners
}
