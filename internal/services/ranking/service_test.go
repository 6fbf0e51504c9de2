package ranking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SyncBAND/besteats/internal/domain/model"
	"github.com/SyncBAND/besteats/internal/domain/rules"
)

type fakeTallyStore struct {
	tallies map[string][]model.MostVotedRestaurant
	calls   int
}

func (f *fakeTallyStore) TallyByDay(_ context.Context, dayKey string) ([]model.MostVotedRestaurant, error) {
	f.calls++
	return f.tallies[dayKey], nil
}

type fakeCache struct {
	entries map[string][]model.MostVotedRestaurant
}

func (f *fakeCache) GetMostVoted(_ context.Context, dayKey string) ([]model.MostVotedRestaurant, bool, error) {
	entry, ok := f.entries[dayKey]
	return entry, ok, nil
}

func (f *fakeCache) SetMostVoted(_ context.Context, dayKey string, winners []model.MostVotedRestaurant) error {
	if f.entries == nil {
		f.entries = map[string][]model.MostVotedRestaurant{}
	}
	f.entries[dayKey] = winners
	return nil
}

func newTestService(store *fakeTallyStore, cache *fakeCache) *Service {
	deps := Dependencies{Tallies: store}
	if cache != nil {
		deps.Cache = cache
	}
	return NewService(deps, Config{})
}

func TestMostVotedRequiresBothMaxima(t *testing.T) {
	day := "2026-08-31"
	store := &fakeTallyStore{tallies: map[string][]model.MostVotedRestaurant{
		day: {
			{RestaurantID: 1, RestaurantName: "Alpha", TotalVotes: 4.0, TotalVoterCount: 2},
			{RestaurantID: 2, RestaurantName: "Bravo", TotalVotes: 4.0, TotalVoterCount: 3},
			{RestaurantID: 3, RestaurantName: "Charlie", TotalVotes: 1.5, TotalVoterCount: 1},
		},
	}}
	svc := newTestService(store, nil)

	winners, resolved, err := svc.MostVoted(context.Background(), day)
	if err != nil {
		t.Fatalf("most voted: %v", err)
	}
	if resolved != day {
		t.Fatalf("expected day %q, got %q", day, resolved)
	}
	if len(winners) != 1 || winners[0].RestaurantID != 2 {
		t.Fatalf("expected Bravo alone (top weight and top voters), got %+v", winners)
	}
}

func TestMostVotedSplitMaximaMeansNoWinner(t *testing.T) {
	day := "2026-08-31"
	store := &fakeTallyStore{tallies: map[string][]model.MostVotedRestaurant{
		day: {
			{RestaurantID: 1, RestaurantName: "Alpha", TotalVotes: 5.0, TotalVoterCount: 2},
			{RestaurantID: 2, RestaurantName: "Bravo", TotalVotes: 3.0, TotalVoterCount: 4},
		},
	}}
	svc := newTestService(store, nil)

	winners, _, err := svc.MostVoted(context.Background(), day)
	if err != nil {
		t.Fatalf("most voted: %v", err)
	}
	if len(winners) != 0 {
		t.Fatalf("expected no winner when maxima split, got %+v", winners)
	}
}

func TestMostVotedTie(t *testing.T) {
	day := "2026-08-31"
	store := &fakeTallyStore{tallies: map[string][]model.MostVotedRestaurant{
		day: {
			{RestaurantID: 1, RestaurantName: "Alpha", TotalVotes: 2.5, TotalVoterCount: 2},
			{RestaurantID: 2, RestaurantName: "Bravo", TotalVotes: 2.5, TotalVoterCount: 2},
			{RestaurantID: 3, RestaurantName: "Charlie", TotalVotes: 1.0, TotalVoterCount: 1},
		},
	}}
	svc := newTestService(store, nil)

	winners, _, err := svc.MostVoted(context.Background(), day)
	if err != nil {
		t.Fatalf("most voted: %v", err)
	}
	if len(winners) != 2 {
		t.Fatalf("expected two tied winners, got %+v", winners)
	}
}

func TestMostVotedEmptyDay(t *testing.T) {
	store := &fakeTallyStore{}
	svc := newTestService(store, nil)

	winners, _, err := svc.MostVoted(context.Background(), "2026-08-31")
	if err != nil {
		t.Fatalf("most voted: %v", err)
	}
	if len(winners) != 0 {
		t.Fatalf("expected empty result for a day without votes, got %+v", winners)
	}
}

func TestMostVotedRejectsBadDate(t *testing.T) {
	svc := newTestService(&fakeTallyStore{}, nil)

	for _, raw := range []string{"31-08-2026", "2026-13-01", "yesterday"} {
		if _, _, err := svc.MostVoted(context.Background(), raw); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected invalid date for %q, got %v", raw, err)
		}
	}
}

func TestMostVotedDefaultsToToday(t *testing.T) {
	store := &fakeTallyStore{}
	svc := newTestService(store, nil)

	_, resolved, err := svc.MostVoted(context.Background(), "")
	if err != nil {
		t.Fatalf("most voted: %v", err)
	}
	if want := rules.DayKey(time.Now().UTC(), time.UTC); resolved != want {
		t.Fatalf("expected today %q, got %q", want, resolved)
	}
}

func TestMostVotedServesCacheHit(t *testing.T) {
	day := "2026-08-31"
	cached := []model.MostVotedRestaurant{{RestaurantID: 7, RestaurantName: "Cached", TotalVotes: 9.0, TotalVoterCount: 5}}
	store := &fakeTallyStore{}
	cache := &fakeCache{entries: map[string][]model.MostVotedRestaurant{day: cached}}
	svc := newTestService(store, cache)

	winners, _, err := svc.MostVoted(context.Background(), day)
	if err != nil {
		t.Fatalf("most voted: %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("cache hit must not reach the store, calls=%d", store.calls)
	}
	if len(winners) != 1 || winners[0].RestaurantID != 7 {
		t.Fatalf("expected cached winners, got %+v", winners)
	}
}

func TestMostVotedFillsCacheOnMiss(t *testing.T) {
	day := "2026-08-31"
	store := &fakeTallyStore{tallies: map[string][]model.MostVotedRestaurant{
		day: {{RestaurantID: 1, RestaurantName: "Alpha", TotalVotes: 1.0, TotalVoterCount: 1}},
	}}
	cache := &fakeCache{}
	svc := newTestService(store, cache)

	if _, _, err := svc.MostVoted(context.Background(), day); err != nil {
		t.Fatalf("most voted: %v", err)
	}
	if _, ok := cache.entries[day]; !ok {
		t.Fatalf("expected cache to be filled on miss")
	}
}
