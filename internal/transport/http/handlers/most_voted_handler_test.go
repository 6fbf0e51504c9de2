package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SyncBAND/besteats/internal/domain/model"
	rankingsvc "github.com/SyncBAND/besteats/internal/services/ranking"
)

type tallyStoreStub struct {
	tallies []model.MostVotedRestaurant
}

func (s tallyStoreStub) TallyByDay(context.Context, string) ([]model.MostVotedRestaurant, error) {
	return s.tallies, nil
}

func TestMostVotedReturnsDualMaximumWinner(t *testing.T) {
	svc := rankingsvc.NewService(rankingsvc.Dependencies{
		Tallies: tallyStoreStub{tallies: []model.MostVotedRestaurant{
			{RestaurantID: 1, RestaurantName: "Alpha", TotalVotes: 4.0, TotalVoterCount: 2},
			{RestaurantID: 2, RestaurantName: "Bravo", TotalVotes: 4.0, TotalVoterCount: 3},
		}},
	}, rankingsvc.Config{})
	h := NewMostVotedHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/restaurants/most-voted?date=2026-08-31", nil)
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	var payload struct {
		Date    string `json:"date"`
		Winners []struct {
			RestaurantID int64 `json:"restaurant_id"`
		} `json:"winners"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Date != "2026-08-31" {
		t.Fatalf("unexpected date: %q", payload.Date)
	}
	if len(payload.Winners) != 1 || payload.Winners[0].RestaurantID != 2 {
		t.Fatalf("unexpected winners: %+v", payload.Winners)
	}
}

func TestMostVotedEmptyDayReturnsEmptyList(t *testing.T) {
	svc := rankingsvc.NewService(rankingsvc.Dependencies{Tallies: tallyStoreStub{}}, rankingsvc.Config{})
	h := NewMostVotedHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/restaurants/most-voted?date=2026-08-31", nil)
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	var payload struct {
		Winners []json.RawMessage `json:"winners"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Winners) != 0 {
		t.Fatalf("expected empty winners, got %d", len(payload.Winners))
	}
}

func TestMostVotedRejectsMalformedDate(t *testing.T) {
	svc := rankingsvc.NewService(rankingsvc.Dependencies{Tallies: tallyStoreStub{}}, rankingsvc.Config{})
	h := NewMostVotedHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/restaurants/most-voted?date=31-08-2026", nil)
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, rr); code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code: got %q", code)
	}
}
