package rules

import (
	"math"
	"testing"
	"time"
)

func TestVoteWeightCurve(t *testing.T) {
	want := []float64{1.0, 1.5, 1.75, 2.0, 2.25, 2.5}
	for votes := 1; votes <= len(want); votes++ {
		got := TotalWeightFor(votes)
		if got != want[votes-1] {
			t.Fatalf("total after %d votes: got %v want %v", votes, got, want[votes-1])
		}
	}
}

func TestExtraVotesAddQuarter(t *testing.T) {
	for count := 2; count < 10; count++ {
		if VoteWeightDelta(count) != ExtraVoteWeight {
			t.Fatalf("vote delta at count %d: got %v want %v", count, VoteWeightDelta(count), ExtraVoteWeight)
		}
	}
}

func TestUnvoteMirrorsVote(t *testing.T) {
	for n := 0; n <= 8; n++ {
		total := 0.0
		for i := 0; i < n; i++ {
			total += VoteWeightDelta(i)
		}
		for count := n; count > 0; count-- {
			total -= UnvoteWeightDelta(count)
		}
		if math.Abs(total) > 0 {
			t.Fatalf("replaying %d votes and %d unvotes left total %v, want 0", n, n, total)
		}
	}
}

func TestDayKeyUsesTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Johannesburg")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC is already the next day at UTC+2.
	at := time.Date(2026, time.March, 4, 23, 30, 0, 0, time.UTC)
	if got := DayKey(at, loc); got != "2026-03-05" {
		t.Fatalf("unexpected day key: %s", got)
	}
	if got := DayKey(at, nil); got != "2026-03-04" {
		t.Fatalf("unexpected UTC day key: %s", got)
	}
}

func TestParseDayRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"2026/03/04", "04-03-2026", "2026-13-01", "yesterday", ""} {
		if _, err := ParseDay(raw); err == nil {
			t.Fatalf("expected parse error for %q", raw)
		}
	}

	day, err := ParseDay("2026-03-04")
	if err != nil {
		t.Fatalf("parse valid day: %v", err)
	}
	if day != "2026-03-04" {
		t.Fatalf("unexpected normalized day: %s", day)
	}
}

func TestNextResetAtIsLocalMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Johannesburg")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	at := time.Date(2026, time.March, 4, 21, 0, 0, 0, time.UTC)
	next := NextResetAt(at, loc)

	local := next.In(loc)
	if local.Hour() != 0 || local.Minute() != 0 || local.Second() != 0 {
		t.Fatalf("reset is not at local midnight: %v", local)
	}
	if !next.After(at) {
		t.Fatalf("reset %v is not after %v", next, at)
	}
	if local.Day() != 5 {
		t.Fatalf("unexpected reset day: %v", local)
	}
}
