package rules

import "time"

const (
	// DefaultDailyVoteCapacity is the fallback daily allotment when the
	// runtime setting is absent.
	DefaultDailyVoteCapacity = 10

	FirstVoteWeight  = 1.0
	SecondVoteWeight = 0.5
	ExtraVoteWeight  = 0.25
)

const dayLayout = "2006-01-02"

// VoteWeightDelta returns the weight one more vote adds when the user has
// already cast count votes for the restaurant on that day. The first two
// engagements weigh most, everything after flattens to a quarter.
func VoteWeightDelta(count int) float64 {
	switch {
	case count <= 0:
		return FirstVoteWeight
	case count == 1:
		return SecondVoteWeight
	default:
		return ExtraVoteWeight
	}
}

// UnvoteWeightDelta returns the weight removed by reversing one vote while
// the accumulated count is count. Reversing the only remaining vote takes
// the total back to exactly zero.
func UnvoteWeightDelta(count int) float64 {
	switch {
	case count <= 1:
		return FirstVoteWeight
	case count == 2:
		return SecondVoteWeight
	default:
		return ExtraVoteWeight
	}
}

// TotalWeightFor replays the vote curve from zero: the weight a row must
// carry after count successful votes.
func TotalWeightFor(count int) float64 {
	total := 0.0
	for i := 0; i < count; i++ {
		total += VoteWeightDelta(i)
	}
	return total
}

func DayKey(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(dayLayout)
}

// ParseDay validates a YYYY-MM-DD value and returns it normalized.
func ParseDay(value string) (string, error) {
	t, err := time.Parse(dayLayout, value)
	if err != nil {
		return "", err
	}
	return t.Format(dayLayout), nil
}

// NextResetAt is the next local midnight, the moment every quota goes back
// to capacity.
func NextResetAt(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return next.UTC()
}
