package dto

import "github.com/SyncBAND/besteats/internal/domain/model"

type MostVotedEntry struct {
	RestaurantID    int64   `json:"restaurant_id"`
	RestaurantName  string  `json:"restaurant_name"`
	TotalVotes      float64 `json:"total_votes"`
	TotalVoterCount int     `json:"total_voter_count"`
}

type MostVotedResponse struct {
	Date    string           `json:"date"`
	Winners []MostVotedEntry `json:"winners"`
}

func NewMostVotedResponse(dayKey string, winners []model.MostVotedRestaurant) MostVotedResponse {
	out := MostVotedResponse{Date: dayKey, Winners: make([]MostVotedEntry, 0, len(winners))}
	for _, w := range winners {
		out.Winners = append(out.Winners, MostVotedEntry{
			RestaurantID:    w.RestaurantID,
			RestaurantName:  w.RestaurantName,
			TotalVotes:      w.TotalVotes,
			TotalVoterCount: w.TotalVoterCount,
		})
	}
	return out
}
