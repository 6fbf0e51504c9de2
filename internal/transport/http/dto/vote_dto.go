package dto

import "github.com/SyncBAND/besteats/internal/services/voting"

type VoteResponse struct {
	RestaurantID int64         `json:"restaurant_id"`
	VoteDate     string        `json:"vote_date"`
	VoteCount    int           `json:"vote_count"`
	TotalWeight  float64       `json:"total_weight"`
	Quota        QuotaResponse `json:"quota"`
}

func NewVoteResponse(result voting.Result) VoteResponse {
	return VoteResponse{
		RestaurantID: result.Vote.RestaurantID,
		VoteDate:     result.Vote.VoteDate,
		VoteCount:    result.Vote.VoteCount,
		TotalWeight:  result.Vote.TotalWeight,
		Quota: QuotaResponse{
			Remaining: result.Remaining,
			Capacity:  result.Capacity,
		},
	}
}
