package dto

type VotingSettingsResponse struct {
	DailyVoteCapacity int `json:"daily_vote_capacity"`
}

type UpdateVotingSettingsRequest struct {
	DailyVoteCapacity int `json:"daily_vote_capacity"`
}
