package model

// RestaurantVote is the accumulated weighted vote of one user for one
// restaurant on one day. VoteCount tracks how many vote actions are folded
// into TotalWeight; a row whose count returned to zero stays in storage but
// carries no weight.
type RestaurantVote struct {
	UserID       int64   `json:"user_id"`
	RestaurantID int64   `json:"restaurant_id"`
	VoteDate     string  `json:"vote_date"`
	VoteCount    int     `json:"vote_count"`
	TotalWeight  float64 `json:"total_weight"`
}

// MostVotedRestaurant is one row of the daily tally: summed weight and
// distinct voters for a restaurant.
type MostVotedRestaurant struct {
	RestaurantID    int64   `json:"restaurant_id"`
	RestaurantName  string  `json:"restaurant_name"`
	TotalVotes      float64 `json:"total_votes"`
	TotalVoterCount int     `json:"total_voter_count"`
}
