package model

// RatingChange is one entry of a user's contest rating history (user.rating).
// Entries arrive in chronological order.
type RatingChange struct {
	ContestID   int    `json:"contestId"`
	ContestName string `json:"contestName"`
	OldRating   int    `json:"oldRating"`
	NewRating   int    `json:"newRating"`
}

// Delta is the signed rating change earned in this contest.
func (rc RatingChange) Delta() int {
	return rc.NewRating - rc.OldRating
}
