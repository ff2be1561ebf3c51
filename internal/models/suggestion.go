package models

// Suggestion is a proposed option attached to a poll.
type Suggestion struct {
	ID     int64
	PollID int64

	// Details is the free-form proposal (e.g. "Thai place on 5th").
	Details string

	// Votes is the signed tally. It has no floor and may go negative.
	Votes int64
}

// VoteDelta returns the tally change for a single vote.
func VoteDelta(upvote bool) int64 {
	if upvote {
		return 1
	}
	return -1
}
