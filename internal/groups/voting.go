package groups

import (
	"context"

	"github.com/mmynk/lunchpoll/internal/metrics"
	"github.com/mmynk/lunchpoll/internal/models"
	"github.com/mmynk/lunchpoll/internal/storage"
)

// SuggestionVoting manages suggestions on a member's poll.
//
// Tallies are unbounded in both directions and the same user may vote on a
// suggestion any number of times.
type SuggestionVoting struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewSuggestionVoting creates a SuggestionVoting.
func NewSuggestionVoting(store storage.Store, m *metrics.Metrics) *SuggestionVoting {
	return &SuggestionVoting{store: store, metrics: m}
}

// CreateSuggestion attaches a new suggestion with zero votes to the target
// member's poll.
func (v *SuggestionVoting) CreateSuggestion(ctx context.Context, groupID, targetUserID int64, details string) (*models.Suggestion, error) {
	poll, err := v.store.FindMembership(ctx, groupID, targetUserID)
	if err != nil {
		return nil, err
	}

	s := &models.Suggestion{PollID: poll.ID, Details: details}
	if err := v.store.CreateSuggestion(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// VoteOnSuggestion adds one vote, up or down, to a suggestion on the target
// member's poll. A suggestion from another poll yields NotFound.
func (v *SuggestionVoting) VoteOnSuggestion(ctx context.Context, groupID, targetUserID, suggestionID int64, upvote bool) (*models.Suggestion, error) {
	poll, err := v.store.FindMembership(ctx, groupID, targetUserID)
	if err != nil {
		return nil, err
	}

	s, err := v.store.AddSuggestionVotes(ctx, poll.ID, suggestionID, models.VoteDelta(upvote))
	if err != nil {
		return nil, err
	}

	v.metrics.Vote(upvote)
	return s, nil
}
