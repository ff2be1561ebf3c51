package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/lunchpoll/internal/models"
)

// CreateSuggestion persists a suggestion and populates suggestion.ID.
func (s *SQLiteStore) CreateSuggestion(ctx context.Context, suggestion *models.Suggestion) error {
	err := s.q.QueryRowContext(ctx,
		"INSERT INTO suggestions (poll_id, details, votes) VALUES (?, ?, ?) RETURNING id",
		suggestion.PollID, suggestion.Details, suggestion.Votes,
	).Scan(&suggestion.ID)
	if isForeignKeyViolation(err) {
		return notFound("poll %d not found", suggestion.PollID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert suggestion: %w", err)
	}
	return nil
}

// AddSuggestionVotes applies delta in a single UPDATE so concurrent votes
// never lose updates.
func (s *SQLiteStore) AddSuggestionVotes(ctx context.Context, pollID, suggestionID, delta int64) (*models.Suggestion, error) {
	sg := &models.Suggestion{}
	err := s.q.QueryRowContext(ctx,
		`UPDATE suggestions
		 SET votes = votes + ?
		 WHERE id = ? AND poll_id = ?
		 RETURNING id, poll_id, details, votes`,
		delta, suggestionID, pollID,
	).Scan(&sg.ID, &sg.PollID, &sg.Details, &sg.Votes)
	if err == sql.ErrNoRows {
		return nil, notFound("suggestion not found for poll %d", pollID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update suggestion votes: %w", err)
	}
	return sg, nil
}
