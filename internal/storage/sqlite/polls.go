package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "github.com/mmynk/lunchpoll/internal/errors"
	"github.com/mmynk/lunchpoll/internal/models"
)

// CreatePoll persists a new poll and populates poll.ID.
func (s *SQLiteStore) CreatePoll(ctx context.Context, poll *models.Poll) error {
	err := s.q.QueryRowContext(ctx,
		"INSERT INTO polls (group_id, user_id) VALUES (?, ?) RETURNING id",
		poll.GroupID, poll.UserID,
	).Scan(&poll.ID)
	if isUniqueViolation(err) {
		return apperrors.WithMetadata(apperrors.CodeConflict,
			fmt.Sprintf("user %d is already a member of group %d", poll.UserID, poll.GroupID),
			map[string]string{"user_id": fmt.Sprint(poll.UserID)},
		)
	}
	if isForeignKeyViolation(err) {
		return notFound("group %d or user %d not found", poll.GroupID, poll.UserID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

// DeletePolls removes the users' polls from a group. Suggestions cascade.
func (s *SQLiteStore) DeletePolls(ctx context.Context, groupID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(userIDs)+1)
	args = append(args, groupID)
	for _, id := range userIDs {
		args = append(args, id)
	}

	_, err := s.q.ExecContext(ctx,
		"DELETE FROM polls WHERE group_id = ? AND user_id IN ("+placeholders(len(userIDs))+")",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to delete polls: %w", err)
	}
	return nil
}

// FindMembership returns the user's poll in the group.
func (s *SQLiteStore) FindMembership(ctx context.Context, groupID, userID int64) (*models.Poll, error) {
	poll := &models.Poll{}
	err := s.q.QueryRowContext(ctx,
		"SELECT id, group_id, user_id FROM polls WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&poll.ID, &poll.GroupID, &poll.UserID)
	if err == sql.ErrNoRows {
		return nil, notFound("user %d has no poll in group %d", userID, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return poll, nil
}

// ListPolls returns all polls of a group ordered by creation.
func (s *SQLiteStore) ListPolls(ctx context.Context, groupID int64) ([]*models.Poll, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, group_id, user_id FROM polls WHERE group_id = ? ORDER BY id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []*models.Poll
	for rows.Next() {
		poll := &models.Poll{}
		if err := rows.Scan(&poll.ID, &poll.GroupID, &poll.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}

	return polls, nil
}

// GetPollDetail returns the poll with its group name, username and suggestions.
func (s *SQLiteStore) GetPollDetail(ctx context.Context, groupID, userID int64) (*models.PollDetail, error) {
	detail := &models.PollDetail{}
	err := s.q.QueryRowContext(ctx,
		`SELECT p.id, p.group_id, p.user_id, g.group_name, u.username
		 FROM polls p
		 INNER JOIN groups g ON g.id = p.group_id
		 INNER JOIN users u ON u.id = p.user_id
		 WHERE p.group_id = ? AND p.user_id = ?`,
		groupID, userID,
	).Scan(&detail.ID, &detail.GroupID, &detail.UserID, &detail.GroupName, &detail.Username)
	if err == sql.ErrNoRows {
		return nil, notFound("user %d has no poll in group %d", userID, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	rows, err := s.q.QueryContext(ctx,
		"SELECT id, poll_id, details, votes FROM suggestions WHERE poll_id = ? ORDER BY id",
		detail.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	defer rows.Close()

	detail.Suggestions = []models.Suggestion{}
	for rows.Next() {
		var sg models.Suggestion
		if err := rows.Scan(&sg.ID, &sg.PollID, &sg.Details, &sg.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		detail.Suggestions = append(detail.Suggestions, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestions: %w", err)
	}

	return detail, nil
}
