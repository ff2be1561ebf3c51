package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "github.com/mmynk/lunchpoll/internal/errors"
	"github.com/mmynk/lunchpoll/internal/models"
)

// CreateInvitation persists an invitation.
func (s *SQLiteStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO invitations (group_id, email, token) VALUES (?, ?, ?)",
		inv.GroupID, inv.Email, inv.Token,
	)
	if isUniqueViolation(err) {
		return apperrors.WithMetadata(apperrors.CodeConflict,
			fmt.Sprintf("an invitation for %s already exists in group %d", inv.Email, inv.GroupID),
			map[string]string{"email": inv.Email},
		)
	}
	if isForeignKeyViolation(err) {
		return notFound("group %d not found", inv.GroupID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

// GetInvitation retrieves the live invitation for an email.
func (s *SQLiteStore) GetInvitation(ctx context.Context, groupID int64, email string) (*models.Invitation, error) {
	inv := &models.Invitation{}
	err := s.q.QueryRowContext(ctx,
		"SELECT group_id, email, token FROM invitations WHERE group_id = ? AND email = ?",
		groupID, email,
	).Scan(&inv.GroupID, &inv.Email, &inv.Token)
	if err == sql.ErrNoRows {
		return nil, notFound("no invitation for %s in group %d", email, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// GetInvitationByToken retrieves the live invitation holding a token.
func (s *SQLiteStore) GetInvitationByToken(ctx context.Context, groupID int64, token string) (*models.Invitation, error) {
	inv := &models.Invitation{}
	err := s.q.QueryRowContext(ctx,
		"SELECT group_id, email, token FROM invitations WHERE group_id = ? AND token = ?",
		groupID, token,
	).Scan(&inv.GroupID, &inv.Email, &inv.Token)
	if err == sql.ErrNoRows {
		return nil, notFound("invitation invalid or already used")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// DeleteInvitation removes an invitation. Missing rows are not an error.
func (s *SQLiteStore) DeleteInvitation(ctx context.Context, groupID int64, email string) error {
	_, err := s.q.ExecContext(ctx,
		"DELETE FROM invitations WHERE group_id = ? AND email = ?",
		groupID, email,
	)
	if err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	return nil
}
