package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmynk/lunchpoll/internal/models"
)

// UpsertUser inserts the user for its external id, or refreshes the username
// of the existing row. user.ID is populated either way.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *models.User) error {
	externalID := strings.TrimSpace(user.ExternalID)
	if externalID == "" {
		return fmt.Errorf("external id is required")
	}

	query := `
		INSERT INTO users (username, external_id)
		VALUES (?, ?)
		ON CONFLICT (external_id) DO UPDATE SET username = excluded.username
		RETURNING id
	`

	if err := s.q.QueryRowContext(ctx, query, user.Username, externalID).Scan(&user.ID); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	user.ExternalID = externalID

	return nil
}

// GetUser retrieves a user by their ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT id, username, external_id
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	err := s.q.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.ExternalID,
	)
	if err == sql.ErrNoRows {
		return nil, notFound("user %d not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
