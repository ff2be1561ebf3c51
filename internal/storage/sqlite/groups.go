package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/lunchpoll/internal/models"
)

const groupColumns = "g.id, g.group_name, g.owner_id, g.vote_end_date, g.min_price, g.max_price"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*models.Group, error) {
	group := &models.Group{}
	var voteEnd int64
	var minPrice, maxPrice sql.NullFloat64
	if err := row.Scan(&group.ID, &group.GroupName, &group.OwnerID, &voteEnd, &minPrice, &maxPrice); err != nil {
		return nil, err
	}
	group.VoteEndDate = fromMillis(voteEnd)
	group.MinPrice = floatPtr(minPrice)
	group.MaxPrice = floatPtr(maxPrice)
	return group, nil
}

// CreateGroup persists a new group and populates group.ID.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO groups (group_name, owner_id, vote_end_date, min_price, max_price)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		group.GroupName, group.OwnerID, toMillis(group.VoteEndDate),
		nullFloat(group.MinPrice), nullFloat(group.MaxPrice),
	).Scan(&group.ID)
	if isForeignKeyViolation(err) {
		return notFound("user %d not found", group.OwnerID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	row := s.q.QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM groups g WHERE g.id = ?",
		groupID,
	)
	group, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, notFound("group %d not found", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// UpdateGroup writes the mutable fields of a group. The owner is never changed.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	result, err := s.q.ExecContext(ctx,
		`UPDATE groups
		 SET group_name = ?, vote_end_date = ?, min_price = ?, max_price = ?
		 WHERE id = ?`,
		group.GroupName, toMillis(group.VoteEndDate),
		nullFloat(group.MinPrice), nullFloat(group.MaxPrice),
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return notFound("group %d not found", group.ID)
	}
	return nil
}

// ListGroupsForUser returns the groups in which the user holds a poll, oldest first.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID int64) ([]*models.Group, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+groupColumns+`
		 FROM polls p
		 INNER JOIN groups g ON g.id = p.group_id
		 WHERE p.user_id = ?
		 ORDER BY g.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}
