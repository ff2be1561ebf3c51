// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/lunchpoll/internal/models"
)

// Store defines the persistence operations used by the group voting core.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the core.
//
// Lookups that find nothing return an apperrors NotFound error. Writes that
// would violate a uniqueness constraint return an apperrors Conflict error.
type Store interface {
	// UpsertUser creates the user for externalID, or updates its username
	// if it already exists. user.ID is populated by the store.
	UpsertUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// CreateGroup persists a new group. group.ID is populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, groupID int64) (*models.Group, error)

	// UpdateGroup persists the mutable fields of an existing group.
	// OwnerID is never written.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// ListGroupsForUser returns every group in which the user holds a poll.
	ListGroupsForUser(ctx context.Context, userID int64) ([]*models.Group, error)

	// CreatePoll persists a new poll. Conflict if the (GroupID, UserID)
	// pair already has one, NotFound if the group or user does not exist.
	CreatePoll(ctx context.Context, poll *models.Poll) error

	// DeletePolls removes the polls of the given users in a group, together
	// with their suggestions. Missing polls are ignored.
	DeletePolls(ctx context.Context, groupID int64, userIDs []int64) error

	// FindMembership returns the user's poll in the group, or NotFound.
	FindMembership(ctx context.Context, groupID, userID int64) (*models.Poll, error)

	// ListPolls returns all polls of a group.
	ListPolls(ctx context.Context, groupID int64) ([]*models.Poll, error)

	// GetPollDetail returns the user's poll joined with the group name, the
	// username and all suggestions, or NotFound.
	GetPollDetail(ctx context.Context, groupID, userID int64) (*models.PollDetail, error)

	// CreateInvitation persists an invitation. Conflict if one already exists
	// for (GroupID, Email).
	CreateInvitation(ctx context.Context, inv *models.Invitation) error

	// GetInvitation returns the live invitation for (groupID, email), or NotFound.
	GetInvitation(ctx context.Context, groupID int64, email string) (*models.Invitation, error)

	// GetInvitationByToken returns the live invitation for (groupID, token), or NotFound.
	GetInvitationByToken(ctx context.Context, groupID int64, token string) (*models.Invitation, error)

	// DeleteInvitation removes the invitation for (groupID, email).
	// Deleting a missing invitation is not an error.
	DeleteInvitation(ctx context.Context, groupID int64, email string) error

	// CreateSuggestion persists a suggestion. suggestion.ID is populated by the store.
	CreateSuggestion(ctx context.Context, suggestion *models.Suggestion) error

	// AddSuggestionVotes atomically adds delta to the suggestion's tally and
	// returns the updated suggestion. The suggestion must belong to pollID,
	// otherwise NotFound.
	AddSuggestionVotes(ctx context.Context, pollID, suggestionID, delta int64) (*models.Suggestion, error)

	// WithTx runs fn against a Store bound to a single transaction.
	// The transaction commits if fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// Close releases any resources held by the store.
	Close() error
}
