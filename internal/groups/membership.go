package groups

import (
	"context"

	apperrors "github.com/mmynk/lunchpoll/internal/errors"
	"github.com/mmynk/lunchpoll/internal/metrics"
	"github.com/mmynk/lunchpoll/internal/models"
	"github.com/mmynk/lunchpoll/internal/storage"
)

// MembershipPollManager turns invitations into membership.
type MembershipPollManager struct {
	store       storage.Store
	invitations *InvitationManager
	metrics     *metrics.Metrics
}

// NewMembershipPollManager creates a MembershipPollManager.
func NewMembershipPollManager(store storage.Store, invitations *InvitationManager, m *metrics.Metrics) *MembershipPollManager {
	return &MembershipPollManager{store: store, invitations: invitations, metrics: m}
}

// JoinGroup redeems token for a poll in the group and consumes the
// invitation. An existing member gets Conflict even if the token is stale.
func (m *MembershipPollManager) JoinGroup(ctx context.Context, userID, groupID int64, tok string) (*models.Group, error) {
	var joined *models.Group

	err := m.store.WithTx(ctx, func(tx storage.Store) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}

		polls, err := tx.ListPolls(ctx, groupID)
		if err != nil {
			return err
		}
		for _, p := range polls {
			if p.UserID == userID {
				return apperrors.Newf(apperrors.CodeConflict, "user %d is already a member of group %d", userID, groupID)
			}
		}

		inv, err := tx.GetInvitationByToken(ctx, groupID, tok)
		if err != nil {
			return err
		}

		if err := tx.CreatePoll(ctx, &models.Poll{GroupID: groupID, UserID: userID}); err != nil {
			return err
		}

		if err := m.invitations.bind(tx).RevokeInvitation(ctx, inv.GroupID, inv.Email); err != nil {
			return err
		}

		joined = group
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.metrics.GroupJoined()
	return joined, nil
}

// GetUserPoll returns the member's poll with group name, username and
// suggestions, or NotFound.
func (m *MembershipPollManager) GetUserPoll(ctx context.Context, groupID, userID int64) (*models.PollDetail, error) {
	return m.store.GetPollDetail(ctx, groupID, userID)
}
