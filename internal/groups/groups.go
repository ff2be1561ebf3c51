package groups

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/mmynk/lunchpoll/internal/errors"
	"github.com/mmynk/lunchpoll/internal/models"
	"github.com/mmynk/lunchpoll/internal/storage"
)

// GroupManager owns the group lifecycle.
type GroupManager struct {
	store       storage.Store
	invitations *InvitationManager
}

// NewGroupManager creates a GroupManager.
func NewGroupManager(store storage.Store, invitations *InvitationManager) *GroupManager {
	return &GroupManager{store: store, invitations: invitations}
}

// CreateGroup persists the group and the owner's poll atomically, then
// invites in.Emails. The created group is returned even when inviting fails:
// if the only failures are undelivered emails the error is a bare
// *DeliveryError, otherwise a joined error of *InviteError values and the
// *DeliveryError. SplitInviteErrors recovers the addresses.
func (m *GroupManager) CreateGroup(ctx context.Context, ownerID int64, in models.NewGroupInput) (*models.Group, error) {
	group := &models.Group{
		GroupName:   in.GroupName,
		OwnerID:     ownerID,
		VoteEndDate: in.VoteEndDate,
		MinPrice:    in.MinPrice,
		MaxPrice:    in.MaxPrice,
	}

	err := m.store.WithTx(ctx, func(tx storage.Store) error {
		if err := tx.CreateGroup(ctx, group); err != nil {
			return err
		}
		return tx.CreatePoll(ctx, &models.Poll{GroupID: group.ID, UserID: ownerID})
	})
	if err != nil {
		return nil, err
	}

	if len(in.Emails) == 0 {
		return group, nil
	}

	var delivery DeliveryError
	var errs []error
	for _, addr := range in.Emails {
		_, err := m.invitations.InviteMember(ctx, ownerID, group.ID, addr)
		var de *DeliveryError
		switch {
		case err == nil:
		case errors.As(err, &de):
			delivery.Failures = append(delivery.Failures, de.Failures...)
		default:
			errs = append(errs, &InviteError{Email: addr, Err: err})
		}
	}
	if len(delivery.Failures) > 0 {
		if len(errs) == 0 {
			return group, &delivery
		}
		errs = append(errs, &delivery)
	}
	return group, errors.Join(errs...)
}

// GetGroupByID returns the group if the user is a member of it.
// Non-members get NotFound so the group's existence is not disclosed.
func (m *GroupManager) GetGroupByID(ctx context.Context, userID, groupID int64) (*models.Group, error) {
	if _, err := m.store.FindMembership(ctx, groupID, userID); err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeNotFound {
			return nil, apperrors.Newf(apperrors.CodeNotFound, "group %d not found", groupID)
		}
		return nil, err
	}
	return m.store.GetGroup(ctx, groupID)
}

// GetUserGroups returns every group in which the user holds a poll.
func (m *GroupManager) GetUserGroups(ctx context.Context, userID int64) ([]*models.Group, error) {
	return m.store.ListGroupsForUser(ctx, userID)
}

// InviteMember is a shortcut for InvitationManager.InviteMember.
func (m *GroupManager) InviteMember(ctx context.Context, ownerID, groupID int64, emailAddr string) (*models.Invitation, error) {
	return m.invitations.InviteMember(ctx, ownerID, groupID, emailAddr)
}

// UpdateGroup applies an owner's patch. Scalar fields, added and removed
// participants are written in one transaction; any failure leaves the group
// and its membership unchanged.
func (m *GroupManager) UpdateGroup(ctx context.Context, userID, groupID int64, patch models.GroupPatch) (*models.Group, error) {
	var updated *models.Group

	err := m.store.WithTx(ctx, func(tx storage.Store) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if group.OwnerID != userID {
			return apperrors.Newf(apperrors.CodeUnauthorized, "only the owner of group %d may update it", groupID)
		}

		patch.Apply(group)
		if group.MinPrice != nil && group.MaxPrice != nil && *group.MinPrice > *group.MaxPrice {
			return apperrors.WithMetadata(apperrors.CodeBadRequest,
				fmt.Sprintf("minPrice %v exceeds maxPrice %v", *group.MinPrice, *group.MaxPrice),
				map[string]string{"maxPrice": "must be greater than or equal to minPrice"},
			)
		}

		if len(patch.NewParticipants) > 0 {
			if err := addParticipants(ctx, tx, group.ID, patch.NewParticipants); err != nil {
				return err
			}
		}

		if len(patch.RemovedParticipants) > 0 {
			for _, id := range patch.RemovedParticipants {
				if id == group.OwnerID {
					return apperrors.WithMetadata(apperrors.CodeBadRequest,
						"the owner cannot be removed from their own group",
						map[string]string{"removedParticipants": fmt.Sprint(id)},
					)
				}
			}
			if err := tx.DeletePolls(ctx, group.ID, patch.RemovedParticipants); err != nil {
				return err
			}
		}

		if err := tx.UpdateGroup(ctx, group); err != nil {
			return err
		}
		updated = group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func addParticipants(ctx context.Context, tx storage.Store, groupID int64, userIDs []int64) error {
	polls, err := tx.ListPolls(ctx, groupID)
	if err != nil {
		return err
	}
	members := make(map[int64]struct{}, len(polls))
	for _, p := range polls {
		members[p.UserID] = struct{}{}
	}
	for _, id := range userIDs {
		if _, ok := members[id]; ok {
			return apperrors.WithMetadata(apperrors.CodeConflict,
				fmt.Sprintf("user %d is already a member of group %d", id, groupID),
				map[string]string{"user_id": fmt.Sprint(id)},
			)
		}
	}
	for _, id := range userIDs {
		if err := tx.CreatePoll(ctx, &models.Poll{GroupID: groupID, UserID: id}); err != nil {
			return err
		}
	}
	return nil
}
