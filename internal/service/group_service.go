package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/lunchpoll/internal/groups"
	"github.com/mmynk/lunchpoll/internal/middleware"
	"github.com/mmynk/lunchpoll/internal/validation"
	"github.com/mmynk/lunchpoll/pkg/api"
)

// GroupService implements the Connect GroupService.
type GroupService struct {
	groups      *groups.GroupManager
	invitations *groups.InvitationManager
	membership  *groups.MembershipPollManager
}

var _ api.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService backed by the core managers.
func NewGroupService(m *groups.Managers) *GroupService {
	return &GroupService{groups: m.Groups, invitations: m.Invitations, membership: m.Membership}
}

func requireUser(ctx context.Context) (int64, error) {
	userID := middleware.GetUserID(ctx)
	if userID == 0 {
		return 0, connect.NewError(connect.CodeUnauthenticated, errNoPrincipal)
	}
	return userID, nil
}

// CreateGroup creates a group owned by the caller and invites the listed emails.
// Addresses that could not be invited are listed in the response.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"user_id", userID,
		"name", req.Msg.GroupName,
		"emails_count", len(req.Msg.Emails),
	)

	in, err := validation.CreateGroup(validation.CreateGroupRequest{
		GroupName:   req.Msg.GroupName,
		VoteEndDate: req.Msg.VoteEndDate,
		MinPrice:    req.Msg.MinPrice,
		MaxPrice:    req.Msg.MaxPrice,
		Emails:      req.Msg.Emails,
	}).Unwrap()
	if err != nil {
		return nil, toConnectError(err)
	}

	group, err := s.groups.CreateGroup(ctx, userID, in)
	if group == nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	// The group is committed at this point, so invite failures are reported
	// in the response rather than as an RPC error.
	resp := &api.CreateGroupResponse{Group: toAPIGroup(group)}
	if err != nil {
		resp.UndeliveredEmails, resp.FailedEmails = groups.SplitInviteErrors(err)
		slog.Warn("CreateGroup invitations incomplete",
			"group_id", group.ID,
			"undelivered", resp.UndeliveredEmails,
			"failed", resp.FailedEmails,
			"error", err,
		)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(resp), nil
}

// GetGroup retrieves a group the caller is a member of.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID, "user_id", userID)

	groupID, err := validation.ID("groupId", req.Msg.GroupID).Unwrap()
	if err != nil {
		return nil, toConnectError(err)
	}

	group, err := s.groups.GetGroupByID(ctx, userID, groupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves every group the caller is a member of.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListGroups request received", "user_id", userID)

	found, err := s.groups.GetUserGroups(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Group, len(found))
	for i, g := range found {
		out[i] = toAPIGroup(g)
	}

	slog.Info("ListGroups successful", "count", len(out))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup applies the owner's changes to a group.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateGroup request received",
		"group_id", req.Msg.GroupID,
		"user_id", userID,
		"new_participants", len(req.Msg.NewParticipants),
		"removed_participants", len(req.Msg.RemovedParticipants),
	)

	groupID, err := validation.ID("groupId", req.Msg.GroupID).Unwrap()
	if err != nil {
		return nil, toConnectError(err)
	}
	patch, err := validation.GroupPatch(validation.GroupPatchRequest{
		GroupName:           req.Msg.GroupName,
		VoteEndDate:         req.Msg.VoteEndDate,
		MinPrice:            req.Msg.MinPrice,
		MaxPrice:            req.Msg.MaxPrice,
		ClearMinPrice:       req.Msg.ClearMinPrice,
		ClearMaxPrice:       req.Msg.ClearMaxPrice,
		NewParticipants:     req.Msg.NewParticipants,
		RemovedParticipants: req.Msg.RemovedParticipants,
	}).Unwrap()
	if err != nil {
		return nil, toConnectError(err)
	}

	group, err := s.groups.UpdateGroup(ctx, userID, groupID, patch)
	if err != nil {
		slog.Error("UpdateGroup failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group updated", "group_id", group.ID)
	return connect.NewResponse(&api.UpdateGroupResponse{Group: toAPIGroup(group)}), nil
}

// InviteMember invites an email address to the caller's group. When the
// email cannot be sent the invitation is kept and the call fails with
// Unavailable; ResendInvitation retries with the same token.
func (s *GroupService) InviteMember(ctx context.Context, req *connect.Request[api.InviteMemberRequest]) (*connect.Response[api.InviteMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("InviteMember request received", "group_id", req.Msg.GroupID, "user_id", userID)

	groupID, email, err := invitationTarget(req.Msg.GroupID, req.Msg.Email)
	if err != nil {
		return nil, toConnectError(err)
	}

	inv, err := s.invitations.InviteMember(ctx, userID, groupID, email)
	if err != nil {
		slog.Error("InviteMember failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member invited", "group_id", groupID)
	return connect.NewResponse(&api.InviteMemberResponse{Invitation: toAPIInvitation(inv)}), nil
}

// ResendInvitation emails the live invitation again.
func (s *GroupService) ResendInvitation(ctx context.Context, req *connect.Request[api.ResendInvitationRequest]) (*connect.Response[api.ResendInvitationResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ResendInvitation request received", "group_id", req.Msg.GroupID, "user_id", userID)

	groupID, email, err := invitationTarget(req.Msg.GroupID, req.Msg.Email)
	if err != nil {
		return nil, toConnectError(err)
	}

	inv, err := s.invitations.ResendInvitation(ctx, userID, groupID, email)
	if err != nil {
		slog.Error("ResendInvitation failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ResendInvitationResponse{Invitation: toAPIInvitation(inv)}), nil
}

// RevokeInvitation deletes a live invitation. Revoking twice succeeds.
func (s *GroupService) RevokeInvitation(ctx context.Context, req *connect.Request[api.RevokeInvitationRequest]) (*connect.Response[api.RevokeInvitationResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RevokeInvitation request received", "group_id", req.Msg.GroupID, "user_id", userID)

	groupID, email, err := invitationTarget(req.Msg.GroupID, req.Msg.Email)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.invitations.CancelInvitation(ctx, userID, groupID, email); err != nil {
		slog.Error("RevokeInvitation failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RevokeInvitationResponse{}), nil
}

// JoinGroup redeems an invitation token for membership.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("JoinGroup request received", "group_id", req.Msg.GroupID, "user_id", userID)

	groupID, err := validation.ID("groupId", req.Msg.GroupID).Unwrap()
	if err != nil {
		return nil, toConnectError(err)
	}
	tok, err := validation.JoinToken(req.Msg.Token).Unwrap()
	if err != nil {
		return nil, toConnectError(err)
	}

	group, err := s.membership.JoinGroup(ctx, userID, groupID, tok)
	if err != nil {
		slog.Error("JoinGroup failed", "group_id", groupID, "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member joined", "group_id", group.ID, "user_id", userID)
	return connect.NewResponse(&api.JoinGroupResponse{Group: toAPIGroup(group)}), nil
}

func invitationTarget(rawGroupID int64, rawEmail string) (int64, string, error) {
	groupID, err := validation.ID("groupId", rawGroupID).Unwrap()
	if err != nil {
		return 0, "", err
	}
	email, err := validation.Invite(rawEmail).Unwrap()
	if err != nil {
		return 0, "", err
	}
	return groupID, email, nil
}
