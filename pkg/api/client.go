package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// GroupServiceClient is a client for lunchpoll.v1.GroupService.
type GroupServiceClient struct {
	createGroup      *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup         *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups       *connect.Client[ListGroupsRequest, ListGroupsResponse]
	updateGroup      *connect.Client[UpdateGroupRequest, UpdateGroupResponse]
	inviteMember     *connect.Client[InviteMemberRequest, InviteMemberResponse]
	resendInvitation *connect.Client[ResendInvitationRequest, ResendInvitationResponse]
	revokeInvitation *connect.Client[RevokeInvitationRequest, RevokeInvitationResponse]
	joinGroup        *connect.Client[JoinGroupRequest, JoinGroupResponse]
}

// NewGroupServiceClient constructs a client for the group service at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &GroupServiceClient{
		createGroup:      connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:       connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		updateGroup:      connect.NewClient[UpdateGroupRequest, UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		inviteMember:     connect.NewClient[InviteMemberRequest, InviteMemberResponse](httpClient, baseURL+GroupServiceInviteMemberProcedure, opts...),
		resendInvitation: connect.NewClient[ResendInvitationRequest, ResendInvitationResponse](httpClient, baseURL+GroupServiceResendInvitationProcedure, opts...),
		revokeInvitation: connect.NewClient[RevokeInvitationRequest, RevokeInvitationResponse](httpClient, baseURL+GroupServiceRevokeInvitationProcedure, opts...),
		joinGroup:        connect.NewClient[JoinGroupRequest, JoinGroupResponse](httpClient, baseURL+GroupServiceJoinGroupProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) InviteMember(ctx context.Context, req *connect.Request[InviteMemberRequest]) (*connect.Response[InviteMemberResponse], error) {
	return c.inviteMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ResendInvitation(ctx context.Context, req *connect.Request[ResendInvitationRequest]) (*connect.Response[ResendInvitationResponse], error) {
	return c.resendInvitation.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RevokeInvitation(ctx context.Context, req *connect.Request[RevokeInvitationRequest]) (*connect.Response[RevokeInvitationResponse], error) {
	return c.revokeInvitation.CallUnary(ctx, req)
}

func (c *GroupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

// PollServiceClient is a client for lunchpoll.v1.PollService.
type PollServiceClient struct {
	getUserPoll      *connect.Client[GetUserPollRequest, GetUserPollResponse]
	createSuggestion *connect.Client[CreateSuggestionRequest, CreateSuggestionResponse]
	voteOnSuggestion *connect.Client[VoteOnSuggestionRequest, VoteOnSuggestionResponse]
}

// NewPollServiceClient constructs a client for the poll service at baseURL.
func NewPollServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PollServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &PollServiceClient{
		getUserPoll:      connect.NewClient[GetUserPollRequest, GetUserPollResponse](httpClient, baseURL+PollServiceGetUserPollProcedure, opts...),
		createSuggestion: connect.NewClient[CreateSuggestionRequest, CreateSuggestionResponse](httpClient, baseURL+PollServiceCreateSuggestionProcedure, opts...),
		voteOnSuggestion: connect.NewClient[VoteOnSuggestionRequest, VoteOnSuggestionResponse](httpClient, baseURL+PollServiceVoteOnSuggestionProcedure, opts...),
	}
}

func (c *PollServiceClient) GetUserPoll(ctx context.Context, req *connect.Request[GetUserPollRequest]) (*connect.Response[GetUserPollResponse], error) {
	return c.getUserPoll.CallUnary(ctx, req)
}

func (c *PollServiceClient) CreateSuggestion(ctx context.Context, req *connect.Request[CreateSuggestionRequest]) (*connect.Response[CreateSuggestionResponse], error) {
	return c.createSuggestion.CallUnary(ctx, req)
}

func (c *PollServiceClient) VoteOnSuggestion(ctx context.Context, req *connect.Request[VoteOnSuggestionRequest]) (*connect.Response[VoteOnSuggestionResponse], error) {
	return c.voteOnSuggestion.CallUnary(ctx, req)
}
