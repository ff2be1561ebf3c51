package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// GroupServiceHandler is implemented by the group service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error)
	InviteMember(context.Context, *connect.Request[InviteMemberRequest]) (*connect.Response[InviteMemberResponse], error)
	ResendInvitation(context.Context, *connect.Request[ResendInvitationRequest]) (*connect.Response[ResendInvitationResponse], error)
	RevokeInvitation(context.Context, *connect.Request[RevokeInvitationRequest]) (*connect.Response[RevokeInvitationResponse], error)
	JoinGroup(context.Context, *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error)
}

// PollServiceHandler is implemented by the poll service.
type PollServiceHandler interface {
	GetUserPoll(context.Context, *connect.Request[GetUserPollRequest]) (*connect.Response[GetUserPollResponse], error)
	CreateSuggestion(context.Context, *connect.Request[CreateSuggestionRequest]) (*connect.Response[CreateSuggestionResponse], error)
	VoteOnSuggestion(context.Context, *connect.Request[VoteOnSuggestionRequest]) (*connect.Response[VoteOnSuggestionResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	routes := map[string]http.Handler{
		GroupServiceCreateGroupProcedure:      connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:         connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure:       connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceUpdateGroupProcedure:      connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts...),
		GroupServiceInviteMemberProcedure:     connect.NewUnaryHandler(GroupServiceInviteMemberProcedure, svc.InviteMember, opts...),
		GroupServiceResendInvitationProcedure: connect.NewUnaryHandler(GroupServiceResendInvitationProcedure, svc.ResendInvitation, opts...),
		GroupServiceRevokeInvitationProcedure: connect.NewUnaryHandler(GroupServiceRevokeInvitationProcedure, svc.RevokeInvitation, opts...),
		GroupServiceJoinGroupProcedure:        connect.NewUnaryHandler(GroupServiceJoinGroupProcedure, svc.JoinGroup, opts...),
	}
	return "/" + GroupServiceName + "/", route(routes)
}

// NewPollServiceHandler builds an HTTP handler from the service implementation.
func NewPollServiceHandler(svc PollServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	routes := map[string]http.Handler{
		PollServiceGetUserPollProcedure:      connect.NewUnaryHandler(PollServiceGetUserPollProcedure, svc.GetUserPoll, opts...),
		PollServiceCreateSuggestionProcedure: connect.NewUnaryHandler(PollServiceCreateSuggestionProcedure, svc.CreateSuggestion, opts...),
		PollServiceVoteOnSuggestionProcedure: connect.NewUnaryHandler(PollServiceVoteOnSuggestionProcedure, svc.VoteOnSuggestion, opts...),
	}
	return "/" + PollServiceName + "/", route(routes)
}

func route(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
