package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/lunchpoll/internal/groups"
	"github.com/mmynk/lunchpoll/internal/validation"
	"github.com/mmynk/lunchpoll/pkg/api"
)

// PollService implements the Connect PollService.
//
// Any authenticated user may read a poll or propose and vote on its
// suggestions; membership is only required of the poll's owner.
type PollService struct {
	membership *groups.MembershipPollManager
	voting     *groups.SuggestionVoting
}

var _ api.PollServiceHandler = (*PollService)(nil)

// NewPollService creates a new PollService backed by the core managers.
func NewPollService(m *groups.Managers) *PollService {
	return &PollService{membership: m.Membership, voting: m.Voting}
}

// GetUserPoll returns a member's poll with its suggestions.
func (s *PollService) GetUserPoll(ctx context.Context, req *connect.Request[api.GetUserPollRequest]) (*connect.Response[api.GetUserPollResponse], error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	slog.Info("GetUserPoll request received", "group_id", req.Msg.GroupID, "target_user_id", req.Msg.UserID)

	groupID, userID, err := pollTarget(req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}

	poll, err := s.membership.GetUserPoll(ctx, groupID, userID)
	if err != nil {
		slog.Error("GetUserPoll failed", "group_id", groupID, "target_user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetUserPollResponse{Poll: toAPIPoll(poll)}), nil
}

// CreateSuggestion adds a suggestion to a member's poll.
func (s *PollService) CreateSuggestion(ctx context.Context, req *connect.Request[api.CreateSuggestionRequest]) (*connect.Response[api.CreateSuggestionResponse], error) {
	callerID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateSuggestion request received",
		"group_id", req.Msg.GroupID,
		"target_user_id", req.Msg.UserID,
		"user_id", callerID,
	)

	groupID, userID, err := pollTarget(req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	details, err := validation.Suggestion(req.Msg.Details).Unwrap()
	if err != nil {
		return nil, toConnectError(err)
	}

	suggestion, err := s.voting.CreateSuggestion(ctx, groupID, userID, details)
	if err != nil {
		slog.Error("CreateSuggestion failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Suggestion created", "suggestion_id", suggestion.ID, "poll_id", suggestion.PollID)
	return connect.NewResponse(&api.CreateSuggestionResponse{Suggestion: toAPISuggestion(*suggestion)}), nil
}

// VoteOnSuggestion applies one vote to a suggestion on a member's poll.
func (s *PollService) VoteOnSuggestion(ctx context.Context, req *connect.Request[api.VoteOnSuggestionRequest]) (*connect.Response[api.VoteOnSuggestionResponse], error) {
	callerID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("VoteOnSuggestion request received",
		"group_id", req.Msg.GroupID,
		"suggestion_id", req.Msg.SuggestionID,
		"upvote", req.Msg.Upvote,
		"user_id", callerID,
	)

	groupID, userID, err := pollTarget(req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	vote, err := validation.VoteRequest(req.Msg.SuggestionID, req.Msg.Upvote).Unwrap()
	if err != nil {
		return nil, toConnectError(err)
	}

	suggestion, err := s.voting.VoteOnSuggestion(ctx, groupID, userID, vote.SuggestionID, vote.Upvote)
	if err != nil {
		slog.Error("VoteOnSuggestion failed", "group_id", groupID, "suggestion_id", vote.SuggestionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.VoteOnSuggestionResponse{Suggestion: toAPISuggestion(*suggestion)}), nil
}

func pollTarget(rawGroupID, rawUserID int64) (int64, int64, error) {
	groupID, err := validation.ID("groupId", rawGroupID).Unwrap()
	if err != nil {
		return 0, 0, err
	}
	userID, err := validation.ID("userId", rawUserID).Unwrap()
	if err != nil {
		return 0, 0, err
	}
	return groupID, userID, nil
}
