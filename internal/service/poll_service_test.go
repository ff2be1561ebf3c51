package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/lunchpoll/pkg/api"
)

func TestSuggestionVoting(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createLunch(t, env)
	alice := env.ids["alice"]

	created, err := env.polls.CreateSuggestion(ctx, as(env, "bob", &api.CreateSuggestionRequest{
		GroupID: group.ID,
		UserID:  alice,
		Details: "Thai place on 5th",
	}))
	if err != nil {
		t.Fatalf("CreateSuggestion failed: %v", err)
	}
	s := created.Msg.Suggestion
	if s.Votes != 0 {
		t.Errorf("expected 0 votes, got %d", s.Votes)
	}

	var last api.Suggestion
	for _, up := range []bool{true, false, false} {
		resp, err := env.polls.VoteOnSuggestion(ctx, as(env, "alice", &api.VoteOnSuggestionRequest{
			GroupID:      group.ID,
			UserID:       alice,
			SuggestionID: s.ID,
			Upvote:       up,
		}))
		if err != nil {
			t.Fatalf("VoteOnSuggestion(%v) failed: %v", up, err)
		}
		last = resp.Msg.Suggestion
	}
	if last.Votes != -1 {
		t.Errorf("expected -1 votes, got %d", last.Votes)
	}

	poll, err := env.polls.GetUserPoll(ctx, as(env, "carol", &api.GetUserPollRequest{GroupID: group.ID, UserID: alice}))
	if err != nil {
		t.Fatalf("GetUserPoll failed: %v", err)
	}
	if poll.Msg.Poll.GroupName != "Lunch" || poll.Msg.Poll.Username != "alice" {
		t.Errorf("unexpected poll %+v", poll.Msg.Poll)
	}
	if len(poll.Msg.Poll.Suggestions) != 1 || poll.Msg.Poll.Suggestions[0].Votes != -1 {
		t.Errorf("unexpected suggestions %+v", poll.Msg.Poll.Suggestions)
	}
}

func TestPollNotFound(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createLunch(t, env)

	_, err := env.polls.GetUserPoll(ctx, as(env, "alice", &api.GetUserPollRequest{GroupID: group.ID, UserID: env.ids["bob"]}))
	requireConnectCode(t, err, connect.CodeNotFound)

	_, err = env.polls.CreateSuggestion(ctx, as(env, "alice", &api.CreateSuggestionRequest{
		GroupID: group.ID,
		UserID:  env.ids["bob"],
		Details: "Tacos",
	}))
	requireConnectCode(t, err, connect.CodeNotFound)

	_, err = env.polls.VoteOnSuggestion(ctx, as(env, "alice", &api.VoteOnSuggestionRequest{
		GroupID:      group.ID,
		UserID:       env.ids["alice"],
		SuggestionID: 999,
		Upvote:       true,
	}))
	requireConnectCode(t, err, connect.CodeNotFound)
}

func TestPollValidation(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createLunch(t, env)

	_, err := env.polls.CreateSuggestion(ctx, as(env, "alice", &api.CreateSuggestionRequest{
		GroupID: group.ID,
		UserID:  env.ids["alice"],
		Details: "   ",
	}))
	requireConnectCode(t, err, connect.CodeInvalidArgument)
	if api.FieldErrors(err)["details"] == "" {
		t.Errorf("expected details field error, got %v", api.FieldErrors(err))
	}

	_, err = env.polls.VoteOnSuggestion(ctx, as(env, "alice", &api.VoteOnSuggestionRequest{
		GroupID: group.ID,
		UserID:  env.ids["alice"],
	}))
	requireConnectCode(t, err, connect.CodeInvalidArgument)

	_, err = env.polls.GetUserPoll(ctx, connect.NewRequest(&api.GetUserPollRequest{GroupID: group.ID, UserID: 1}))
	requireConnectCode(t, err, connect.CodeUnauthenticated)
}
