package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/lunchpoll/internal/auth"
	"github.com/mmynk/lunchpoll/internal/groups"
	"github.com/mmynk/lunchpoll/internal/metrics"
	"github.com/mmynk/lunchpoll/internal/models"
	"github.com/mmynk/lunchpoll/internal/storage"
	"github.com/mmynk/lunchpoll/internal/storage/sqlite"
	"github.com/mmynk/lunchpoll/internal/token"
	"github.com/mmynk/lunchpoll/pkg/api"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []models.Invitation
	fail map[string]error
}

func (f *fakeSender) Send(_ context.Context, inv models.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[inv.Email]; err != nil {
		return err
	}
	f.sent = append(f.sent, inv)
	return nil
}

func (f *fakeSender) setFailure(email string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, email)
		return
	}
	f.fail[email] = err
}

func (f *fakeSender) lastToken(t *testing.T, email string) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].Email == email {
			return f.sent[i].Token
		}
	}
	t.Fatalf("no invitation sent to %s", email)
	return ""
}

type testEnv struct {
	groups *api.GroupServiceClient
	polls  *api.PollServiceClient
	store  storage.Store
	sender *fakeSender

	ids    map[string]int64
	tokens map[string]string
}

// setupTestServer starts both services over httptest with three signed-in
// users: alice, bob and carol.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sender := &fakeSender{fail: map[string]error{}}
	managers := groups.New(store, sender,
		token.Static("TOKEN-1", "TOKEN-2", "TOKEN-3", "TOKEN-4", "TOKEN-5", "TOKEN-6"),
		metrics.New(prometheus.NewRegistry()),
	)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	mux := http.NewServeMux()
	RegisterHandlers(mux, managers, jwtManager, nil)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env := &testEnv{
		groups: api.NewGroupServiceClient(http.DefaultClient, server.URL),
		polls:  api.NewPollServiceClient(http.DefaultClient, server.URL),
		store:  store,
		sender: sender,
		ids:    map[string]int64{},
		tokens: map[string]string{},
	}

	for _, name := range []string{"alice", "bob", "carol"} {
		user := &models.User{Username: name, ExternalID: "google:" + name}
		if err := store.UpsertUser(context.Background(), user); err != nil {
			t.Fatalf("failed to create user %s: %v", name, err)
		}
		tok, err := jwtManager.Generate(user)
		if err != nil {
			t.Fatalf("failed to sign token for %s: %v", name, err)
		}
		env.ids[name] = user.ID
		env.tokens[name] = tok
	}
	return env
}

func as[T any](env *testEnv, user string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+env.tokens[user])
	return req
}

func requireConnectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected %v, got %v (%v)", want, got, err)
	}
}

func createLunch(t *testing.T, env *testEnv) api.Group {
	t.Helper()
	resp, err := env.groups.CreateGroup(context.Background(), as(env, "alice", &api.CreateGroupRequest{
		GroupName:   "Lunch",
		VoteEndDate: "2020-01-01",
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)
	group := createLunch(t, env)

	if group.ID != 1 {
		t.Errorf("expected group ID 1, got %d", group.ID)
	}
	if group.OwnerID != env.ids["alice"] {
		t.Errorf("expected owner %d, got %d", env.ids["alice"], group.OwnerID)
	}
	if group.VoteEndDate != "2020-01-01T00:00:00Z" {
		t.Errorf("unexpected vote end date %q", group.VoteEndDate)
	}

	polls, err := env.store.ListPolls(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("ListPolls failed: %v", err)
	}
	if len(polls) != 1 || polls[0].UserID != env.ids["alice"] {
		t.Errorf("expected only the owner's poll, got %+v", polls)
	}
}

func TestCreateGroupRequiresAuth(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		GroupName:   "Lunch",
		VoteEndDate: "2020-01-01",
	}))
	requireConnectCode(t, err, connect.CodeUnauthenticated)
}

func TestCreateGroupValidation(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.groups.CreateGroup(context.Background(), as(env, "alice", &api.CreateGroupRequest{
		GroupName:   "  ",
		VoteEndDate: "someday",
	}))
	requireConnectCode(t, err, connect.CodeInvalidArgument)

	fields := api.FieldErrors(err)
	if fields["groupName"] == "" || fields["voteEndDate"] == "" {
		t.Errorf("expected groupName and voteEndDate field errors, got %v", fields)
	}
}

func TestCreateGroupWithEmails(t *testing.T) {
	env := setupTestServer(t)
	env.sender.setFailure("b@x.com", errors.New("mailbox full"))

	resp, err := env.groups.CreateGroup(context.Background(), as(env, "alice", &api.CreateGroupRequest{
		GroupName:   "Lunch",
		VoteEndDate: "2030-06-01",
		Emails:      []string{"A@x.com", "b@x.com", "a@x.com"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if got := resp.Msg.UndeliveredEmails; len(got) != 1 || got[0] != "b@x.com" {
		t.Errorf("expected undelivered [b@x.com], got %v", got)
	}
	if tok := env.sender.lastToken(t, "a@x.com"); tok != "TOKEN-1" {
		t.Errorf("expected TOKEN-1 for a@x.com, got %q", tok)
	}
}

func TestCreateGroupKeepsGroupWhenInvitesFail(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	env.sender.setFailure("b@x.com", errors.New("mailbox full"))

	// Six static tokens: the seventh address cannot be invited.
	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com", "f@x.com", "g@x.com"}
	resp, err := env.groups.CreateGroup(ctx, as(env, "alice", &api.CreateGroupRequest{
		GroupName:   "Lunch",
		VoteEndDate: "2030-06-01",
		Emails:      emails,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if resp.Msg.Group.ID == 0 {
		t.Fatal("expected the created group in the response")
	}
	if got := resp.Msg.UndeliveredEmails; len(got) != 1 || got[0] != "b@x.com" {
		t.Errorf("expected undelivered [b@x.com], got %v", got)
	}
	if got := resp.Msg.FailedEmails; len(got) != 1 || got[0] != "g@x.com" {
		t.Errorf("expected failed [g@x.com], got %v", got)
	}

	if _, err := env.groups.GetGroup(ctx, as(env, "alice", &api.GetGroupRequest{GroupID: resp.Msg.Group.ID})); err != nil {
		t.Errorf("expected group to be readable: %v", err)
	}
}

func TestInviteAndJoin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createLunch(t, env)

	inv, err := env.groups.InviteMember(ctx, as(env, "alice", &api.InviteMemberRequest{GroupID: group.ID, Email: "a@x.com"}))
	if err != nil {
		t.Fatalf("InviteMember failed: %v", err)
	}
	if inv.Msg.Invitation.Email != "a@x.com" {
		t.Errorf("unexpected invitation %+v", inv.Msg.Invitation)
	}
	tok := env.sender.lastToken(t, "a@x.com")

	_, err = env.groups.GetGroup(ctx, as(env, "bob", &api.GetGroupRequest{GroupID: group.ID}))
	requireConnectCode(t, err, connect.CodeNotFound)

	joined, err := env.groups.JoinGroup(ctx, as(env, "bob", &api.JoinGroupRequest{GroupID: group.ID, Token: tok}))
	if err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if joined.Msg.Group.ID != group.ID {
		t.Errorf("expected group %d, got %d", group.ID, joined.Msg.Group.ID)
	}

	got, err := env.groups.GetGroup(ctx, as(env, "bob", &api.GetGroupRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroup as new member failed: %v", err)
	}
	if got.Msg.Group.GroupName != "Lunch" {
		t.Errorf("unexpected group %+v", got.Msg.Group)
	}

	_, err = env.groups.JoinGroup(ctx, as(env, "bob", &api.JoinGroupRequest{GroupID: group.ID, Token: tok}))
	requireConnectCode(t, err, connect.CodeAlreadyExists)

	_, err = env.groups.JoinGroup(ctx, as(env, "carol", &api.JoinGroupRequest{GroupID: group.ID, Token: tok}))
	requireConnectCode(t, err, connect.CodeNotFound)

	list, err := env.groups.ListGroups(ctx, as(env, "bob", &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(list.Msg.Groups) != 1 {
		t.Errorf("expected 1 group for bob, got %d", len(list.Msg.Groups))
	}
}

func TestInviteMemberNonOwner(t *testing.T) {
	env := setupTestServer(t)
	group := createLunch(t, env)

	_, err := env.groups.InviteMember(context.Background(), as(env, "bob", &api.InviteMemberRequest{GroupID: group.ID, Email: "a@x.com"}))
	requireConnectCode(t, err, connect.CodePermissionDenied)
}

func TestInviteMemberDeliveryFailure(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createLunch(t, env)
	env.sender.setFailure("a@x.com", errors.New("relay down"))

	_, err := env.groups.InviteMember(ctx, as(env, "alice", &api.InviteMemberRequest{GroupID: group.ID, Email: "a@x.com"}))
	requireConnectCode(t, err, connect.CodeUnavailable)

	if _, err := env.store.GetInvitation(ctx, group.ID, "a@x.com"); err != nil {
		t.Fatalf("expected invitation to persist: %v", err)
	}

	env.sender.setFailure("a@x.com", nil)
	if _, err := env.groups.ResendInvitation(ctx, as(env, "alice", &api.ResendInvitationRequest{GroupID: group.ID, Email: "a@x.com"})); err != nil {
		t.Fatalf("ResendInvitation failed: %v", err)
	}
	if tok := env.sender.lastToken(t, "a@x.com"); tok != "TOKEN-1" {
		t.Errorf("expected the original token to be resent, got %q", tok)
	}
}

func TestRevokeInvitation(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createLunch(t, env)

	if _, err := env.groups.InviteMember(ctx, as(env, "alice", &api.InviteMemberRequest{GroupID: group.ID, Email: "a@x.com"})); err != nil {
		t.Fatalf("InviteMember failed: %v", err)
	}

	_, err := env.groups.RevokeInvitation(ctx, as(env, "bob", &api.RevokeInvitationRequest{GroupID: group.ID, Email: "a@x.com"}))
	requireConnectCode(t, err, connect.CodePermissionDenied)

	for i := 0; i < 2; i++ {
		if _, err := env.groups.RevokeInvitation(ctx, as(env, "alice", &api.RevokeInvitationRequest{GroupID: group.ID, Email: "a@x.com"})); err != nil {
			t.Fatalf("RevokeInvitation #%d failed: %v", i+1, err)
		}
	}

	_, err = env.groups.JoinGroup(ctx, as(env, "bob", &api.JoinGroupRequest{GroupID: group.ID, Token: "TOKEN-1"}))
	requireConnectCode(t, err, connect.CodeNotFound)
}

func TestUpdateGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createLunch(t, env)

	name := "x"
	_, err := env.groups.UpdateGroup(ctx, as(env, "bob", &api.UpdateGroupRequest{GroupID: group.ID, GroupName: &name}))
	requireConnectCode(t, err, connect.CodePermissionDenied)

	name = "Team Lunch"
	resp, err := env.groups.UpdateGroup(ctx, as(env, "alice", &api.UpdateGroupRequest{
		GroupID:         group.ID,
		GroupName:       &name,
		NewParticipants: []int64{env.ids["bob"]},
	}))
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if resp.Msg.Group.GroupName != "Team Lunch" {
		t.Errorf("expected renamed group, got %q", resp.Msg.Group.GroupName)
	}

	_, err = env.groups.UpdateGroup(ctx, as(env, "alice", &api.UpdateGroupRequest{
		GroupID:         group.ID,
		NewParticipants: []int64{env.ids["bob"]},
	}))
	requireConnectCode(t, err, connect.CodeAlreadyExists)

	_, err = env.groups.UpdateGroup(ctx, as(env, "alice", &api.UpdateGroupRequest{
		GroupID:             group.ID,
		RemovedParticipants: []int64{env.ids["alice"]},
	}))
	requireConnectCode(t, err, connect.CodeInvalidArgument)

	if _, err := env.groups.UpdateGroup(ctx, as(env, "alice", &api.UpdateGroupRequest{
		GroupID:             group.ID,
		RemovedParticipants: []int64{env.ids["bob"]},
	})); err != nil {
		t.Fatalf("UpdateGroup remove failed: %v", err)
	}
	_, err = env.groups.GetGroup(ctx, as(env, "bob", &api.GetGroupRequest{GroupID: group.ID}))
	requireConnectCode(t, err, connect.CodeNotFound)
}

func TestGetGroupUnknown(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.groups.GetGroup(context.Background(), as(env, "alice", &api.GetGroupRequest{GroupID: 12}))
	requireConnectCode(t, err, connect.CodeNotFound)

	_, err = env.groups.GetGroup(context.Background(), as(env, "alice", &api.GetGroupRequest{}))
	requireConnectCode(t, err, connect.CodeInvalidArgument)
}
