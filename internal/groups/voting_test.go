package groups

import (
	"context"
	"testing"

	apperrors "github.com/mmynk/lunchpoll/internal/errors"
	"github.com/mmynk/lunchpoll/internal/models"
)

func TestCreateSuggestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	s, err := f.m.Voting.CreateSuggestion(ctx, group.ID, f.alice, "Ramen")
	if err != nil {
		t.Fatalf("CreateSuggestion failed: %v", err)
	}
	if s.ID == 0 || s.Votes != 0 || s.Details != "Ramen" {
		t.Errorf("Unexpected suggestion %+v", s)
	}

	_, err = f.m.Voting.CreateSuggestion(ctx, group.ID, f.bob, "Tacos")
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestVoteOnSuggestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	s, err := f.m.Voting.CreateSuggestion(ctx, group.ID, f.alice, "Ramen")
	if err != nil {
		t.Fatalf("CreateSuggestion failed: %v", err)
	}

	var got *models.Suggestion
	for _, up := range []bool{true, false, false} {
		got, err = f.m.Voting.VoteOnSuggestion(ctx, group.ID, f.alice, s.ID, up)
		if err != nil {
			t.Fatalf("VoteOnSuggestion(%v) failed: %v", up, err)
		}
	}
	if got.Votes != -1 {
		t.Errorf("Expected votes -1, got %d", got.Votes)
	}
}

func TestVoteOnSuggestionScopedToPoll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	_, err := f.m.Groups.UpdateGroup(ctx, f.alice, group.ID, models.GroupPatch{NewParticipants: []int64{f.bob}})
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}

	bobs, err := f.m.Voting.CreateSuggestion(ctx, group.ID, f.bob, "Pizza")
	if err != nil {
		t.Fatalf("CreateSuggestion failed: %v", err)
	}

	_, err = f.m.Voting.VoteOnSuggestion(ctx, group.ID, f.alice, bobs.ID, true)
	requireCode(t, err, apperrors.CodeNotFound)

	_, err = f.m.Voting.VoteOnSuggestion(ctx, group.ID, f.carol, bobs.ID, true)
	requireCode(t, err, apperrors.CodeNotFound)

	got, err := f.m.Voting.VoteOnSuggestion(ctx, group.ID, f.bob, bobs.ID, true)
	if err != nil {
		t.Fatalf("VoteOnSuggestion failed: %v", err)
	}
	if got.Votes != 1 {
		t.Errorf("Expected votes 1, got %d", got.Votes)
	}
}
