package groups

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/mmynk/lunchpoll/internal/errors"
)

func TestInviteMember(t *testing.T) {
	f := newFixture(t, "T")
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	inv, err := f.m.Invitations.InviteMember(ctx, f.alice, group.ID, "a@x.com")
	if err != nil {
		t.Fatalf("InviteMember failed: %v", err)
	}
	if inv.GroupID != group.ID || inv.Email != "a@x.com" || inv.Token != "T" {
		t.Errorf("Unexpected invitation %+v", inv)
	}

	stored, err := f.store.GetInvitation(ctx, group.ID, "a@x.com")
	if err != nil {
		t.Fatalf("GetInvitation failed: %v", err)
	}
	if stored.Token != "T" {
		t.Errorf("Expected stored token T, got %q", stored.Token)
	}
	if got := f.sender.sentTo(); len(got) != 1 || got[0] != "a@x.com" {
		t.Errorf("Expected one email to a@x.com, got %v", got)
	}
}

func TestInviteMemberNonOwner(t *testing.T) {
	f := newFixture(t, "T")
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	_, err := f.m.Invitations.InviteMember(ctx, f.bob, group.ID, "a@x.com")
	requireCode(t, err, apperrors.CodeUnauthorized)

	if _, err := f.store.GetInvitation(ctx, group.ID, "a@x.com"); apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Errorf("Expected no invitation, got %v", err)
	}
	if got := f.sender.sentTo(); len(got) != 0 {
		t.Errorf("Expected no email, got %v", got)
	}
}

func TestInviteMemberUnknownGroup(t *testing.T) {
	f := newFixture(t, "T")
	_, err := f.m.Invitations.InviteMember(context.Background(), f.alice, 9, "a@x.com")
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestInviteMemberTwiceConflicts(t *testing.T) {
	f := newFixture(t, "T1", "T2")
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	if _, err := f.m.Invitations.InviteMember(ctx, f.alice, group.ID, "a@x.com"); err != nil {
		t.Fatalf("InviteMember failed: %v", err)
	}
	_, err := f.m.Invitations.InviteMember(ctx, f.alice, group.ID, "a@x.com")
	requireCode(t, err, apperrors.CodeConflict)
}

func TestInviteMemberDeliveryFailureKeepsInvitation(t *testing.T) {
	f := newFixture(t, "T")
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")
	smtpDown := errors.New("smtp down")
	f.sender.fail["a@x.com"] = smtpDown

	inv, err := f.m.Invitations.InviteMember(ctx, f.alice, group.ID, "a@x.com")
	if !errors.Is(err, smtpDown) {
		t.Fatalf("Expected delivery error, got %v", err)
	}
	var de *DeliveryError
	if !errors.As(err, &de) {
		t.Fatalf("Expected *DeliveryError, got %T", err)
	}
	if inv == nil || inv.Token != "T" {
		t.Fatalf("Expected the persisted invitation to be returned, got %+v", inv)
	}
	if _, err := f.store.GetInvitation(ctx, group.ID, "a@x.com"); err != nil {
		t.Fatalf("Expected invitation to persist: %v", err)
	}

	// Once the relay recovers the same token is resent.
	delete(f.sender.fail, "a@x.com")
	resent, err := f.m.Invitations.ResendInvitation(ctx, f.alice, group.ID, "a@x.com")
	if err != nil {
		t.Fatalf("ResendInvitation failed: %v", err)
	}
	if resent.Token != "T" {
		t.Errorf("Expected same token, got %q", resent.Token)
	}
	if got := f.sender.sentTo(); len(got) != 1 {
		t.Errorf("Expected one successful delivery, got %v", got)
	}
}

func TestResendInvitation(t *testing.T) {
	f := newFixture(t, "T")
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	_, err := f.m.Invitations.ResendInvitation(ctx, f.alice, group.ID, "nobody@x.com")
	requireCode(t, err, apperrors.CodeNotFound)

	if _, err := f.m.Invitations.InviteMember(ctx, f.alice, group.ID, "a@x.com"); err != nil {
		t.Fatalf("InviteMember failed: %v", err)
	}
	_, err = f.m.Invitations.ResendInvitation(ctx, f.bob, group.ID, "a@x.com")
	requireCode(t, err, apperrors.CodeUnauthorized)
}

func TestRevokeInvitationIsIdempotent(t *testing.T) {
	f := newFixture(t, "T")
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	if _, err := f.m.Invitations.CreateInvitation(ctx, group.ID, "a@x.com"); err != nil {
		t.Fatalf("CreateInvitation failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := f.m.Invitations.RevokeInvitation(ctx, group.ID, "a@x.com"); err != nil {
			t.Fatalf("RevokeInvitation #%d failed: %v", i+1, err)
		}
		if _, err := f.store.GetInvitation(ctx, group.ID, "a@x.com"); apperrors.CodeOf(err) != apperrors.CodeNotFound {
			t.Fatalf("Expected invitation gone after revoke #%d, got %v", i+1, err)
		}
	}
}

func TestCancelInvitationOwnerOnly(t *testing.T) {
	f := newFixture(t, "T")
	ctx := context.Background()
	group := f.createGroup(t, "Lunch")

	if _, err := f.m.Invitations.CreateInvitation(ctx, group.ID, "a@x.com"); err != nil {
		t.Fatalf("CreateInvitation failed: %v", err)
	}

	err := f.m.Invitations.CancelInvitation(ctx, f.bob, group.ID, "a@x.com")
	requireCode(t, err, apperrors.CodeUnauthorized)
	if _, err := f.store.GetInvitation(ctx, group.ID, "a@x.com"); err != nil {
		t.Fatalf("Expected invitation to survive: %v", err)
	}

	if err := f.m.Invitations.CancelInvitation(ctx, f.alice, group.ID, "a@x.com"); err != nil {
		t.Fatalf("CancelInvitation failed: %v", err)
	}
	if _, err := f.store.GetInvitation(ctx, group.ID, "a@x.com"); apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Errorf("Expected invitation gone, got %v", err)
	}
}

func TestCreateInvitationTokenFailure(t *testing.T) {
	f := newFixture(t) // no tokens: the generator fails immediately
	group := f.createGroup(t, "Lunch")

	if _, err := f.m.Invitations.CreateInvitation(context.Background(), group.ID, "a@x.com"); err == nil {
		t.Fatal("Expected token generation error")
	}
}

func TestDeliveryErrorMessage(t *testing.T) {
	de := &DeliveryError{Failures: []DeliveryFailure{
		{Email: "a@x.com", Err: errors.New("timeout")},
		{Email: "b@x.com", Err: errors.New("refused")},
	}}
	want := "invitation email not delivered: a@x.com: timeout; b@x.com: refused"
	if de.Error() != want {
		t.Errorf("Error() = %q, want %q", de.Error(), want)
	}
}
