package groups

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/lunchpoll/internal/email"
	apperrors "github.com/mmynk/lunchpoll/internal/errors"
	"github.com/mmynk/lunchpoll/internal/metrics"
	"github.com/mmynk/lunchpoll/internal/models"
	"github.com/mmynk/lunchpoll/internal/storage"
	"github.com/mmynk/lunchpoll/internal/token"
)

// DeliveryError reports invitations that were persisted but whose email
// could not be sent. The tokens stay valid and can be resent.
type DeliveryError struct {
	Failures []DeliveryFailure
}

// DeliveryFailure is one undelivered invitation.
type DeliveryFailure struct {
	Email string
	Err   error
}

func (e *DeliveryError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Email, f.Err)
	}
	return "invitation email not delivered: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual send errors to errors.Is and errors.As.
func (e *DeliveryError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// Emails returns the addresses that were not reached.
func (e *DeliveryError) Emails() []string {
	out := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f.Email
	}
	return out
}

// InviteError reports an address for which no invitation was created.
type InviteError struct {
	Email string
	Err   error
}

func (e *InviteError) Error() string {
	return fmt.Sprintf("invite %s: %v", e.Email, e.Err)
}

func (e *InviteError) Unwrap() error {
	return e.Err
}

// SplitInviteErrors sorts the addresses named in a CreateGroup error into
// undelivered (invitation stored, email not sent) and failed (no invitation).
func SplitInviteErrors(err error) (undelivered, failed []string) {
	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case *DeliveryError:
			undelivered = append(undelivered, e.Emails()...)
		case *InviteError:
			failed = append(failed, e.Email)
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		}
	}
	if err != nil {
		walk(err)
	}
	return undelivered, failed
}

// InvitationManager issues and revokes invitations.
type InvitationManager struct {
	store    storage.Store
	sender   email.Sender
	newToken token.Generator
	metrics  *metrics.Metrics
}

// NewInvitationManager creates an InvitationManager.
func NewInvitationManager(store storage.Store, sender email.Sender, newToken token.Generator, m *metrics.Metrics) *InvitationManager {
	return &InvitationManager{store: store, sender: sender, newToken: newToken, metrics: m}
}

// bind returns a copy of the manager operating on store, typically a
// transaction-bound store.
func (m *InvitationManager) bind(store storage.Store) *InvitationManager {
	c := *m
	c.store = store
	return &c
}

// CreateInvitation generates a token and persists the invitation.
// A live invitation for the same email yields Conflict; revoke it first.
func (m *InvitationManager) CreateInvitation(ctx context.Context, groupID int64, emailAddr string) (*models.Invitation, error) {
	tok, err := m.newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	inv := &models.Invitation{GroupID: groupID, Email: emailAddr, Token: tok}
	if err := m.store.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// RevokeInvitation deletes the invitation for (groupID, email).
// Revoking an absent invitation succeeds.
func (m *InvitationManager) RevokeInvitation(ctx context.Context, groupID int64, emailAddr string) error {
	return m.store.DeleteInvitation(ctx, groupID, emailAddr)
}

// InviteMember creates an invitation on behalf of the group owner and emails
// the token. If sending fails the invitation stays persisted and is returned
// together with a *DeliveryError.
func (m *InvitationManager) InviteMember(ctx context.Context, ownerID, groupID int64, emailAddr string) (*models.Invitation, error) {
	if _, err := m.requireOwner(ctx, ownerID, groupID); err != nil {
		return nil, err
	}

	inv, err := m.CreateInvitation(ctx, groupID, emailAddr)
	if err != nil {
		return nil, err
	}

	if err := m.send(ctx, *inv); err != nil {
		return inv, err
	}
	return inv, nil
}

// ResendInvitation emails the existing live token again. Owner only.
func (m *InvitationManager) ResendInvitation(ctx context.Context, ownerID, groupID int64, emailAddr string) (*models.Invitation, error) {
	if _, err := m.requireOwner(ctx, ownerID, groupID); err != nil {
		return nil, err
	}

	inv, err := m.store.GetInvitation(ctx, groupID, emailAddr)
	if err != nil {
		return nil, err
	}

	if err := m.send(ctx, *inv); err != nil {
		return inv, err
	}
	return inv, nil
}

// CancelInvitation revokes an invitation on behalf of the group owner.
func (m *InvitationManager) CancelInvitation(ctx context.Context, ownerID, groupID int64, emailAddr string) error {
	if _, err := m.requireOwner(ctx, ownerID, groupID); err != nil {
		return err
	}
	return m.RevokeInvitation(ctx, groupID, emailAddr)
}

func (m *InvitationManager) send(ctx context.Context, inv models.Invitation) error {
	err := m.sender.Send(ctx, inv)
	m.metrics.InvitationSent(err)
	if err != nil {
		slog.Warn("Invitation email failed", "group_id", inv.GroupID, "email", inv.Email, "error", err)
		return &DeliveryError{Failures: []DeliveryFailure{{Email: inv.Email, Err: err}}}
	}
	return nil
}

func (m *InvitationManager) requireOwner(ctx context.Context, userID, groupID int64) (*models.Group, error) {
	group, err := m.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != userID {
		return nil, apperrors.Newf(apperrors.CodeUnauthorized, "only the owner of group %d may do this", groupID)
	}
	return group, nil
}
