package groups

import (
	"github.com/mmynk/lunchpoll/internal/email"
	"github.com/mmynk/lunchpoll/internal/metrics"
	"github.com/mmynk/lunchpoll/internal/storage"
	"github.com/mmynk/lunchpoll/internal/token"
)

// Managers bundles the four components wired to one store.
type Managers struct {
	Groups      *GroupManager
	Invitations *InvitationManager
	Membership  *MembershipPollManager
	Voting      *SuggestionVoting
}

// New wires the managers together. m may be nil.
func New(store storage.Store, sender email.Sender, newToken token.Generator, m *metrics.Metrics) *Managers {
	invitations := NewInvitationManager(store, sender, newToken, m)
	return &Managers{
		Groups:      NewGroupManager(store, invitations),
		Invitations: invitations,
		Membership:  NewMembershipPollManager(store, invitations, m),
		Voting:      NewSuggestionVoting(store, m),
	}
}
