// Package groups implements group membership and suggestion voting.
//
// # Components
//
//   - GroupManager: group lifecycle and owner-only updates
//   - InvitationManager: issues, sends and revokes email-scoped join tokens
//   - MembershipPollManager: redeems invitations into membership
//   - SuggestionVoting: suggestions and signed vote tallies on a member's poll
//
// Every multi-row write runs inside storage.Store.WithTx, so the store's
// uniqueness constraints decide races between concurrent callers.
package groups
