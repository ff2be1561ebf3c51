// Package models defines the core domain models for Lunchpoll.
//
// # Models
//
//   - User: an identity known to the system, created on first sign-in
//   - Group: a collectively-decided event with an owner and a voting deadline
//   - Invitation: a single-use, email-scoped token for joining a group
//   - Poll: one member's voting record within a group
//   - Suggestion: a proposed option attached to a poll, with a signed tally
//
// # Membership
//
// A user is a member of a group exactly when a Poll exists for the
// (GroupID, UserID) pair. The owner's poll is created together with the
// group, every other member's poll is created when they redeem an
// invitation or are added by the owner.
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed through integer IDs
// 2. **Store-assigned IDs**: the store populates ID fields on create
// 3. **Optional fields are pointers**: price bounds may be absent
package models
