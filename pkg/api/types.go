// Package api defines the wire types and Connect bindings of the lunchpoll
// RPC services. Messages are plain structs encoded with Codec.
package api

// Group is a group as seen by its members.
type Group struct {
	ID          int64    `json:"id"`
	GroupName   string   `json:"groupName"`
	OwnerID     int64    `json:"ownerId"`
	VoteEndDate string   `json:"voteEndDate"` // RFC 3339
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
}

// Invitation is an issued invitation. The token is never returned to the owner.
type Invitation struct {
	GroupID int64  `json:"groupId"`
	Email   string `json:"email"`
}

// Suggestion is a proposal with its signed tally.
type Suggestion struct {
	ID      int64  `json:"id"`
	PollID  int64  `json:"pollId"`
	Details string `json:"details"`
	Votes   int64  `json:"votes"`
}

// Poll is a member's poll with its suggestions.
type Poll struct {
	ID          int64        `json:"id"`
	GroupID     int64        `json:"groupId"`
	UserID      int64        `json:"userId"`
	GroupName   string       `json:"groupName"`
	Username    string       `json:"username"`
	Suggestions []Suggestion `json:"suggestions"`
}

type CreateGroupRequest struct {
	GroupName   string   `json:"groupName"`
	VoteEndDate string   `json:"voteEndDate"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	Emails      []string `json:"emails,omitempty"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
	// UndeliveredEmails lists invitees whose invitation was saved but not emailed.
	UndeliveredEmails []string `json:"undeliveredEmails,omitempty"`
	// FailedEmails lists invitees for whom no invitation could be created.
	FailedEmails []string `json:"failedEmails,omitempty"`
}

type GetGroupRequest struct {
	GroupID int64 `json:"groupId"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupID             int64    `json:"groupId"`
	GroupName           *string  `json:"groupName,omitempty"`
	VoteEndDate         *string  `json:"voteEndDate,omitempty"`
	MinPrice            *float64 `json:"minPrice,omitempty"`
	MaxPrice            *float64 `json:"maxPrice,omitempty"`
	ClearMinPrice       bool     `json:"clearMinPrice,omitempty"`
	ClearMaxPrice       bool     `json:"clearMaxPrice,omitempty"`
	NewParticipants     []int64  `json:"newParticipants,omitempty"`
	RemovedParticipants []int64  `json:"removedParticipants,omitempty"`
}

type UpdateGroupResponse struct {
	Group Group `json:"group"`
}

type InviteMemberRequest struct {
	GroupID int64  `json:"groupId"`
	Email   string `json:"email"`
}

type InviteMemberResponse struct {
	Invitation Invitation `json:"invitation"`
}

type ResendInvitationRequest struct {
	GroupID int64  `json:"groupId"`
	Email   string `json:"email"`
}

type ResendInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
}

type RevokeInvitationRequest struct {
	GroupID int64  `json:"groupId"`
	Email   string `json:"email"`
}

type RevokeInvitationResponse struct{}

type JoinGroupRequest struct {
	GroupID int64  `json:"groupId"`
	Token   string `json:"token"`
}

type JoinGroupResponse struct {
	Group Group `json:"group"`
}

type GetUserPollRequest struct {
	GroupID int64 `json:"groupId"`
	UserID  int64 `json:"userId"`
}

type GetUserPollResponse struct {
	Poll Poll `json:"poll"`
}

type CreateSuggestionRequest struct {
	GroupID int64  `json:"groupId"`
	UserID  int64  `json:"userId"`
	Details string `json:"details"`
}

type CreateSuggestionResponse struct {
	Suggestion Suggestion `json:"suggestion"`
}

type VoteOnSuggestionRequest struct {
	GroupID      int64 `json:"groupId"`
	UserID       int64 `json:"userId"`
	SuggestionID int64 `json:"id"`
	Upvote       bool  `json:"upvote"`
}

type VoteOnSuggestionResponse struct {
	Suggestion Suggestion `json:"suggestion"`
}
