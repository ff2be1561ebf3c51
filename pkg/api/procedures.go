package api

const (
	// GroupServiceName is the fully-qualified name of the group service.
	GroupServiceName = "lunchpoll.v1.GroupService"
	// PollServiceName is the fully-qualified name of the poll service.
	PollServiceName = "lunchpoll.v1.PollService"
)

const (
	GroupServiceCreateGroupProcedure      = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure         = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure       = "/" + GroupServiceName + "/ListGroups"
	GroupServiceUpdateGroupProcedure      = "/" + GroupServiceName + "/UpdateGroup"
	GroupServiceInviteMemberProcedure     = "/" + GroupServiceName + "/InviteMember"
	GroupServiceResendInvitationProcedure = "/" + GroupServiceName + "/ResendInvitation"
	GroupServiceRevokeInvitationProcedure = "/" + GroupServiceName + "/RevokeInvitation"
	GroupServiceJoinGroupProcedure        = "/" + GroupServiceName + "/JoinGroup"

	PollServiceGetUserPollProcedure      = "/" + PollServiceName + "/GetUserPoll"
	PollServiceCreateSuggestionProcedure = "/" + PollServiceName + "/CreateSuggestion"
	PollServiceVoteOnSuggestionProcedure = "/" + PollServiceName + "/VoteOnSuggestion"
)
