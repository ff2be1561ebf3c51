package models

// Poll is a single member's voting record within one group.
// Exactly one Poll exists per (GroupID, UserID).
type Poll struct {
	ID      int64
	GroupID int64
	UserID  int64
}

// PollDetail is a poll joined with its group's name, the member's display
// name and all suggestions attached to it.
type PollDetail struct {
	Poll

	GroupName   string
	Username    string
	Suggestions []Suggestion
}
