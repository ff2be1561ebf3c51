package models

// Invitation grants the holder of Token the right to join a group once.
// There is at most one live invitation per (GroupID, Email); redemption or
// revocation deletes it.
type Invitation struct {
	GroupID int64
	Email   string
	Token   string
}
