package models

import "time"

// Group represents a shared activity being decided by its members.
type Group struct {
	// ID is the store-assigned identifier for the group.
	ID int64

	// GroupName is the display name of the group (e.g. "Friday Lunch").
	GroupName string

	// OwnerID is the user who created the group. Immutable after creation.
	OwnerID int64

	// VoteEndDate is the deadline for proposals and votes.
	VoteEndDate time.Time

	// MinPrice is the optional lower price bound.
	MinPrice *float64

	// MaxPrice is the optional upper price bound.
	MaxPrice *float64
}

// NewGroupInput describes the fields an owner provides when creating a group.
type NewGroupInput struct {
	GroupName   string
	VoteEndDate time.Time
	MinPrice    *float64
	MaxPrice    *float64

	// Emails are invited right after the group is created.
	Emails []string
}

// GroupPatch describes an owner's update to a group.
// Nil fields are left unchanged. A Clear flag removes the bound; it must not
// be combined with a value for the same bound.
type GroupPatch struct {
	GroupName     *string
	VoteEndDate   *time.Time
	MinPrice      *float64
	MaxPrice      *float64
	ClearMinPrice bool
	ClearMaxPrice bool

	// NewParticipants are user IDs to add as members.
	NewParticipants []int64

	// RemovedParticipants are user IDs whose membership is removed.
	// Must never include the owner.
	RemovedParticipants []int64
}

// Apply copies the scalar fields of the patch onto the group.
func (p GroupPatch) Apply(g *Group) {
	if p.GroupName != nil {
		g.GroupName = *p.GroupName
	}
	if p.VoteEndDate != nil {
		g.VoteEndDate = *p.VoteEndDate
	}
	switch {
	case p.ClearMinPrice:
		g.MinPrice = nil
	case p.MinPrice != nil:
		g.MinPrice = p.MinPrice
	}
	switch {
	case p.ClearMaxPrice:
		g.MaxPrice = nil
	case p.MaxPrice != nil:
		g.MaxPrice = p.MaxPrice
	}
}
