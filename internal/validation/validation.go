// Package validation checks incoming requests before the core runs.
//
// Every validator returns a Result holding either the normalized value or
// the list of field errors. Err converts a failed Result into a BadRequest
// domain error whose metadata maps field names to messages.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	apperrors "github.com/mmynk/lunchpoll/internal/errors"
	"github.com/mmynk/lunchpoll/internal/models"
)

// MaxGroupNameLength bounds group names.
const MaxGroupNameLength = 150

// MaxSuggestionLength bounds suggestion details.
const MaxSuggestionLength = 500

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Result holds a validated value or the reasons it is invalid.
type Result[T any] struct {
	Value  T
	Errors []FieldError
}

// OK reports whether validation passed.
func (r Result[T]) OK() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a valid result, otherwise a BadRequest error.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	meta := make(map[string]string, len(r.Errors))
	for i, fe := range r.Errors {
		msgs[i] = fe.String()
		meta[fe.Field] = fe.Message
	}
	return apperrors.WithMetadata(apperrors.CodeBadRequest,
		"invalid request: "+strings.Join(msgs, "; "), meta)
}

// Unwrap returns the value and the conversion of Err.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err()
}

type collector struct {
	errs []FieldError
}

func (c *collector) add(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}

// NormalizeEmail trims and lower-cases an address after checking its syntax.
func NormalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("is required")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", fmt.Errorf("is not a valid email address")
	}
	return strings.ToLower(trimmed), nil
}

// CreateGroupRequest is the raw input of createGroup.
type CreateGroupRequest struct {
	GroupName   string
	VoteEndDate string
	MinPrice    *float64
	MaxPrice    *float64
	Emails      []string
}

// CreateGroup validates a createGroup request.
func CreateGroup(req CreateGroupRequest) Result[models.NewGroupInput] {
	var c collector
	out := models.NewGroupInput{
		GroupName: strings.TrimSpace(req.GroupName),
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
	}

	checkGroupName(&c, out.GroupName)

	if strings.TrimSpace(req.VoteEndDate) == "" {
		c.add("voteEndDate", "is required")
	} else if t, err := ParseDate(req.VoteEndDate); err != nil {
		c.add("voteEndDate", "%v", err)
	} else {
		out.VoteEndDate = t
	}

	checkPrices(&c, req.MinPrice, req.MaxPrice)

	seen := make(map[string]bool, len(req.Emails))
	for i, raw := range req.Emails {
		email, err := NormalizeEmail(raw)
		if err != nil {
			c.add(fmt.Sprintf("emails[%d]", i), "%v", err)
			continue
		}
		if seen[email] {
			continue
		}
		seen[email] = true
		out.Emails = append(out.Emails, email)
	}

	return Result[models.NewGroupInput]{Value: out, Errors: c.errs}
}

// GroupPatchRequest is the raw input of updateGroup.
type GroupPatchRequest struct {
	GroupName           *string
	VoteEndDate         *string
	MinPrice            *float64
	MaxPrice            *float64
	ClearMinPrice       bool
	ClearMaxPrice       bool
	NewParticipants     []int64
	RemovedParticipants []int64
}

// GroupPatch validates an updateGroup request. Ownership rules are enforced
// by the core, not here.
func GroupPatch(req GroupPatchRequest) Result[models.GroupPatch] {
	var c collector
	out := models.GroupPatch{
		MinPrice:            req.MinPrice,
		MaxPrice:            req.MaxPrice,
		ClearMinPrice:       req.ClearMinPrice,
		ClearMaxPrice:       req.ClearMaxPrice,
		NewParticipants:     dedupe(req.NewParticipants),
		RemovedParticipants: dedupe(req.RemovedParticipants),
	}

	if req.GroupName != nil {
		name := strings.TrimSpace(*req.GroupName)
		checkGroupName(&c, name)
		out.GroupName = &name
	}
	if req.VoteEndDate != nil {
		if t, err := ParseDate(*req.VoteEndDate); err != nil {
			c.add("voteEndDate", "%v", err)
		} else {
			out.VoteEndDate = &t
		}
	}

	checkPrices(&c, req.MinPrice, req.MaxPrice)
	if req.ClearMinPrice && req.MinPrice != nil {
		c.add("minPrice", "cannot be set and cleared at once")
	}
	if req.ClearMaxPrice && req.MaxPrice != nil {
		c.add("maxPrice", "cannot be set and cleared at once")
	}

	for _, id := range out.NewParticipants {
		if id <= 0 {
			c.add("newParticipants", "contains invalid user id %d", id)
		}
	}
	for _, id := range out.RemovedParticipants {
		if id <= 0 {
			c.add("removedParticipants", "contains invalid user id %d", id)
		}
	}

	return Result[models.GroupPatch]{Value: out, Errors: c.errs}
}

// Invite validates the email of an invite, resend or revoke request.
func Invite(rawEmail string) Result[string] {
	var c collector
	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		c.add("email", "%v", err)
	}
	return Result[string]{Value: email, Errors: c.errs}
}

// JoinToken validates an invitation token.
func JoinToken(raw string) Result[string] {
	var c collector
	tok := strings.TrimSpace(raw)
	if tok == "" {
		c.add("token", "is required")
	}
	return Result[string]{Value: tok, Errors: c.errs}
}

// Suggestion validates suggestion details.
func Suggestion(rawDetails string) Result[string] {
	var c collector
	details := strings.TrimSpace(rawDetails)
	switch {
	case details == "":
		c.add("details", "is required")
	case len(details) > MaxSuggestionLength:
		c.add("details", "must be at most %d characters", MaxSuggestionLength)
	}
	return Result[string]{Value: details, Errors: c.errs}
}

// Vote is a validated vote request.
type Vote struct {
	SuggestionID int64
	Upvote       bool
}

// VoteRequest validates a vote request.
func VoteRequest(suggestionID int64, upvote bool) Result[Vote] {
	var c collector
	if suggestionID <= 0 {
		c.add("id", "is required")
	}
	return Result[Vote]{Value: Vote{SuggestionID: suggestionID, Upvote: upvote}, Errors: c.errs}
}

// ID validates a positive entity id.
func ID(field string, id int64) Result[int64] {
	var c collector
	if id <= 0 {
		c.add(field, "is required")
	}
	return Result[int64]{Value: id, Errors: c.errs}
}

func checkGroupName(c *collector, name string) {
	switch {
	case name == "":
		c.add("groupName", "is required")
	case len(name) > MaxGroupNameLength:
		c.add("groupName", "must be at most %d characters", MaxGroupNameLength)
	}
}

func checkPrices(c *collector, minPrice, maxPrice *float64) {
	if minPrice != nil && *minPrice < 0 {
		c.add("minPrice", "must not be negative")
	}
	if maxPrice != nil && *maxPrice < 0 {
		c.add("maxPrice", "must not be negative")
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		c.add("maxPrice", "must be greater than or equal to minPrice")
	}
}

func dedupe(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
