// Package errors provides coded domain errors for the group voting core.
package errors

import "connectrpc.com/connect"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that carries no domain code.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound means a referenced group, poll, suggestion or invitation
	// does not exist for the given keys.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnauthorized means a non-owner attempted an owner-only mutation.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeConflict means a duplicate membership or invitation was attempted.
	CodeConflict Code = "CONFLICT"
	// CodeBadRequest means the request is structurally invalid.
	CodeBadRequest Code = "BAD_REQUEST"
	// CodeInternal means the operation failed for reasons outside the caller's control.
	CodeInternal Code = "INTERNAL"
)

// ConnectCode maps the domain code to a Connect status code.
func (c Code) ConnectCode() connect.Code {
	switch c {
	case CodeNotFound:
		return connect.CodeNotFound
	case CodeUnauthorized:
		return connect.CodePermissionDenied
	case CodeConflict:
		return connect.CodeAlreadyExists
	case CodeBadRequest:
		return connect.CodeInvalidArgument
	default:
		return connect.CodeInternal
	}
}
