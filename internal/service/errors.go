package service

import (
	"errors"
	"net/http"

	"settingshub/internal/gateway"
)

// Reasons a local validation can fail. These never reach the network.
const (
	ReasonEmpty     = "empty"
	ReasonDuplicate = "duplicate"
	ReasonTooLong   = "too_long"
	ReasonLimit     = "limit"
)

// ValidationError is a pre-flight rejection of user input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Reason }

// Domain errors for session and membership flows.
var (
	ErrNoSession        = errors.New("no active session")
	ErrCreatorImmutable = errors.New("the project creator cannot be removed or demoted")
	ErrInvalidRole      = errors.New("role must be admin or member")
	ErrNotAllowed       = errors.New("only project admins can do that")
)

// Remote failure classes. A RemoteError wraps whatever the gateway
// returned and keeps prior local state intact.
const (
	KindFetch    = "fetch"
	KindSubmit   = "submit"
	KindSearch   = "search"
	KindMemberOp = "member_op"
)

// RemoteError is a failed read or write against the remote API.
type RemoteError struct {
	Kind     string
	Fallback string // generic user-facing message
	Err      error
}

func (e *RemoteError) Error() string { return e.Fallback + ": " + e.Err.Error() }

func (e *RemoteError) Unwrap() error { return e.Err }

// Message returns the server-supplied message when the remote API sent
// one, else the generic fallback.
func (e *RemoteError) Message() string {
	var apiErr *gateway.APIError
	if errors.As(e.Err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return e.Fallback
}

// Status maps the failure to an HTTP status for the UI: the remote
// status when there is one, 502 for transport-level failures.
func (e *RemoteError) Status() int {
	var apiErr *gateway.APIError
	if errors.As(e.Err, &apiErr) && apiErr.Status >= 400 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}
