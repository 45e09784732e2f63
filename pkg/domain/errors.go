package domain

import "errors"

// ErrPermissionDenied is returned when an actor fails the administrative gate.
var ErrPermissionDenied = errors.New("permission denied")

// ErrStaleReference is returned when a token or a stored key points at a community,
// channel or role that no longer resolves.
var ErrStaleReference = errors.New("stale reference")

// ErrMalformedToken is returned when a continuation token fails structural validation.
var ErrMalformedToken = errors.New("malformed token")

// ErrInvalidInput is returned when a form submission is missing a required value.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound is returned by directory lookups for entities outside the visible cache.
var ErrNotFound = errors.New("not found")

// Rejection is a user-visible refusal to continue a workflow.
// Reason is one of the sentinel errors above; Message is shown privately to the actor.
type Rejection struct {
	Reason  error
	Message string
}

func (r *Rejection) Error() string {
	return r.Reason.Error() + ": " + r.Message
}

func (r *Rejection) Unwrap() error {
	return r.Reason
}

// Reject builds a Rejection for the given reason.
func Reject(reason error, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}

// ReasonLabel returns a stable short label for a rejection reason, used in logs and metrics.
func ReasonLabel(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrStaleReference):
		return "stale_reference"
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
