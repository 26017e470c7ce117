// Package policy centralizes authorization. Every lifecycle operation asks
// the same question — may this actor perform this action on this resource —
// instead of scattering ownership and role conditionals across handlers.
package policy

import (
	"errors"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("actor is not allowed to perform this action")

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID    uuid.UUID
	Role  string
	Email string
}

type Action string

const (
	ActionDeleteJob     Action = "job.delete"
	ActionDecideRequest Action = "join_request.decide"
	ActionRateRequest   Action = "join_request.rate"
	ActionBookingStatus Action = "booking.status"
	ActionBookingCancel Action = "booking.cancel"
	ActionBookingReview Action = "booking.review"
	ActionBookingView   Action = "booking.view"
)

// Resource is implemented by domain entities that know which actors may act
// on them.
type Resource interface {
	AllowsActor(actor Actor, action Action) bool
}

// Authorize returns ErrForbidden unless the resource grants the actor the
// requested action.
func Authorize(actor Actor, action Action, r Resource) error {
	if r == nil || !r.AllowsActor(actor, action) {
		return ErrForbidden
	}
	return nil
}

// RequireRole returns ErrForbidden unless the actor carries the given role.
func RequireRole(actor Actor, role string) error {
	if actor.Role != role {
		return ErrForbidden
	}
	return nil
}
